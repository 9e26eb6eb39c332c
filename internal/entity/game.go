package entity

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

// Result is the effect an applied move had on the game.
type Result int

const (
	ResultContinue Result = iota
	ResultWin
	ResultDraw
)

func (that Result) IsTerminal() bool {
	return that == ResultWin || that == ResultDraw
}

func (that Result) String() string {
	switch that {
	case ResultWin:
		return "win"
	case ResultDraw:
		return "draw"
	default:
		return "continue"
	}
}

// Move describes a successfully applied drop.
type Move struct {
	Row    int
	Column int
	Result Result
	// Seq is the number of moves applied so far, this one included.
	Seq int
}

func (that Move) Index() int {
	return Index(that.Row, that.Column)
}

// Snapshot is a point-in-time copy of a game, safe to share outside the session lock.
type Snapshot struct {
	ID      string    `json:"id"`
	Board   Board     `json:"board"`
	Turn    Marker    `json:"turn,omitempty"`
	Status  string    `json:"status"`
	Winner  Marker    `json:"winner,omitempty"`
	Seq     int       `json:"seq"`
	Players []*Player `json:"players,omitempty"`
}

func (that *Snapshot) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}
