package game

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/connectfive-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfive-backend/internal/connectfive"
	"github.com/rocketscienceinc/connectfive-backend/internal/entity"
)

// GameSession is the shared state of one game between two players.
// All mutation goes through AttemptMove, which runs under the session lock.
type GameSession struct {
	id      string
	players [2]*entity.Player

	mu     sync.Mutex
	board  entity.Board
	turn   *entity.Player
	status string
	winner *entity.Player
	seq    int
}

// NewGameSession links first and second as opponents. First moves first.
func NewGameSession(id string, first, second *entity.Player) (*GameSession, error) {
	if err := first.SetOpponent(second); err != nil {
		return nil, fmt.Errorf("failed to link players: %w", err)
	}

	if err := second.SetOpponent(first); err != nil {
		return nil, fmt.Errorf("failed to link players: %w", err)
	}

	first.GameID = id
	second.GameID = id

	return &GameSession{
		id:      id,
		players: [2]*entity.Player{first, second},
		turn:    first,
		status:  entity.StatusOngoing,
	}, nil
}

func (that *GameSession) ID() string {
	return that.id
}

func (that *GameSession) Players() [2]*entity.Player {
	return that.players
}

// AttemptMove drops player's piece into column. Rejections leave the session untouched.
func (that *GameSession) AttemptMove(player *entity.Player, column int) (entity.Move, error) {
	if err := connectfive.ValidateColumn(column); err != nil {
		return entity.Move{}, err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.isFinished() {
		return entity.Move{}, fmt.Errorf("%w: %w", apperror.ErrNotYourTurn, apperror.ErrGameFinished)
	}

	if player != that.turn {
		return entity.Move{}, apperror.ErrNotYourTurn
	}

	row, err := connectfive.ResolveDrop(&that.board, column)
	if err != nil {
		return entity.Move{}, err
	}

	if err = that.board.Set(row, column, player.Mark); err != nil {
		return entity.Move{}, fmt.Errorf("failed to apply move: %w", err)
	}

	that.seq++
	move := entity.Move{
		Row:    row,
		Column: column,
		Seq:    that.seq,
	}

	switch {
	case connectfive.FindWinner(&that.board) != entity.EmptyCell:
		that.status = entity.StatusWon
		that.winner = player
		that.turn = nil
		move.Result = entity.ResultWin
	case that.board.IsFull():
		that.status = entity.StatusDraw
		that.turn = nil
		move.Result = entity.ResultDraw
	default:
		that.turn = player.Opponent()
		move.Result = entity.ResultContinue
	}

	return move, nil
}

func (that *GameSession) IsFinished() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.isFinished()
}

// Turn returns the player whose move is accepted next, or nil once the game is over.
func (that *GameSession) Turn() *entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.turn
}

// Winner returns the winning player, or nil for an ongoing or drawn game.
func (that *GameSession) Winner() *entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.winner
}

func (that *GameSession) Snapshot() entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	snapshot := entity.Snapshot{
		ID:     that.id,
		Board:  that.board,
		Status: that.status,
		Seq:    that.seq,
	}

	if that.turn != nil {
		snapshot.Turn = that.turn.Mark
	}

	if that.winner != nil {
		snapshot.Winner = that.winner.Mark
	}

	for _, player := range that.players {
		copied := *player
		snapshot.Players = append(snapshot.Players, &copied)
	}

	return snapshot
}

func (that *GameSession) isFinished() bool {
	return that.status != entity.StatusOngoing
}
