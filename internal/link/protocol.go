package link

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/connectfive-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfive-backend/internal/connectfive"
	"github.com/rocketscienceinc/connectfive-backend/internal/entity"
)

const (
	commandMove = "MOVE"

	lineWelcome       = "WELCOME "
	lineMessage       = "MESSAGE "
	lineValidMove     = "VALID_MOVE"
	lineOpponentMoved = "OPPONENT_MOVED "

	LineVictory = "VICTORY"
	LineDefeat  = "DEFEAT"
	LineTie     = "TIE"
)

const (
	MsgWaiting      = "Waiting for Opponent!"
	MsgAllConnected = "All Players Connected!"
	MsgYourTurn     = "Your Turn!"
	MsgNotPossible  = "Not Possible Move!"
	MsgOpponentLeft = "Opponent Disconnected!"
)

// Command is a decoded client request.
type Command struct {
	Column int
}

// ParseCommand decodes "MOVE <column>".
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 || fields[0] != commandMove {
		return Command{}, fmt.Errorf("%w: %q", apperror.ErrInvalidCommand, line)
	}

	column, err := strconv.Atoi(fields[1])
	if err != nil || strings.TrimLeft(fields[1], "0123456789") != "" {
		return Command{}, fmt.Errorf("%w: %q", apperror.ErrInvalidColumn, fields[1])
	}

	if err = connectfive.ValidateColumn(column); err != nil {
		return Command{}, err
	}

	return Command{Column: column}, nil
}

func Welcome(name string) string {
	return lineWelcome + name
}

func Message(text string) string {
	return lineMessage + text
}

func ValidMove(index int) string {
	return lineValidMove + strconv.Itoa(index)
}

func OpponentMoved(index int) string {
	return lineOpponentMoved + strconv.Itoa(index)
}

func Rejected() string {
	return Message(MsgNotPossible)
}

// Notifications translates an applied move into the lines sent to the mover and to the opponent.
func Notifications(move entity.Move) ([]string, []string) {
	mover := []string{ValidMove(move.Index())}
	opponent := []string{OpponentMoved(move.Index())}

	switch move.Result {
	case entity.ResultWin:
		mover = append(mover, LineVictory)
		opponent = append(opponent, LineDefeat)
	case entity.ResultDraw:
		mover = append(mover, LineTie)
		opponent = append(opponent, LineTie)
	case entity.ResultContinue:
	}

	return mover, opponent
}
