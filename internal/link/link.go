package link

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/connectfive-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfive-backend/internal/entity"
)

type session interface {
	ID() string
	Players() [2]*entity.Player
	AttemptMove(player *entity.Player, column int) (entity.Move, error)
	IsFinished() bool
	Snapshot() entity.Snapshot
}

type snapshotRecorder interface {
	Record(snapshot entity.Snapshot)
}

// Link drives one player: it reads that player's commands, applies them to the shared session
// and delivers the outcome to both players.
type Link struct {
	logger *slog.Logger

	session  session
	recorder snapshotRecorder

	player   *entity.Player
	stream   Stream
	opponent Stream
}

func NewLink(logger *slog.Logger, session session, recorder snapshotRecorder, player *entity.Player, stream, opponent Stream) *Link {
	return &Link{
		logger:   logger.With("component", "link", "gameID", session.ID(), "playerID", player.ID),
		session:  session,
		recorder: recorder,
		player:   player,
		stream:   stream,
		opponent: opponent,
	}
}

// Run processes commands until the game ends (nil) or the player's stream fails.
func (that *Link) Run() error {
	for {
		line, err := that.stream.ReadLine()
		if errors.Is(err, apperror.ErrInvalidCommand) {
			that.logger.Info("invalid command", "method", "Run", "error", err)

			if err = that.reject(); err != nil {
				return err
			}

			continue
		}

		if err != nil {
			return fmt.Errorf("failed to read command: %w", err)
		}

		finished, err := that.handleLine(line)
		if err != nil {
			return err
		}

		if finished {
			return nil
		}
	}
}

func (that *Link) handleLine(line string) (bool, error) {
	log := that.logger.With("method", "handleLine")

	command, err := ParseCommand(line)
	if err != nil {
		log.Info("invalid command", "line", line, "error", err)
		return false, that.reject()
	}

	move, err := that.session.AttemptMove(that.player, command.Column)
	if errors.Is(err, apperror.ErrCellOccupied) {
		log.Error("board invariant violated", "column", command.Column, "error", err)
		return false, that.reject()
	}

	if err != nil {
		log.Info("move rejected", "column", command.Column, "error", err)
		return false, that.reject()
	}

	that.recorder.Record(that.session.Snapshot())

	log.Debug("move applied", "row", move.Row, "column", move.Column, "result", move.Result.String())

	moverLines, opponentLines := Notifications(move)

	moverErr := that.stream.WriteLines(moverLines...)

	if err = that.opponent.WriteLines(opponentLines...); err != nil {
		log.Warn("failed to notify opponent", "error", err)
	}

	if moverErr != nil {
		return false, fmt.Errorf("failed to send move result: %w", moverErr)
	}

	return move.Result.IsTerminal(), nil
}

func (that *Link) reject() error {
	if err := that.stream.WriteLines(Rejected()); err != nil {
		return fmt.Errorf("failed to send rejection: %w", err)
	}

	return nil
}
