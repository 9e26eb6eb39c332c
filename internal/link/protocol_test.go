package link

import (
	"testing"

	"github.com/rocketscienceinc/connectfive-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfive-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	t.Run("Decodes a move", func(t *testing.T) {
		for line, column := range map[string]int{
			"MOVE 0":      0,
			"MOVE 8":      8,
			"  MOVE 4\r":  4,
			"MOVE   3   ": 3,
		} {
			command, err := ParseCommand(line)

			require.NoError(t, err, "line %q", line)
			assert.Equal(t, Command{Column: column}, command)
		}
	})

	t.Run("Rejects columns outside the board", func(t *testing.T) {
		for _, line := range []string{"MOVE 9", "MOVE -1", "MOVE 54"} {
			_, err := ParseCommand(line)

			require.ErrorIs(t, err, apperror.ErrInvalidColumn, "line %q", line)
		}
	})

	t.Run("Rejects a non-integer column", func(t *testing.T) {
		for _, line := range []string{"MOVE left", "MOVE 3.0", "MOVE 0x3"} {
			_, err := ParseCommand(line)

			require.ErrorIs(t, err, apperror.ErrInvalidColumn, "line %q", line)
		}
	})

	t.Run("Rejects a signed column", func(t *testing.T) {
		for _, line := range []string{"MOVE +3", "MOVE -0", "MOVE +0"} {
			_, err := ParseCommand(line)

			require.ErrorIs(t, err, apperror.ErrInvalidColumn, "line %q", line)
		}
	})

	t.Run("Rejects unknown and malformed commands", func(t *testing.T) {
		for _, line := range []string{"", "MOVE", "MOVE 1 2", "move 1", "DROP 1", "MOVE1"} {
			_, err := ParseCommand(line)

			require.ErrorIs(t, err, apperror.ErrInvalidCommand, "line %q", line)
		}
	})
}

func TestNotifications(t *testing.T) {
	t.Run("Continue", func(t *testing.T) {
		// Given: a move that landed at (5, 2)
		move := entity.Move{Row: 5, Column: 2, Result: entity.ResultContinue}

		// When: translating it into notifications
		mover, opponent := Notifications(move)

		// Then: the mover sees VALID_MOVE and the opponent OPPONENT_MOVED with the absolute index
		assert.Equal(t, []string{"VALID_MOVE47"}, mover)
		assert.Equal(t, []string{"OPPONENT_MOVED 47"}, opponent)
	})

	t.Run("Win", func(t *testing.T) {
		mover, opponent := Notifications(entity.Move{Row: 1, Column: 0, Result: entity.ResultWin})

		assert.Equal(t, []string{"VALID_MOVE9", "VICTORY"}, mover)
		assert.Equal(t, []string{"OPPONENT_MOVED 9", "DEFEAT"}, opponent)
	})

	t.Run("Draw", func(t *testing.T) {
		mover, opponent := Notifications(entity.Move{Row: 0, Column: 7, Result: entity.ResultDraw})

		assert.Equal(t, []string{"VALID_MOVE7", "TIE"}, mover)
		assert.Equal(t, []string{"OPPONENT_MOVED 7", "TIE"}, opponent)
	})
}

func TestLineFormats(t *testing.T) {
	assert.Equal(t, "WELCOME alice", Welcome("alice"))
	assert.Equal(t, "MESSAGE Waiting for Opponent!", Message(MsgWaiting))
	assert.Equal(t, "MESSAGE Not Possible Move!", Rejected())
}
