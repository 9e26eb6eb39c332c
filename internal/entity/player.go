package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/connectfive-backend/internal/apperror"
)

type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Mark       Marker `json:"mark"`
	GameID     string `json:"game_id,omitempty"`
	OpponentID string `json:"opponent_id,omitempty"`

	opponent *Player
}

func NewPlayer(id, name string, mark Marker) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ErrInvalidName
	}

	return &Player{
		ID:   id,
		Name: name,
		Mark: mark,
	}, nil
}

// SetOpponent links the player to the other participant of the game. It may be called only once.
func (that *Player) SetOpponent(opponent *Player) error {
	if that.opponent != nil {
		return fmt.Errorf("%w: player %s", apperror.ErrOpponentAlreadySet, that.ID)
	}

	if opponent.Mark == that.Mark {
		return fmt.Errorf("%w: %s", apperror.ErrSameMarker, that.Mark)
	}

	that.opponent = opponent
	that.OpponentID = opponent.ID

	return nil
}

func (that *Player) Opponent() *Player {
	return that.opponent
}
