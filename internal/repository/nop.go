package repository

import (
	"context"

	"github.com/rocketscienceinc/connectfive-backend/internal/entity"
)

// nopGame and nopPlayer stand in for Redis when the live-state mirror is disabled.
type nopGame struct{}

func NewNopGameRepository() GameRepository {
	return nopGame{}
}

func (nopGame) CreateOrUpdate(context.Context, *entity.Snapshot) error { return nil }

func (nopGame) GetByID(context.Context, string) (*entity.Snapshot, error) {
	return nil, ErrGameNotFound
}

func (nopGame) DeleteByID(context.Context, string) error { return nil }

type nopPlayer struct{}

func NewNopPlayerRepository() PlayerRepository {
	return nopPlayer{}
}

func (nopPlayer) CreateOrUpdate(context.Context, *entity.Player) error { return nil }

func (nopPlayer) GetByID(context.Context, string) (*entity.Player, error) {
	return nil, ErrPlayerNotFound
}

func (nopPlayer) DeleteByID(context.Context, string) error { return nil }
