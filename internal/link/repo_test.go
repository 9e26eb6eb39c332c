package link

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/connectfive-backend/internal/entity"
)

type memoryGames struct {
	mu      sync.Mutex
	games   map[string]entity.Snapshot
	maxSeq  int
	deleted []string
}

func newMemoryGames() *memoryGames {
	return &memoryGames{games: make(map[string]entity.Snapshot)}
}

func (that *memoryGames) CreateOrUpdate(_ context.Context, snapshot *entity.Snapshot) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[snapshot.ID] = *snapshot
	that.maxSeq = max(that.maxSeq, snapshot.Seq)

	return nil
}

func (that *memoryGames) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.games, id)
	that.deleted = append(that.deleted, id)

	return nil
}

type memoryPlayers struct {
	mu      sync.Mutex
	players map[string]entity.Player
	deleted []string
}

func newMemoryPlayers() *memoryPlayers {
	return &memoryPlayers{players: make(map[string]entity.Player)}
}

func (that *memoryPlayers) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.players[player.ID] = *player

	return nil
}

func (that *memoryPlayers) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.players, id)
	that.deleted = append(that.deleted, id)

	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
