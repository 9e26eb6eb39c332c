package link

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/connectfive-backend/internal/entity"
)

const storeTimeout = 3 * time.Second

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, snapshot *entity.Snapshot) error
	DeleteByID(ctx context.Context, id string) error
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	DeleteByID(ctx context.Context, id string) error
}

// recorder mirrors a game's live state into the repositories from its own goroutine,
// so storage latency never holds up move processing.
type recorder struct {
	logger *slog.Logger

	gameRepo   gameRepo
	playerRepo playerRepo

	gameID    string
	players   []*entity.Player
	snapshots chan entity.Snapshot
	done      chan struct{}
}

func newRecorder(logger *slog.Logger, gameRepo gameRepo, playerRepo playerRepo, snapshot entity.Snapshot) *recorder {
	return &recorder{
		logger:     logger.With("component", "recorder", "gameID", snapshot.ID),
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
		gameID:     snapshot.ID,
		players:    snapshot.Players,
		// one snapshot per move plus the initial one
		snapshots: make(chan entity.Snapshot, entity.Cells+1),
		done:      make(chan struct{}),
	}
}

// Record queues a snapshot. It never blocks.
func (that *recorder) Record(snapshot entity.Snapshot) {
	select {
	case that.snapshots <- snapshot:
	default:
		that.logger.Warn("snapshot queue is full, dropping", "seq", snapshot.Seq)
	}
}

func (that *recorder) run(ctx context.Context) {
	defer close(that.done)

	log := that.logger.With("method", "run")
	ctx = context.WithoutCancel(ctx)

	for _, player := range that.players {
		if err := that.withTimeout(ctx, func(ctx context.Context) error {
			return that.playerRepo.CreateOrUpdate(ctx, player)
		}); err != nil {
			log.Error("failed to save player", "playerID", player.ID, "error", err)
		}
	}

	last := -1
	for snapshot := range that.snapshots {
		// both links record after their own move, so snapshots may arrive out of order
		if snapshot.Seq <= last {
			continue
		}
		last = snapshot.Seq

		if err := that.withTimeout(ctx, func(ctx context.Context) error {
			return that.gameRepo.CreateOrUpdate(ctx, &snapshot)
		}); err != nil {
			log.Error("failed to save game snapshot", "seq", snapshot.Seq, "error", err)
		}
	}
}

// close stops accepting snapshots, waits for pending writes and removes the live records.
func (that *recorder) close(ctx context.Context) {
	log := that.logger.With("method", "close")

	close(that.snapshots)
	<-that.done

	ctx = context.WithoutCancel(ctx)

	if err := that.withTimeout(ctx, func(ctx context.Context) error {
		return that.gameRepo.DeleteByID(ctx, that.gameID)
	}); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	for _, player := range that.players {
		if err := that.withTimeout(ctx, func(ctx context.Context) error {
			return that.playerRepo.DeleteByID(ctx, player.ID)
		}); err != nil {
			log.Error("failed to delete player", "playerID", player.ID, "error", err)
		}
	}
}

func (that *recorder) withTimeout(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return fn(ctx)
}
