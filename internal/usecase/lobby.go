package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/connectfive-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfive-backend/internal/entity"
	"github.com/rocketscienceinc/connectfive-backend/internal/game"
	"github.com/rocketscienceinc/connectfive-backend/internal/link"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, snapshot *entity.Snapshot) error
	DeleteByID(ctx context.Context, id string) error
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	DeleteByID(ctx context.Context, id string) error
}

// Lobby pairs joining players in arrival order and runs their matches.
// The first player of a pair plays BLUE and moves first.
type Lobby struct {
	logger *slog.Logger

	gameRepo   gameRepo
	playerRepo playerRepo

	mu      sync.Mutex
	waiting *seat

	sessionsMu sync.RWMutex
	sessions   map[string]*game.GameSession
}

func NewLobby(logger *slog.Logger, gameRepo gameRepo, playerRepo playerRepo) *Lobby {
	return &Lobby{
		logger:     logger.With("component", "lobby"),
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
		sessions:   make(map[string]*game.GameSession),
	}
}

// Join seats the player behind stream. It blocks until the player's match has ended, or until ctx
// is cancelled while the player is still waiting for an opponent.
func (that *Lobby) Join(ctx context.Context, stream link.Stream, name string) error {
	log := that.logger.With("method", "Join", "remote", stream.RemoteAddr())

	name = strings.TrimSpace(name)
	if name == "" {
		return apperror.ErrInvalidName
	}

	if err := stream.WriteLines(link.Welcome(name), link.Message(link.MsgWaiting)); err != nil {
		return fmt.Errorf("failed to welcome player: %w", err)
	}

	that.mu.Lock()
	first := that.waiting

	if first == nil {
		player, err := entity.NewPlayer(uuid.NewString(), name, entity.MarkBlue)
		if err != nil {
			that.mu.Unlock()
			return fmt.Errorf("failed to create player: %w", err)
		}

		own := newSeat(player, stream)
		that.waiting = own
		that.mu.Unlock()

		log.Info("player is waiting for an opponent", "playerID", player.ID, "name", name)

		return that.wait(ctx, own)
	}

	that.waiting = nil
	close(first.taken)
	that.mu.Unlock()

	<-first.released

	player, err := entity.NewPlayer(uuid.NewString(), name, entity.MarkRed)
	if err != nil {
		first.finish(fmt.Errorf("failed to create opponent: %w", err))
		return fmt.Errorf("failed to create player: %w", err)
	}

	err = that.play(ctx, first, player, stream)
	first.finish(err)

	return err
}

func (that *Lobby) wait(ctx context.Context, own *seat) error {
	if err := that.hold(ctx, own); err != nil {
		own.stream.stop()
		return err
	}

	close(own.released)
	<-own.done

	return own.matchErr
}

// hold keeps the seat until an opponent takes it (nil) or the player leaves. Lines sent before
// the game starts are rejected.
func (that *Lobby) hold(ctx context.Context, own *seat) error {
	for {
		select {
		case <-own.taken:
			return nil
		case <-ctx.Done():
			if that.withdraw(own) {
				that.logger.Info("waiting player left", "playerID", own.player.ID)
				return ctx.Err()
			}

			return nil
		case read := <-own.stream.reads:
			that.mu.Lock()
			if that.waiting != own {
				own.stream.unread(read)
				that.mu.Unlock()
				return nil
			}

			if read.err != nil {
				that.waiting = nil
				that.mu.Unlock()

				that.logger.Info("waiting player disconnected", "playerID", own.player.ID, "error", read.err)

				return fmt.Errorf("waiting player disconnected: %w", read.err)
			}
			that.mu.Unlock()

			if err := own.stream.WriteLines(link.Rejected()); err != nil && that.withdraw(own) {
				return fmt.Errorf("failed to send rejection: %w", err)
			}
		}
	}
}

// withdraw removes own from the waiting seat. It reports false when an opponent already took it.
func (that *Lobby) withdraw(own *seat) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.waiting != own {
		return false
	}

	that.waiting = nil

	return true
}

func (that *Lobby) play(ctx context.Context, first *seat, second *entity.Player, stream link.Stream) error {
	session, err := game.NewGameSession(uuid.NewString(), first.player, second)
	if err != nil {
		return fmt.Errorf("failed to create game session: %w", err)
	}

	log := that.logger.With("method", "play", "gameID", session.ID())

	match := link.NewMatch(that.logger, session, [2]link.Stream{first.stream, stream}, that.gameRepo, that.playerRepo)

	that.register(session)
	defer that.unregister(session.ID())

	log.Info("match created", "blue", first.player.Name, "red", second.Name)

	if err = match.Run(ctx); err != nil {
		return fmt.Errorf("failed to run match: %w", err)
	}

	return nil
}

func (that *Lobby) register(session *game.GameSession) {
	that.sessionsMu.Lock()
	defer that.sessionsMu.Unlock()

	that.sessions[session.ID()] = session
}

func (that *Lobby) unregister(id string) {
	that.sessionsMu.Lock()
	defer that.sessionsMu.Unlock()

	delete(that.sessions, id)
}

// Sessions returns snapshots of all running games ordered by ID.
func (that *Lobby) Sessions() []entity.Snapshot {
	that.sessionsMu.RLock()
	snapshots := make([]entity.Snapshot, 0, len(that.sessions))
	for _, session := range that.sessions {
		snapshots = append(snapshots, session.Snapshot())
	}
	that.sessionsMu.RUnlock()

	slices.SortFunc(snapshots, func(a, b entity.Snapshot) int {
		return strings.Compare(a.ID, b.ID)
	})

	return snapshots
}

// Session returns a snapshot of a running game.
func (that *Lobby) Session(id string) (entity.Snapshot, bool) {
	that.sessionsMu.RLock()
	session, ok := that.sessions[id]
	that.sessionsMu.RUnlock()

	if !ok {
		return entity.Snapshot{}, false
	}

	return session.Snapshot(), true
}

// Player returns a participant of a running game.
func (that *Lobby) Player(id string) (entity.Player, bool) {
	that.sessionsMu.RLock()
	defer that.sessionsMu.RUnlock()

	for _, session := range that.sessions {
		for _, player := range session.Players() {
			if player.ID == id {
				return *player, true
			}
		}
	}

	return entity.Player{}, false
}
