package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/connectfive-backend/internal/entity"
	"github.com/rocketscienceinc/connectfive-backend/internal/repository"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	ListGames(w http.ResponseWriter, _ *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	GetPlayer(w http.ResponseWriter, r *http.Request)
}

type lobby interface {
	Sessions() []entity.Snapshot
	Session(id string) (entity.Snapshot, bool)
	Player(id string) (entity.Player, bool)
}

type gameRepo interface {
	GetByID(ctx context.Context, id string) (*entity.Snapshot, error)
}

type playerRepo interface {
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type handlers struct {
	logger     *slog.Logger
	lobby      lobby
	gameRepo   gameRepo
	playerRepo playerRepo
}

// NewHandlers serves games and players from this process first and falls back to the shared
// store, which may hold games run by other instances.
func NewHandlers(logger *slog.Logger, lobby lobby, gameRepo gameRepo, playerRepo playerRepo) Handlers {
	return &handlers{
		logger:     logger.With("component", "rest"),
		lobby:      lobby,
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) ListGames(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, that.lobby.Sessions())
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if snapshot, ok := that.lobby.Session(id); ok {
		that.writeJSON(w, snapshot)
		return
	}

	snapshot, err := that.gameRepo.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrGameNotFound) {
		http.Error(w, "Game not found", http.StatusNotFound)
		return
	}

	if err != nil {
		that.logger.Error("failed to get game", "method", "GetGame", "gameID", id, "error", err)
		http.Error(w, "Failed to get game", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, snapshot)
}

func (that *handlers) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if player, ok := that.lobby.Player(id); ok {
		that.writeJSON(w, player)
		return
	}

	player, err := that.playerRepo.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		http.Error(w, "Player not found", http.StatusNotFound)
		return
	}

	if err != nil {
		that.logger.Error("failed to get player", "method", "GetPlayer", "playerID", id, "error", err)
		http.Error(w, "Failed to get player", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, player)
}

func (that *handlers) writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
