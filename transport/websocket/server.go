package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/connectfive-backend/internal/link"
)

const (
	handshakeTimeout = 10 * time.Second
	shutdownTimeout  = 5 * time.Second
)

type lobby interface {
	Join(ctx context.Context, stream link.Stream, name string) error
}

// Server accepts browser players on /ws. The first text frame is the player's name, every
// frame after that is one protocol line.
type Server struct {
	logger   *slog.Logger
	lobby    lobby
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, lobby lobby) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		lobby:  lobby,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
	}
}

// Handler routes /ws. Players joined through it stay bound to ctx rather than to the request.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
		that.handleConnection(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(ctx),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown websocket server", "error", err)
		}
	}()

	that.logger.Info("websocket server is listening", "port", port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) handleConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleConnection", "remote", r.RemoteAddr)

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Info("failed to upgrade connection", "error", err)
		return
	}

	stream := newStream(conn)
	defer stream.Close()

	name, err := readName(conn)
	if err != nil {
		log.Info("handshake failed", "error", err)
		return
	}

	log.Debug("player connected", "name", name)

	if err = that.lobby.Join(ctx, stream, name); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Debug("player left", "name", name)
			return
		}

		log.Info("player session ended with error", "name", name, "error", err)
		return
	}

	log.Debug("player session ended", "name", name)
}

func readName(conn *websocket.Conn) (string, error) {
	if err := conn.SetReadDeadline(time.Now().Add(handshakeTimeout)); err != nil {
		return "", fmt.Errorf("failed to set read deadline: %w", err)
	}

	messageType, data, err := conn.ReadMessage()
	if err != nil {
		return "", fmt.Errorf("failed to read name: %w", err)
	}

	if messageType != websocket.TextMessage {
		return "", fmt.Errorf("unexpected message type %d", messageType)
	}

	if err = conn.SetReadDeadline(time.Time{}); err != nil {
		return "", fmt.Errorf("failed to clear read deadline: %w", err)
	}

	return string(data), nil
}
