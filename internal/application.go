package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/connectfive-backend/internal/config"
	"github.com/rocketscienceinc/connectfive-backend/internal/repository"
	"github.com/rocketscienceinc/connectfive-backend/internal/repository/storage"
	"github.com/rocketscienceinc/connectfive-backend/internal/usecase"
	"github.com/rocketscienceinc/connectfive-backend/transport/rest"
	"github.com/rocketscienceinc/connectfive-backend/transport/tcp"
	"github.com/rocketscienceinc/connectfive-backend/transport/websocket"
	"golang.org/x/sync/errgroup"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application until SIGINT or SIGTERM, or until one of the servers fails.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gameRepo := repository.NewNopGameRepository()
	playerRepo := repository.NewNopPlayerRepository()

	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		gameRepo = repository.NewGameRepository(redisStorage, conf.Redis.SnapshotTTL)
		playerRepo = repository.NewPlayerRepository(redisStorage, conf.Redis.SnapshotTTL)

		log.Info("live game state is mirrored to redis", "addr", redisAddrString)
	}

	lobby := usecase.NewLobby(logger, gameRepo, playerRepo)

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("Starting TCP server", "port", conf.TCPPort)
		if err := tcp.New(logger, lobby).Start(ctx, conf.TCPPort); err != nil {
			return fmt.Errorf("TCP server error: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if err := websocket.New(logger, lobby).Start(ctx, conf.SocketPort); err != nil {
			return fmt.Errorf("WebSocket server error: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err := rest.Start(ctx, conf.HTTPPort, rest.NewHandlers(logger, lobby, gameRepo, playerRepo)); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
