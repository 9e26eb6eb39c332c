package link

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Match runs the two links of one game and tears both connections down when either ends.
type Match struct {
	logger *slog.Logger

	session  session
	streams  [2]Stream
	links    [2]*Link
	recorder *recorder
}

func NewMatch(logger *slog.Logger, session session, streams [2]Stream, gameRepo gameRepo, playerRepo playerRepo) *Match {
	log := logger.With("component", "match", "gameID", session.ID())
	rec := newRecorder(logger, gameRepo, playerRepo, session.Snapshot())
	players := session.Players()

	return &Match{
		logger:   log,
		session:  session,
		streams:  streams,
		recorder: rec,
		links: [2]*Link{
			NewLink(logger, session, rec, players[0], streams[0], streams[1]),
			NewLink(logger, session, rec, players[1], streams[1], streams[0]),
		},
	}
}

func (that *Match) ID() string {
	return that.session.ID()
}

// Run blocks until the game is over or a player's connection fails. It returns nil when the game
// reached a terminal state.
func (that *Match) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go that.recorder.run(ctx)
	that.recorder.Record(that.session.Snapshot())

	go func() {
		<-ctx.Done()
		that.closeStreams()
	}()

	if err := that.announce(); err != nil {
		cancel()
		that.recorder.close(ctx)
		return fmt.Errorf("failed to announce match: %w", err)
	}

	log.Info("match started")

	var (
		wg    sync.WaitGroup
		once  sync.Once
		cause error
	)

	for i, link := range that.links {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := link.Run()
			if err != nil {
				once.Do(func() {
					cause = err
					that.notifyLeft(i)
				})
			}

			cancel()
		}()
	}

	wg.Wait()
	that.recorder.close(ctx)

	if that.session.IsFinished() {
		log.Info("match finished", "status", that.session.Snapshot().Status)
		return nil
	}

	log.Warn("match aborted", "error", cause)

	return fmt.Errorf("match aborted: %w", cause)
}

func (that *Match) announce() error {
	for i, stream := range that.streams {
		lines := []string{Message(MsgAllConnected)}
		if i == 0 {
			lines = append(lines, Message(MsgYourTurn))
		}

		if err := stream.WriteLines(lines...); err != nil {
			return fmt.Errorf("failed to greet player %d: %w", i, err)
		}
	}

	return nil
}

// notifyLeft tells the other player that the player at index left before the game ended.
func (that *Match) notifyLeft(index int) {
	if that.session.IsFinished() {
		return
	}

	if err := that.streams[1-index].WriteLines(Message(MsgOpponentLeft)); err != nil {
		that.logger.Debug("failed to notify about leaving player", "error", err)
	}
}

func (that *Match) closeStreams() {
	for _, stream := range that.streams {
		if err := stream.Close(); err != nil {
			that.logger.Debug("failed to close stream", "remote", stream.RemoteAddr(), "error", err)
		}
	}
}
