package usecase

import (
	"errors"
	"sync"

	"github.com/rocketscienceinc/connectfive-backend/internal/entity"
	"github.com/rocketscienceinc/connectfive-backend/internal/link"
)

var errStreamStopped = errors.New("stream stopped")

// seat is a player waiting for an opponent.
type seat struct {
	player *entity.Player
	stream *watchedStream

	// taken is closed by the opponent that claims the seat, released by the waiting side once it
	// no longer reads from the stream.
	taken    chan struct{}
	released chan struct{}

	// done is closed when the match this seat was taken into has ended.
	done     chan struct{}
	matchErr error
}

func newSeat(player *entity.Player, stream link.Stream) *seat {
	return &seat{
		player:   player,
		stream:   watch(stream),
		taken:    make(chan struct{}),
		released: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (that *seat) finish(err error) {
	that.matchErr = err
	close(that.done)
}

type lineRead struct {
	line string
	err  error
}

// watchedStream reads the underlying stream from its own goroutine so a hang-up is noticed while
// the player waits. Reads have a single consumer at a time: the lobby until the seat is
// released, the match after that.
type watchedStream struct {
	link.Stream

	reads    chan lineRead
	quit     chan struct{}
	stopOnce sync.Once

	pending *lineRead
	err     error
}

func watch(stream link.Stream) *watchedStream {
	watched := &watchedStream{
		Stream: stream,
		reads:  make(chan lineRead),
		quit:   make(chan struct{}),
	}

	go watched.pump()

	return watched
}

func (that *watchedStream) pump() {
	for {
		line, err := that.Stream.ReadLine()

		select {
		case that.reads <- lineRead{line: line, err: err}:
		case <-that.quit:
			return
		}

		if err != nil {
			return
		}
	}
}

func (that *watchedStream) ReadLine() (string, error) {
	if that.pending != nil {
		read := *that.pending
		that.pending = nil

		return that.deliver(read)
	}

	if that.err != nil {
		return "", that.err
	}

	select {
	case read := <-that.reads:
		return that.deliver(read)
	case <-that.quit:
		return "", errStreamStopped
	}
}

// unread puts a read taken by the lobby back for the next consumer.
func (that *watchedStream) unread(read lineRead) {
	that.pending = &read
}

func (that *watchedStream) deliver(read lineRead) (string, error) {
	if read.err != nil {
		that.err = read.err
	}

	return read.line, read.err
}

func (that *watchedStream) stop() {
	that.stopOnce.Do(func() {
		close(that.quit)
	})
}

func (that *watchedStream) Close() error {
	that.stop()

	return that.Stream.Close()
}
