// Package linktest provides an in-memory line stream for tests of code that talks to players.
package linktest

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Timeout bounds every wait for a line.
const Timeout = 2 * time.Second

var ErrClosed = errors.New("stream closed")

// Stream is driven by the test: Send feeds lines the player "types", Expect checks what the
// server wrote back.
type Stream struct {
	name    string
	in      chan string
	written chan string

	hangupOnce sync.Once
	closed     chan struct{}
	closeOnce  sync.Once
}

func NewStream(name string) *Stream {
	return &Stream{
		name:    name,
		in:      make(chan string, 16),
		written: make(chan string, 256),
		closed:  make(chan struct{}),
	}
}

func (that *Stream) ReadLine() (string, error) {
	select {
	case line, ok := <-that.in:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	case <-that.closed:
		return "", ErrClosed
	}
}

func (that *Stream) WriteLines(lines ...string) error {
	select {
	case <-that.closed:
		return ErrClosed
	default:
	}

	for _, line := range lines {
		that.written <- line
	}

	return nil
}

func (that *Stream) Close() error {
	that.closeOnce.Do(func() {
		close(that.closed)
	})

	return nil
}

func (that *Stream) RemoteAddr() string {
	return that.name
}

// Send queues a line for the server to read.
func (that *Stream) Send(line string) {
	that.in <- line
}

// Hangup makes the next read return io.EOF, as if the player disconnected.
func (that *Stream) Hangup() {
	that.hangupOnce.Do(func() {
		close(that.in)
	})
}

func (that *Stream) IsClosed() bool {
	select {
	case <-that.closed:
		return true
	default:
		return false
	}
}

// Expect fails the test unless the next written lines are exactly lines, in order.
func (that *Stream) Expect(t *testing.T, lines ...string) {
	t.Helper()

	for _, want := range lines {
		select {
		case got := <-that.written:
			require.Equal(t, want, got, "stream %s", that.name)
		case <-time.After(Timeout):
			t.Fatalf("stream %s: timed out waiting for %q", that.name, want)
		}
	}
}

// ExpectNone fails the test if a line is already waiting to be read.
func (that *Stream) ExpectNone(t *testing.T) {
	t.Helper()

	select {
	case got := <-that.written:
		t.Fatalf("stream %s: unexpected line %q", that.name, got)
	default:
	}
}
