package link

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/connectfive-backend/internal/apperror"
)

const (
	maxLineLength = 1024
	writeTimeout  = 10 * time.Second
)

// Stream is one player's line-oriented connection.
// WriteLines may be called from both players' goroutines; lines of one call are never interleaved.
type Stream interface {
	ReadLine() (string, error)
	WriteLines(lines ...string) error
	Close() error
	RemoteAddr() string
}

type connStream struct {
	conn   net.Conn
	reader *bufio.Reader

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// NewConnStream wraps a net.Conn. reader may hold bytes already buffered during the handshake.
func NewConnStream(conn net.Conn, reader io.Reader) Stream {
	if reader == nil {
		reader = conn
	}

	return &connStream{
		conn:   conn,
		reader: bufio.NewReader(reader),
	}
}

// ReadLine returns the next line without its terminator. A line longer than maxLineLength is
// consumed whole and reported as ErrInvalidCommand; the stream stays usable.
func (that *connStream) ReadLine() (string, error) {
	var (
		line    []byte
		tooLong bool
	)

	for {
		chunk, isPrefix, err := that.reader.ReadLine()
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}

		if err != nil {
			return "", fmt.Errorf("failed to read line: %w", err)
		}

		if !tooLong {
			line = append(line, chunk...)
			tooLong = len(line) > maxLineLength
		}

		if !isPrefix {
			break
		}
	}

	if tooLong {
		return "", fmt.Errorf("%w: line longer than %d bytes", apperror.ErrInvalidCommand, maxLineLength)
	}

	return string(line), nil
}

func (that *connStream) WriteLines(lines ...string) error {
	var builder strings.Builder
	for _, line := range lines {
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err := that.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if _, err := io.WriteString(that.conn, builder.String()); err != nil {
		return fmt.Errorf("failed to write lines: %w", err)
	}

	return nil
}

func (that *connStream) Close() error {
	that.closeOnce.Do(func() {
		that.closeErr = that.conn.Close()
	})

	return that.closeErr
}

func (that *connStream) RemoteAddr() string {
	return that.conn.RemoteAddr().String()
}
