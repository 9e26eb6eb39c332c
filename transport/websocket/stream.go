package websocket

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// stream carries one protocol line per text frame.
type stream struct {
	conn *websocket.Conn

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

func newStream(conn *websocket.Conn) *stream {
	return &stream{conn: conn}
}

func (that *stream) ReadLine() (string, error) {
	_, data, err := that.conn.ReadMessage()
	if err != nil {
		return "", fmt.Errorf("failed to read message: %w", err)
	}

	return string(data), nil
}

func (that *stream) WriteLines(lines ...string) error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	for _, line := range lines {
		if err := that.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return fmt.Errorf("failed to set write deadline: %w", err)
		}

		if err := that.conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			return fmt.Errorf("failed to write message: %w", err)
		}
	}

	return nil
}

func (that *stream) Close() error {
	that.closeOnce.Do(func() {
		that.writeMu.Lock()
		_ = that.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		that.writeMu.Unlock()

		that.closeErr = that.conn.Close()
	})

	return that.closeErr
}

func (that *stream) RemoteAddr() string {
	return that.conn.RemoteAddr().String()
}
