package tcp

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/rocketscienceinc/connectfive-backend/internal/repository"
	"github.com/rocketscienceinc/connectfive-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const readTimeout = 2 * time.Second

type client struct {
	conn   net.Conn
	reader *bufio.Reader
}

func dial(t *testing.T, addr, name string) *client {
	t.Helper()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, binary.Write(conn, binary.BigEndian, uint16(len(name))))
	_, err = io.WriteString(conn, name)
	require.NoError(t, err)

	return &client{conn: conn, reader: bufio.NewReader(conn)}
}

func (that *client) send(t *testing.T, line string) {
	t.Helper()

	_, err := io.WriteString(that.conn, line+"\n")
	require.NoError(t, err)
}

func (that *client) expect(t *testing.T, lines ...string) {
	t.Helper()

	require.NoError(t, that.conn.SetReadDeadline(time.Now().Add(readTimeout)))

	for _, want := range lines {
		got, err := that.reader.ReadString('\n')
		require.NoError(t, err, "waiting for %q", want)
		assert.Equal(t, want, strings.TrimSuffix(got, "\n"))
	}
}

func startServer(t *testing.T) (string, context.CancelFunc, <-chan error) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	lobby := usecase.NewLobby(logger, repository.NewNopGameRepository(), repository.NewNopPlayerRepository())

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	errCh := make(chan error, 1)
	go func() {
		errCh <- New(logger, lobby).Serve(ctx, listener)
	}()

	return listener.Addr().String(), cancel, errCh
}

func TestServer_PlaysAGame(t *testing.T) {
	// Given: a running server and two connected players
	addr, _, _ := startServer(t)

	alice := dial(t, addr, "alice")
	alice.expect(t, "WELCOME alice", "MESSAGE Waiting for Opponent!")

	bob := dial(t, addr, "bob")
	bob.expect(t, "WELCOME bob", "MESSAGE Waiting for Opponent!", "MESSAGE All Players Connected!")
	alice.expect(t, "MESSAGE All Players Connected!", "MESSAGE Your Turn!")

	// When: alice stacks column 4 while bob stacks column 5
	for k := range 4 {
		aliceIndex := (5-k)*9 + 4
		alice.send(t, "MOVE 4")
		alice.expect(t, fmt.Sprintf("VALID_MOVE%d", aliceIndex))
		bob.expect(t, fmt.Sprintf("OPPONENT_MOVED %d", aliceIndex))

		bobIndex := (5-k)*9 + 5
		bob.send(t, "MOVE 5")
		bob.expect(t, fmt.Sprintf("VALID_MOVE%d", bobIndex))
		alice.expect(t, fmt.Sprintf("OPPONENT_MOVED %d", bobIndex))
	}

	// And: bob tries to move out of turn
	bob.send(t, "MOVE 5")
	bob.expect(t, "MESSAGE Not Possible Move!")

	alice.send(t, "MOVE 4")

	// Then: alice wins and both connections are closed
	alice.expect(t, "VALID_MOVE13", "VICTORY")
	bob.expect(t, "OPPONENT_MOVED 13", "DEFEAT")

	_, err := alice.reader.ReadString('\n')
	require.ErrorIs(t, err, io.EOF)
	_, err = bob.reader.ReadString('\n')
	require.ErrorIs(t, err, io.EOF)
}

func TestServer_RejectsBlankName(t *testing.T) {
	// Given: a running server
	addr, _, _ := startServer(t)

	// When: a client sends an empty name
	blank := dial(t, addr, "")
	require.NoError(t, blank.conn.SetReadDeadline(time.Now().Add(readTimeout)))

	// Then: the connection is closed without a greeting
	_, err := blank.reader.ReadString('\n')
	require.ErrorIs(t, err, io.EOF)
}

func TestServer_Shutdown(t *testing.T) {
	// Given: a running server with a waiting player
	addr, cancel, errCh := startServer(t)

	alice := dial(t, addr, "alice")
	alice.expect(t, "WELCOME alice", "MESSAGE Waiting for Opponent!")

	// When: the server is stopped
	cancel()

	// Then: Serve returns and the waiting player is disconnected
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(readTimeout):
		t.Fatal("server did not stop")
	}

	_, err := alice.reader.ReadString('\n')
	require.ErrorIs(t, err, io.EOF)
}
