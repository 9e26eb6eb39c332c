package tcp

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/rocketscienceinc/connectfive-backend/internal/link"
)

const handshakeTimeout = 10 * time.Second

type lobby interface {
	Join(ctx context.Context, stream link.Stream, name string) error
}

// Server accepts raw TCP players. A client opens with its name as a big-endian uint16 byte
// length followed by UTF-8 bytes, then speaks the line protocol.
type Server struct {
	logger *slog.Logger
	lobby  lobby
}

func New(logger *slog.Logger, lobby lobby) *Server {
	return &Server{
		logger: logger.With("component", "tcp"),
		lobby:  lobby,
	}
}

// Start listens on port and serves until ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	return that.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled, then waits for open connections
// to be released.
func (that *Server) Serve(ctx context.Context, listener net.Listener) error {
	log := that.logger.With("method", "Serve")

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	log.Info("tcp server is listening", "addr", listener.Addr().String())

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("failed to accept connection: %w", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			that.handleConn(ctx, conn)
		}()
	}
}

func (that *Server) handleConn(ctx context.Context, conn net.Conn) {
	log := that.logger.With("method", "handleConn", "remote", conn.RemoteAddr().String())

	defer conn.Close()

	reader := bufio.NewReader(conn)

	name, err := readName(conn, reader)
	if err != nil {
		log.Info("handshake failed", "error", err)
		return
	}

	log.Debug("player connected", "name", name)

	if err = that.lobby.Join(ctx, link.NewConnStream(conn, reader), name); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Debug("player left", "name", name)
			return
		}

		log.Info("player session ended with error", "name", name, "error", err)
		return
	}

	log.Debug("player session ended", "name", name)
}

func readName(conn net.Conn, reader io.Reader) (string, error) {
	if err := conn.SetReadDeadline(time.Now().Add(handshakeTimeout)); err != nil {
		return "", fmt.Errorf("failed to set read deadline: %w", err)
	}

	var length uint16
	if err := binary.Read(reader, binary.BigEndian, &length); err != nil {
		return "", fmt.Errorf("failed to read name length: %w", err)
	}

	name := make([]byte, length)
	if _, err := io.ReadFull(reader, name); err != nil {
		return "", fmt.Errorf("failed to read name: %w", err)
	}

	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		return "", fmt.Errorf("failed to clear read deadline: %w", err)
	}

	return string(name), nil
}
