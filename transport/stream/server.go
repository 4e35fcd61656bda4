package stream

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-device/internal/apperror"
)

// MaxRequestSize bounds a single request line, newline included.
const MaxRequestSize = 256

var ErrRequestTooLong = errors.New("request too long")

type uGame interface {
	Submit(ctx context.Context, request []byte) []byte
}

// Server carries the text protocol over TCP: one newline-terminated request, one
// response, repeated until the client hangs up.
type Server struct {
	logger *slog.Logger
	uGame  uGame

	idleTimeout time.Duration

	wg sync.WaitGroup
}

func New(logger *slog.Logger, uGame uGame) *Server {
	return &Server{
		logger: logger.With("component", "stream"),
		uGame:  uGame,

		idleTimeout: 5 * time.Minute,
	}
}

// Start - listens on port and serves until ctx is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	return that.Serve(ctx, listener)
}

// Serve - accepts connections on listener until ctx is cancelled or Accept fails, then
// waits for open connections to finish.
func (that *Server) Serve(ctx context.Context, listener net.Listener) error {
	log := that.logger.With("method", "Serve", "addr", listener.Addr().String())

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-connCtx.Done()
		_ = listener.Close()
	}()

	log.Info("stream server listening")

	for {
		conn, err := listener.Accept()
		if err != nil {
			shuttingDown := ctx.Err() != nil

			// release connections still waiting for a request
			cancel()
			that.wg.Wait()

			if shuttingDown {
				return nil
			}

			return fmt.Errorf("failed to accept connection: %w", err)
		}

		that.wg.Add(1)
		go func() {
			defer that.wg.Done()
			that.handleConn(connCtx, conn)
		}()
	}
}

func (that *Server) handleConn(ctx context.Context, conn net.Conn) {
	log := that.logger.With("method", "handleConn", "remote", conn.RemoteAddr().String())

	defer conn.Close()

	// unblock a pending read when the server shuts down
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetReadDeadline(time.Now())
	})
	defer stop()

	log.Info("connection opened")

	reader := bufio.NewReaderSize(conn, MaxRequestSize)
	for {
		if err := conn.SetReadDeadline(time.Now().Add(that.idleTimeout)); err != nil {
			log.Error("failed to set deadline", "error", err)
			return
		}

		// a cancel that raced the deadline above would otherwise be overwritten
		if ctx.Err() != nil {
			log.Info("connection closed")
			return
		}

		request, err := readRequest(reader)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				log.Info("connection closed")
			} else {
				log.Error("failed to read request", "error", fmt.Errorf("%w: %w", apperror.ErrTransportFailure, err))
			}
			return
		}

		response := that.uGame.Submit(ctx, request)

		if _, err = conn.Write(response); err != nil {
			log.Error("failed to write response", "error", fmt.Errorf("%w: %w", apperror.ErrTransportFailure, err))
			return
		}
	}
}

// readRequest returns one request with its trailing newline. A final line without a
// newline is still a request; a bare EOF is io.EOF.
func readRequest(reader *bufio.Reader) ([]byte, error) {
	line, err := reader.ReadSlice('\n')
	switch {
	case err == nil:
	case errors.Is(err, bufio.ErrBufferFull):
		return nil, fmt.Errorf("%w: more than %d bytes", ErrRequestTooLong, MaxRequestSize)
	case errors.Is(err, io.EOF) && len(line) > 0:
	default:
		return nil, err
	}

	request := make([]byte, len(line))
	copy(request, line)

	return request, nil
}
