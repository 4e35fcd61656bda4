package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-device/internal/config"
	"github.com/rocketscienceinc/tictactoe-device/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-device/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-device/internal/transport/redis"
	"github.com/rocketscienceinc/tictactoe-device/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-device/transport/rest"
	"github.com/rocketscienceinc/tictactoe-device/transport/stream"
	"github.com/rocketscienceinc/tictactoe-device/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	strategy, err := tictactoe.NewStrategy(conf.CPUStrategy, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("could not create cpu strategy: %w", err)
	}

	session := tictactoe.NewSession(strategy)

	var gameUseCase *usecase.GameManager
	if conf.Redis.Enabled {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		log.Info("Publishing game events", "addr", conf.Redis.GetRedisAddr(), "channel", conf.Redis.Channel)
		publisher := redis.NewPublisher(redisStorage.Connection, conf.Redis.Channel)
		gameUseCase = usecase.NewGameManager(logger, session, publisher)
	} else {
		gameUseCase = usecase.NewGameManager(logger, session, nil)
	}

	// run TCP stream server
	streamErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting stream server", "port", conf.TCPPort)
		streamServer := stream.New(logger, gameUseCase)
		if streamErr := streamServer.Start(ctx, conf.TCPPort); streamErr != nil {
			log.Error("Stream server error", "error", streamErr)
			streamErrCh <- streamErr
		}
	}()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, logger, conf.HTTPPort, gameUseCase); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameUseCase)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-streamErrCh:
		return fmt.Errorf("stream server error: %w", err)
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
