package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Start - serves /ping and /submit until ctx is cancelled.
func Start(ctx context.Context, logger *slog.Logger, port string, uGame uGame) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewMux(logger, uGame),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func NewMux(logger *slog.Logger, uGame uGame) *http.ServeMux {
	logger = logger.With("component", "rest")

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", NewPingHandler().PingHandler)
	mux.HandleFunc("/submit", NewSubmitHandler(logger, uGame).SubmitHandler)

	return mux
}
