package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// MaxRequestSize bounds a submitted request body.
const MaxRequestSize = 256

type uGame interface {
	Submit(ctx context.Context, request []byte) []byte
}

type SubmitHandler interface {
	SubmitHandler(w http.ResponseWriter, r *http.Request)
}

type submitHandler struct {
	logger *slog.Logger
	uGame  uGame
}

func NewSubmitHandler(logger *slog.Logger, uGame uGame) SubmitHandler {
	return &submitHandler{
		logger: logger,
		uGame:  uGame,
	}
}

// SubmitHandler - the request body is one protocol request; the response body is the
// encoded reply.
func (that *submitHandler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "SubmitHandler")

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	request, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestSize))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
			return
		}

		log.Error("failed to read request body", "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	response := that.uGame.Submit(r.Context(), request)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(response); err != nil {
		log.Error("failed to write response", "error", err)
	}
}
