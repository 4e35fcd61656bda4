package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-device/internal/entity"
	"github.com/rocketscienceinc/tictactoe-device/internal/protocol"
)

type session interface {
	Dispatch(cmd protocol.Command) protocol.Outcome
}

type eventPublisher interface {
	Publish(ctx context.Context, event entity.Event) error
}

// GameManager is the submit(bytes) -> bytes entry point shared by every transport.
type GameManager struct {
	logger    *slog.Logger
	session   session
	publisher eventPublisher

	now func() time.Time
}

// NewGameManager - publisher may be nil, in which case no events are published.
func NewGameManager(logger *slog.Logger, session session, publisher eventPublisher) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		session:   session,
		publisher: publisher,

		now: time.Now,
	}
}

// Submit processes one request and returns the encoded response. It never fails:
// anything the core rejects is reported in the response itself.
func (that *GameManager) Submit(ctx context.Context, request []byte) []byte {
	log := that.logger.With("method", "Submit")

	cmd, err := protocol.Decode(request)
	if err != nil {
		log.Debug("could not decode request", "request", string(request), "error", err)
	}

	outcome := that.session.Dispatch(cmd)
	response := protocol.Encode(outcome)

	log.Info("command processed", "command", cmd.String(), "outcome", outcome.Kind.String())

	that.publish(ctx, cmd, outcome)

	return response
}

func (that *GameManager) publish(ctx context.Context, cmd protocol.Command, outcome protocol.Outcome) {
	if that.publisher == nil {
		return
	}

	log := that.logger.With("method", "publish")

	// the board was captured under the session lock together with the outcome
	event := entity.Event{
		Command: cmd.String(),
		Outcome: outcome.Kind.String(),
		Board:   string(protocol.EncodeBoard(outcome.Board)[:entity.BoardSize]),
		At:      that.now().UTC(),
	}

	if outcome.Kind == protocol.OutcomeWin {
		event.Winner = outcome.Winner.String()
	}

	if err := that.publisher.Publish(ctx, event); err != nil {
		log.Error("failed to publish event", "error", err)
	}
}
