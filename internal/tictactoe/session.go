package tictactoe

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-device/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-device/internal/entity"
	"github.com/rocketscienceinc/tictactoe-device/internal/protocol"
)

// Session is the single game served by the process. Every method takes the same
// lock, so commands from concurrent connections are applied one at a time.
type Session struct {
	mu sync.Mutex

	strategy Strategy

	active    bool
	humanMark entity.Mark
	turn      entity.Party
	board     entity.Board
}

func NewSession(strategy Strategy) *Session {
	if strategy == nil {
		strategy = FirstEmpty{}
	}

	return &Session{
		strategy: strategy,
		turn:     entity.PartyNone,
	}
}

// NewGame resets the board. Playing X means the human moves first.
func (that *Session) NewGame(mark entity.Mark) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.newGame(mark)
}

// newGame must be called with the lock held.
func (that *Session) newGame(mark entity.Mark) error {
	if mark != entity.MarkX && mark != entity.MarkO {
		return fmt.Errorf("%w: mark %s", apperror.ErrUnknownCommand, mark)
	}

	that.board.Reset()
	that.humanMark = mark
	that.active = true

	if mark == entity.MarkX {
		that.turn = entity.PartyHuman
	} else {
		that.turn = entity.PartyCPU
	}

	return nil
}

// Board returns a copy of the board. It is served in every state, including before
// the first game and after a game has ended.
func (that *Session) Board() entity.Board {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.board
}

// Turn reports whose move it is; PartyNone before the first game.
func (that *Session) Turn() entity.Party {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.turn
}

func (that *Session) Active() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.active
}

func (that *Session) HumanMove(col, row int) (entity.Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.humanMove(col, row)
}

// humanMove must be called with the lock held.
func (that *Session) humanMove(col, row int) (entity.Result, error) {
	if err := that.confirmTurn(entity.PartyHuman); err != nil {
		return entity.Result{}, err
	}

	if col < 0 || col >= entity.BoardSide || row < 0 || row >= entity.BoardSide {
		return entity.Result{}, fmt.Errorf("%w: col %d, row %d", apperror.ErrMalformedCommand, col, row)
	}

	return that.makeTurn(entity.PartyHuman, entity.CellIndex(col, row))
}

func (that *Session) CPUMove() (entity.Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.cpuMove()
}

// cpuMove must be called with the lock held.
func (that *Session) cpuMove() (entity.Result, error) {
	if err := that.confirmTurn(entity.PartyCPU); err != nil {
		return entity.Result{}, err
	}

	cell, err := that.strategy.Choose(that.board)
	if err != nil {
		return entity.Result{}, fmt.Errorf("cpu failed to choose a cell: %w", err)
	}

	return that.makeTurn(entity.PartyCPU, cell)
}

// Dispatch applies a decoded command and reports its outcome. Errors are folded into
// the outcome; the session stays usable after any of them. The whole command runs
// under one lock, and Outcome.Board is the board as this command left it.
func (that *Session) Dispatch(cmd protocol.Command) protocol.Outcome {
	that.mu.Lock()
	defer that.mu.Unlock()

	outcome := that.dispatch(cmd)
	outcome.Board = that.board

	return outcome
}

// dispatch must be called with the lock held.
func (that *Session) dispatch(cmd protocol.Command) protocol.Outcome {
	switch cmd.Op {
	case protocol.OpNewGame:
		if err := that.newGame(cmd.Mark); err != nil {
			return outcomeFromError(err)
		}
		return protocol.Outcome{Kind: protocol.OutcomeOK}
	case protocol.OpQueryBoard:
		return protocol.Outcome{Kind: protocol.OutcomeBoard}
	case protocol.OpHumanMove:
		result, err := that.humanMove(cmd.Col, cmd.Row)
		if err != nil {
			return outcomeFromError(err)
		}
		return outcomeFromResult(result, entity.PartyHuman)
	case protocol.OpCPUMove:
		result, err := that.cpuMove()
		if err != nil {
			return outcomeFromError(err)
		}
		return outcomeFromResult(result, entity.PartyCPU)
	default:
		return protocol.Outcome{Kind: protocol.OutcomeUnknownCommand}
	}
}

// confirmTurn must be called with the lock held.
func (that *Session) confirmTurn(party entity.Party) error {
	switch {
	case !that.active:
		return apperror.ErrNoActiveGame
	case that.turn != party:
		return apperror.ErrOutOfTurn
	default:
		return nil
	}
}

// makeTurn must be called with the lock held.
func (that *Session) makeTurn(party entity.Party, cell int) (entity.Result, error) {
	if err := that.board.Place(cell, that.markOf(party)); err != nil {
		return entity.Result{}, fmt.Errorf("invalid turn: %w", err)
	}

	result := that.board.Evaluate()
	if result.State != entity.InProgress {
		// the board stays readable, but no more moves until a new game
		that.active = false
		return result, nil
	}

	that.turn = toggleParty(party)

	return result, nil
}

func (that *Session) markOf(party entity.Party) entity.Mark {
	if party == entity.PartyHuman {
		return that.humanMark
	}
	return that.humanMark.Opponent()
}

func toggleParty(party entity.Party) entity.Party {
	if party == entity.PartyHuman {
		return entity.PartyCPU
	}
	return entity.PartyHuman
}

func outcomeFromResult(result entity.Result, mover entity.Party) protocol.Outcome {
	switch result.State {
	case entity.Win:
		return protocol.Outcome{Kind: protocol.OutcomeWin, Winner: mover}
	case entity.Tie:
		return protocol.Outcome{Kind: protocol.OutcomeTie}
	default:
		return protocol.Outcome{Kind: protocol.OutcomeOK}
	}
}

func outcomeFromError(err error) protocol.Outcome {
	switch {
	case errors.Is(err, apperror.ErrNoActiveGame):
		return protocol.Outcome{Kind: protocol.OutcomeNoActiveGame}
	case errors.Is(err, apperror.ErrOutOfTurn):
		return protocol.Outcome{Kind: protocol.OutcomeOutOfTurn}
	case errors.Is(err, apperror.ErrMalformedCommand):
		return protocol.Outcome{Kind: protocol.OutcomeMalformedCommand}
	case errors.Is(err, apperror.ErrIllegalMove), errors.Is(err, ErrNoAvailableMoves):
		return protocol.Outcome{Kind: protocol.OutcomeIllegalMove}
	default:
		return protocol.Outcome{Kind: protocol.OutcomeUnknownCommand}
	}
}
