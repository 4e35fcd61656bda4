package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rocketscienceinc/tictactoe-device/internal/entity"
	"github.com/rocketscienceinc/tictactoe-device/internal/protocol"
)

var (
	ErrUnexpectedResponse = protocol.ErrUnexpectedResponse
	ErrIllegalMove        = errors.New("illegal move")
	ErrMalformedMove      = errors.New("move out of range")
	ErrOutOfTurn          = errors.New("not your turn")
	ErrNoActiveGame       = errors.New("no active game")
)

// Status is how a move left the game.
type Status int

const (
	StatusOngoing Status = iota
	StatusWin
	StatusTie
)

// Client speaks the text protocol over any byte stream. Each call is one
// write-then-read exchange; calls are serialized.
type Client struct {
	mu     sync.Mutex
	writer io.Writer
	reader *bufio.Reader
}

func New(rw io.ReadWriter) *Client {
	return &Client{
		writer: rw,
		reader: bufio.NewReader(rw),
	}
}

// NewGame - starts a game; X moves first.
func (that *Client) NewGame(mark entity.Mark) error {
	outcome, err := that.send(protocol.Command{Op: protocol.OpNewGame, Mark: mark})
	if err != nil {
		return err
	}

	if outcome.Kind != protocol.OutcomeOK {
		return fmt.Errorf("%w: new game answered %s", ErrUnexpectedResponse, outcome.Kind)
	}

	return nil
}

func (that *Client) Board() (entity.Board, error) {
	outcome, err := that.send(protocol.Command{Op: protocol.OpQueryBoard})
	if err != nil {
		return entity.Board{}, err
	}

	if outcome.Kind != protocol.OutcomeBoard {
		return entity.Board{}, fmt.Errorf("%w: board query answered %s", ErrUnexpectedResponse, outcome.Kind)
	}

	return outcome.Board, nil
}

func (that *Client) Move(col, row int) (Status, error) {
	outcome, err := that.send(protocol.Command{Op: protocol.OpHumanMove, Col: col, Row: row})
	if err != nil {
		return StatusOngoing, err
	}

	return moveStatus(outcome)
}

func (that *Client) CPUMove() (Status, error) {
	outcome, err := that.send(protocol.Command{Op: protocol.OpCPUMove})
	if err != nil {
		return StatusOngoing, err
	}

	return moveStatus(outcome)
}

func (that *Client) send(cmd protocol.Command) (protocol.Outcome, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, err := that.writer.Write(cmd.Encode()); err != nil {
		return protocol.Outcome{}, fmt.Errorf("failed to write command: %w", err)
	}

	resp, err := that.reader.ReadBytes('\n')
	if err != nil {
		return protocol.Outcome{}, fmt.Errorf("failed to read response: %w", err)
	}

	outcome, err := protocol.ParseResponse(resp)
	if err != nil {
		return protocol.Outcome{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return outcome, nil
}

func moveStatus(outcome protocol.Outcome) (Status, error) {
	switch outcome.Kind {
	case protocol.OutcomeOK:
		return StatusOngoing, nil
	case protocol.OutcomeWin:
		return StatusWin, nil
	case protocol.OutcomeTie:
		return StatusTie, nil
	case protocol.OutcomeIllegalMove:
		return StatusOngoing, ErrIllegalMove
	case protocol.OutcomeMalformedCommand:
		return StatusOngoing, ErrMalformedMove
	case protocol.OutcomeOutOfTurn:
		return StatusOngoing, ErrOutOfTurn
	case protocol.OutcomeNoActiveGame:
		return StatusOngoing, ErrNoActiveGame
	default:
		return StatusOngoing, fmt.Errorf("%w: %s", ErrUnexpectedResponse, outcome.Kind)
	}
}
