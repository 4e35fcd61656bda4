package protocol

import (
	"bytes"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-device/internal/entity"
)

type OutcomeKind int

const (
	OutcomeUnknownCommand OutcomeKind = iota
	OutcomeOK
	OutcomeWin
	OutcomeTie
	OutcomeIllegalMove
	OutcomeOutOfTurn
	OutcomeNoActiveGame
	OutcomeMalformedCommand
	OutcomeBoard
)

// Outcome is the result of processing one command. Winner is set for OutcomeWin.
// Board is the board the command left behind; only OutcomeBoard puts it on the wire.
type Outcome struct {
	Kind   OutcomeKind
	Winner entity.Party
	Board  entity.Board
}

const (
	emptyCellByte = '*'
	boardRespLen  = entity.BoardSize + 1
)

var literals = map[OutcomeKind][]byte{
	OutcomeOK:               []byte("OK\n"),
	OutcomeWin:              []byte("WIN\n"),
	OutcomeTie:              []byte("TIE\n"),
	OutcomeIllegalMove:      []byte("ILLMOVE\n"),
	OutcomeOutOfTurn:        []byte("OOT\n"),
	OutcomeNoActiveGame:     []byte("NOGAME\n"),
	OutcomeMalformedCommand: []byte("INVFMT\n"),
	OutcomeUnknownCommand:   []byte("UNKCMD\n"),
}

func (that OutcomeKind) String() string {
	switch that {
	case OutcomeOK:
		return "ok"
	case OutcomeWin:
		return "win"
	case OutcomeTie:
		return "tie"
	case OutcomeIllegalMove:
		return "illegal_move"
	case OutcomeOutOfTurn:
		return "out_of_turn"
	case OutcomeNoActiveGame:
		return "no_active_game"
	case OutcomeMalformedCommand:
		return "malformed_command"
	case OutcomeBoard:
		return "board"
	default:
		return "unknown_command"
	}
}

// Encode serializes an outcome. Every kind has exactly one encoding; anything
// unrecognized is reported as an unknown command.
func Encode(outcome Outcome) []byte {
	if outcome.Kind == OutcomeBoard {
		return EncodeBoard(outcome.Board)
	}

	literal, ok := literals[outcome.Kind]
	if !ok {
		literal = literals[OutcomeUnknownCommand]
	}

	resp := make([]byte, len(literal))
	copy(resp, literal)

	return resp
}

func EncodeBoard(board entity.Board) []byte {
	resp := make([]byte, 0, boardRespLen)
	for _, cell := range board {
		resp = append(resp, cellByte(cell))
	}

	return append(resp, '\n')
}

func cellByte(mark entity.Mark) byte {
	switch mark {
	case entity.MarkX:
		return 'X'
	case entity.MarkO:
		return 'O'
	default:
		return emptyCellByte
	}
}

// ParseResponse is the client side of Encode. A win carries no mover on the wire,
// so Winner is left as PartyNone.
func ParseResponse(resp []byte) (Outcome, error) {
	for kind, literal := range literals {
		if bytes.Equal(resp, literal) {
			return Outcome{Kind: kind}, nil
		}
	}

	board, err := parseBoard(resp)
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{Kind: OutcomeBoard, Board: board}, nil
}

func parseBoard(resp []byte) (entity.Board, error) {
	var board entity.Board

	if len(resp) != boardRespLen || resp[entity.BoardSize] != '\n' {
		return board, fmt.Errorf("%w: %q", ErrUnexpectedResponse, resp)
	}

	for i, c := range resp[:entity.BoardSize] {
		switch c {
		case 'X':
			board[i] = entity.MarkX
		case 'O':
			board[i] = entity.MarkO
		case emptyCellByte:
			board[i] = entity.MarkEmpty
		default:
			return board, fmt.Errorf("%w: bad cell %q at %d", ErrUnexpectedResponse, c, i)
		}
	}

	return board, nil
}
