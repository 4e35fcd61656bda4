package protocol

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-device/internal/entity"
)

// Opcode is the two-character selector at the start of every request.
type Opcode int

const (
	OpUnknown Opcode = iota
	OpNewGame
	OpQueryBoard
	OpHumanMove
	OpCPUMove
)

const (
	opcodeNewGame    = "00"
	opcodeQueryBoard = "01"
	opcodeHumanMove  = "02"
	opcodeCPUMove    = "03"
)

func (that Opcode) String() string {
	switch that {
	case OpNewGame:
		return "new_game"
	case OpQueryBoard:
		return "query_board"
	case OpHumanMove:
		return "human_move"
	case OpCPUMove:
		return "cpu_move"
	default:
		return "unknown"
	}
}

// Command is a decoded request. Mark is set for OpNewGame, Col and Row for OpHumanMove.
type Command struct {
	Op   Opcode
	Mark entity.Mark
	Col  int
	Row  int
}

func (that Command) String() string {
	switch that.Op {
	case OpNewGame:
		return fmt.Sprintf("%s %s", that.Op, that.Mark)
	case OpHumanMove:
		return fmt.Sprintf("%s %d %d", that.Op, that.Col, that.Row)
	default:
		return that.Op.String()
	}
}

// Encode renders the command in wire form, newline included.
func (that Command) Encode() []byte {
	switch that.Op {
	case OpNewGame:
		return []byte(opcodeNewGame + " " + markByte(that.Mark) + "\n")
	case OpQueryBoard:
		return []byte(opcodeQueryBoard + "\n")
	case OpHumanMove:
		return []byte{'0', '2', ' ', byte(that.Col + '0'), ' ', byte(that.Row + '0'), '\n'}
	case OpCPUMove:
		return []byte(opcodeCPUMove + "\n")
	default:
		return nil
	}
}

func markByte(mark entity.Mark) string {
	if mark == entity.MarkO {
		return "O"
	}
	return "X"
}
