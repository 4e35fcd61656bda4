package protocol

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-device/internal/entity"
)

// fixed offsets of the request grammar
const (
	opcodeLen    = 2
	markOffset   = 3
	colOffset    = 3
	rowOffset    = 5
	newGameLen   = markOffset + 1
	humanMoveLen = rowOffset + 1
)

// Decode turns a request buffer into a Command. Only the bytes at the grammar's
// fixed offsets are read, and only after the length is checked; trailing bytes are
// ignored. On failure the command is OpUnknown and the error says why.
func Decode(buf []byte) (Command, error) {
	if len(buf) < opcodeLen {
		return Command{Op: OpUnknown}, fmt.Errorf("%w: %d bytes", ErrTruncated, len(buf))
	}

	switch string(buf[:opcodeLen]) {
	case opcodeNewGame:
		return decodeNewGame(buf)
	case opcodeQueryBoard:
		return Command{Op: OpQueryBoard}, nil
	case opcodeHumanMove:
		return decodeHumanMove(buf)
	case opcodeCPUMove:
		return Command{Op: OpCPUMove}, nil
	default:
		return Command{Op: OpUnknown}, fmt.Errorf("%w: %q", ErrUnknownOpcode, buf[:opcodeLen])
	}
}

func decodeNewGame(buf []byte) (Command, error) {
	if len(buf) < newGameLen {
		return Command{Op: OpUnknown}, fmt.Errorf("%w: new game needs a mark", ErrTruncated)
	}

	switch buf[markOffset] {
	case 'X':
		return Command{Op: OpNewGame, Mark: entity.MarkX}, nil
	case 'O':
		return Command{Op: OpNewGame, Mark: entity.MarkO}, nil
	default:
		return Command{Op: OpUnknown}, fmt.Errorf("%w: %q", ErrUnknownMark, buf[markOffset])
	}
}

// Digits are not range checked here; the session rejects anything outside 0..2.
func decodeHumanMove(buf []byte) (Command, error) {
	if len(buf) < humanMoveLen {
		return Command{Op: OpUnknown}, fmt.Errorf("%w: move needs a column and a row", ErrTruncated)
	}

	return Command{
		Op:  OpHumanMove,
		Col: int(buf[colOffset]) - '0',
		Row: int(buf[rowOffset]) - '0',
	}, nil
}
