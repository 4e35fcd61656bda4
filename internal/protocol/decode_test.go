package protocol

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-device/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		req  string
		want Command
	}{
		{name: "new game as X", req: "00 X\n", want: Command{Op: OpNewGame, Mark: entity.MarkX}},
		{name: "new game as O", req: "00 O\n", want: Command{Op: OpNewGame, Mark: entity.MarkO}},
		{name: "query board", req: "01\n", want: Command{Op: OpQueryBoard}},
		{name: "human move", req: "02 1 2\n", want: Command{Op: OpHumanMove, Col: 1, Row: 2}},
		{name: "cpu move", req: "03\n", want: Command{Op: OpCPUMove}},
		{name: "trailing bytes are ignored", req: "01 garbage\n", want: Command{Op: OpQueryBoard}},
		{name: "no newline needed", req: "03", want: Command{Op: OpCPUMove}},
		{name: "out of range digit passes through", req: "02 3 0\n", want: Command{Op: OpHumanMove, Col: 3, Row: 0}},
		{name: "non digit becomes negative", req: "02 1 \n\n", want: Command{Op: OpHumanMove, Col: 1, Row: '\n' - '0'}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := Decode([]byte(tc.req))

			require.NoError(t, err)
			assert.Equal(t, tc.want, cmd)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  string
		err  error
	}{
		{name: "empty buffer", req: "", err: ErrTruncated},
		{name: "single byte", req: "0", err: ErrTruncated},
		{name: "unknown opcode", req: "04\n", err: ErrUnknownOpcode},
		{name: "garbage", req: "hello\n", err: ErrUnknownOpcode},
		{name: "new game without mark", req: "00\n", err: ErrTruncated},
		{name: "new game with lowercase mark", req: "00 x\n", err: ErrUnknownMark},
		{name: "new game with other mark", req: "00 Z\n", err: ErrUnknownMark},
		{name: "move without row", req: "02 1\n", err: ErrTruncated},
		{name: "move without arguments", req: "02\n", err: ErrTruncated},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := Decode([]byte(tc.req))

			require.ErrorIs(t, err, tc.err)
			assert.Equal(t, OpUnknown, cmd.Op)
		})
	}
}

func TestCommand_Encode(t *testing.T) {
	t.Run("Encoded commands decode back", func(t *testing.T) {
		commands := []Command{
			{Op: OpNewGame, Mark: entity.MarkX},
			{Op: OpNewGame, Mark: entity.MarkO},
			{Op: OpQueryBoard},
			{Op: OpHumanMove, Col: 2, Row: 1},
			{Op: OpCPUMove},
		}

		for _, cmd := range commands {
			decoded, err := Decode(cmd.Encode())
			require.NoError(t, err)
			assert.Equal(t, cmd, decoded)
		}
	})

	t.Run("Wire form matches the protocol", func(t *testing.T) {
		assert.Equal(t, "00 O\n", string(Command{Op: OpNewGame, Mark: entity.MarkO}.Encode()))
		assert.Equal(t, "02 0 2\n", string(Command{Op: OpHumanMove, Col: 0, Row: 2}.Encode()))
		assert.Nil(t, Command{Op: OpUnknown}.Encode())
	})
}
