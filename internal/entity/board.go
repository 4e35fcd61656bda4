package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-device/internal/apperror"
)

const (
	BoardSize = 9
	BoardSide = 3
)

type Mark int

const (
	MarkEmpty Mark = iota
	MarkX
	MarkO
)

func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkEmpty
	}
}

func (that Mark) String() string {
	switch that {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return "empty"
	}
}

type GameState int

const (
	InProgress GameState = iota
	Win
	Tie
)

// Result is what Evaluate reports for a board.
type Result struct {
	State  GameState
	Winner Mark
}

var (
	// rows, columns, then the two diagonals
	WinCombos = [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Board is a row-major 3x3 grid: index = 3*row + col.
type Board [BoardSize]Mark

func CellIndex(col, row int) int {
	return BoardSide*row + col
}

func (that *Board) Place(cell int, mark Mark) error {
	if cell < 0 || cell >= len(that) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that[cell] != MarkEmpty {
		return apperror.ErrIllegalMove
	}

	that[cell] = mark

	return nil
}

func (that Board) Evaluate() Result {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != MarkEmpty && a == b && b == c {
			return Result{State: Win, Winner: a}
		}
	}

	// the game will continue until all the squares are full
	if _, ok := that.FirstEmpty(); ok {
		return Result{State: InProgress}
	}

	return Result{State: Tie}
}

func (that *Board) Reset() {
	*that = Board{}
}

func (that Board) FirstEmpty() (int, bool) {
	for i, cell := range that {
		if cell == MarkEmpty {
			return i, true
		}
	}

	return 0, false
}

func (that Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == MarkEmpty {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) Marks() int {
	return len(that) - len(that.EmptyCells())
}

// Count returns how many cells hold mark.
func (that Board) Count(mark Mark) int {
	n := 0
	for _, cell := range that {
		if cell == mark {
			n++
		}
	}

	return n
}
