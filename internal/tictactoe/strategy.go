package tictactoe

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-device/internal/entity"
)

const (
	StrategyFirstEmpty = "first-empty"
	StrategyRandom     = "random"
)

var (
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrUnknownStrategy  = errors.New("unknown cpu strategy")
)

// Strategy picks the cell the CPU plays next.
type Strategy interface {
	Choose(board entity.Board) (int, error)
}

// FirstEmpty always takes the lowest-index empty cell.
type FirstEmpty struct{}

func (FirstEmpty) Choose(board entity.Board) (int, error) {
	cell, ok := board.FirstEmpty()
	if !ok {
		return 0, ErrNoAvailableMoves
	}

	return cell, nil
}

// Random takes any empty cell with equal probability.
type Random struct {
	rnd *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rnd: rand.New(rand.NewSource(seed))} //nolint: gosec // it's ok
}

func (that *Random) Choose(board entity.Board) (int, error) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return 0, ErrNoAvailableMoves
	}

	return availableCells[that.rnd.Intn(len(availableCells))], nil
}

// NewStrategy resolves a strategy by its configured name. An empty name means first-empty.
func NewStrategy(name string, seed int64) (Strategy, error) {
	switch name {
	case "", StrategyFirstEmpty:
		return FirstEmpty{}, nil
	case StrategyRandom:
		return NewRandom(seed), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
}
