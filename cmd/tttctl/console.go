package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-device/internal/client"
	"github.com/rocketscienceinc/tictactoe-device/internal/entity"
)

var errInputClosed = errors.New("input closed")

// console plays one game against the cpu, reading moves from in.
type console struct {
	in  *bufio.Scanner
	out io.Writer

	xStyle    lipgloss.Style
	oStyle    lipgloss.Style
	gridStyle lipgloss.Style
}

func newConsole(in *bufio.Scanner, out io.Writer) *console {
	in.Split(bufio.ScanWords)

	// colors are dropped when out is not a terminal
	renderer := lipgloss.NewRenderer(out)

	return &console{
		in:  in,
		out: out,

		xStyle:    renderer.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		oStyle:    renderer.NewStyle().Foreground(lipgloss.Color("170")).Bold(true),
		gridStyle: renderer.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (that *console) play(game *client.Client) error {
	mark, err := that.readMark()
	if err != nil {
		return err
	}

	if err = game.NewGame(mark); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	humanFirst := mark == entity.MarkX
	for {
		if humanFirst {
			if done, err := that.humanTurn(game); done || err != nil {
				return err
			}
		}

		if done, err := that.cpuTurn(game); done || err != nil {
			return err
		}

		if !humanFirst {
			if done, err := that.humanTurn(game); done || err != nil {
				return err
			}
		}
	}
}

func (that *console) humanTurn(game *client.Client) (bool, error) {
	for {
		col, row, err := that.readMove()
		if err != nil {
			return false, err
		}

		status, err := game.Move(col, row)
		if errors.Is(err, client.ErrIllegalMove) || errors.Is(err, client.ErrMalformedMove) {
			fmt.Fprintln(that.out, "Illegal move, try again")
			continue
		}
		if err != nil {
			return false, fmt.Errorf("failed to move: %w", err)
		}

		return that.afterMove(game, status, "You Win!")
	}
}

func (that *console) cpuTurn(game *client.Client) (bool, error) {
	fmt.Fprintln(that.out, "Requesting CPU move...")

	status, err := game.CPUMove()
	if err != nil {
		return false, fmt.Errorf("failed to request cpu move: %w", err)
	}

	return that.afterMove(game, status, "CPU Win...")
}

// afterMove prints the board and reports whether the game is over.
func (that *console) afterMove(game *client.Client, status client.Status, winMessage string) (bool, error) {
	board, err := game.Board()
	if err != nil {
		return false, fmt.Errorf("failed to read board: %w", err)
	}

	fmt.Fprint(that.out, that.render(board))

	switch status {
	case client.StatusWin:
		fmt.Fprintln(that.out, winMessage)
		return true, nil
	case client.StatusTie:
		fmt.Fprintln(that.out, "Game ends in a tie...")
		return true, nil
	default:
		return false, nil
	}
}

func (that *console) readMark() (entity.Mark, error) {
	for {
		fmt.Fprint(that.out, "Enter 1 to play as X, 2 to play as O: ")

		which, err := that.readInt()
		if err != nil {
			return entity.MarkEmpty, err
		}

		switch which {
		case 1:
			return entity.MarkX, nil
		case 2:
			return entity.MarkO, nil
		}
	}
}

func (that *console) readMove() (int, int, error) {
	col, err := that.readCoordinate("Enter the X coordinate of your move: ")
	if err != nil {
		return 0, 0, err
	}

	row, err := that.readCoordinate("Enter the Y coordinate of your move: ")
	if err != nil {
		return 0, 0, err
	}

	return col, row, nil
}

func (that *console) readCoordinate(prompt string) (int, error) {
	for {
		fmt.Fprint(that.out, prompt)

		value, err := that.readInt()
		if err != nil {
			return 0, err
		}

		if value >= 0 && value < entity.BoardSide {
			return value, nil
		}
	}
}

// readInt returns the next integer token; other tokens are skipped.
func (that *console) readInt() (int, error) {
	for that.in.Scan() {
		value, err := strconv.Atoi(that.in.Text())
		if err == nil {
			return value, nil
		}
	}

	if err := that.in.Err(); err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}

	return 0, errInputClosed
}

func (that *console) render(board entity.Board) string {
	var sb strings.Builder

	for row := 0; row < entity.BoardSide; row++ {
		cells := make([]string, 0, entity.BoardSide)
		for col := 0; col < entity.BoardSide; col++ {
			cells = append(cells, that.renderMark(board[entity.CellIndex(col, row)]))
		}

		sb.WriteString(" " + strings.Join(cells, that.gridStyle.Render(" | ")) + "\n")
		if row != entity.BoardSide-1 {
			sb.WriteString(that.gridStyle.Render("-----------") + "\n")
		}
	}

	return sb.String()
}

func (that *console) renderMark(mark entity.Mark) string {
	switch mark {
	case entity.MarkX:
		return that.xStyle.Render("X")
	case entity.MarkO:
		return that.oStyle.Render("O")
	default:
		return " "
	}
}
