package entity

import (
	"errors"
	"fmt"
)

// BoardSize is the number of cells on the board, and therefore the maximum number of moves in a game.
const BoardSize = 9

const boardWidth = 3

// Cell is the content of a single board square.
type Cell uint8

const (
	EmptyCell Cell = iota
	PlayerX
	PlayerO
)

var ErrUnknownCell = errors.New("unknown cell value")

func (that Cell) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

func (that Cell) IsEmpty() bool {
	return that == EmptyCell
}

// Opponent returns the other player's mark. EmptyCell has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that Cell) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*that = EmptyCell
	case "X":
		*that = PlayerX
	case "O":
		*that = PlayerO
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCell, text)
	}

	return nil
}

// Board is a 3x3 board stored row-major: index = row*3 + col.
type Board [BoardSize]Cell

// IsValidIndex reports whether idx addresses a cell of the board.
func IsValidIndex(idx int) bool {
	return idx >= 0 && idx < BoardSize
}

// Coordinates converts a cell index to its zero-based column and row.
func Coordinates(idx int) (col, row int) {
	return idx % boardWidth, idx / boardWidth
}

// DiffIndex returns the first index where the boards differ, or -1 when they are equal.
func (that Board) DiffIndex(other Board) int {
	for idx := range that {
		if that[idx] != other[idx] {
			return idx
		}
	}

	return -1
}

// MarksCount returns how many non-empty cells the board holds.
func (that Board) MarksCount() int {
	count := 0
	for _, cell := range that {
		if !cell.IsEmpty() {
			count++
		}
	}

	return count
}
