package tictactoe

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const (
	statusWinner = "Winner: "
	statusNext   = "Next player: "
	statusDraw   = "It's a draw!"

	labelGameStart = "Go to game start"
	labelMove      = "Go to move #"

	toggleToDescending = "Toggle order to descending"
	toggleToAscending  = "Toggle order to ascending"
)

// MoveEntry is one line of the move list.
type MoveEntry struct {
	Step        int    `json:"step"`
	Label       string `json:"label"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Current     bool   `json:"current"`
}

// View is the read-only projection a rendering layer draws from.
type View struct {
	Board         entity.Board `json:"board"`
	Winner        entity.Cell  `json:"winner"`
	WinningLine   []int        `json:"winning_line"`
	Status        string       `json:"status"`
	Moves         []MoveEntry  `json:"moves"`
	StepNumber    int          `json:"step_number"`
	XIsNext       bool         `json:"x_is_next"`
	SortAscending bool         `json:"sort_ascending"`
	ToggleLabel   string       `json:"toggle_label"`
}

// View projects the current step of the game.
func (that *GameState) View() View {
	board := that.CurrentBoard()
	result := entity.Evaluate(board)

	return View{
		Board:         board,
		Winner:        result.Winner,
		WinningLine:   result.Line,
		Status:        that.status(result),
		Moves:         that.moves(),
		StepNumber:    that.stepNumber,
		XIsNext:       that.XIsNext(),
		SortAscending: that.sortAscending,
		ToggleLabel:   that.toggleLabel(),
	}
}

func (that *GameState) status(result entity.Result) string {
	switch {
	case result.HasWinner():
		return statusWinner + result.Winner.String()
	case that.stepNumber < maxMoves:
		return statusNext + that.mark().String()
	default:
		return statusDraw
	}
}

func (that *GameState) moves() []MoveEntry {
	moves := make([]MoveEntry, 0, len(that.history))

	for step := range that.history {
		label := labelGameStart
		if step > 0 {
			label = fmt.Sprintf("%s%d", labelMove, step)
		}

		location := that.moveLocation(step)

		moves = append(moves, MoveEntry{
			Step:        step,
			Label:       label,
			Location:    location,
			Description: label + location,
			Current:     step == that.stepNumber,
		})
	}

	if !that.sortAscending {
		slices.Reverse(moves)
	}

	return moves
}

// moveLocation formats the 1-based (col, row) of the cell filled by the move that produced step.
func (that *GameState) moveLocation(step int) string {
	if step < 1 {
		return ""
	}

	idx := that.history[step].DiffIndex(that.history[step-1])
	if idx < 0 {
		return ""
	}

	col, row := entity.Coordinates(idx)

	return fmt.Sprintf(" (%d, %d)", col+1, row+1)
}

func (that *GameState) toggleLabel() string {
	if that.sortAscending {
		return toggleToDescending
	}

	return toggleToAscending
}
