package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// maxMoves equals the number of cells: a game that reaches it has filled the board.
// The draw check relies on this, so it must change together with the board size.
const maxMoves = entity.BoardSize

// GameState is the authoritative record of one game: every board snapshot taken after a move,
// the step currently displayed and the order in which the move list is shown.
//
// Whose turn it is comes from the parity of the current step and is never stored.
// A zero GameState is a game with no moves listed in descending order; prefer NewGameState.
// GameState is not safe for concurrent use.
type GameState struct {
	history       []entity.Board
	stepNumber    int
	sortAscending bool
}

// NewGameState returns a game with a single empty board and ascending move order.
func NewGameState() *GameState {
	return &GameState{
		history:       []entity.Board{{}},
		stepNumber:    0,
		sortAscending: true,
	}
}

func (that *GameState) StepNumber() int {
	return that.stepNumber
}

func (that *GameState) HistoryLen() int {
	return len(that.history)
}

func (that *GameState) SortAscending() bool {
	return that.sortAscending
}

// XIsNext reports whether X moves next at the current step.
func (that *GameState) XIsNext() bool {
	return that.stepNumber%2 == 0
}

// CurrentBoard returns a copy of the board at the current step.
func (that *GameState) CurrentBoard() entity.Board {
	if len(that.history) == 0 {
		return entity.Board{}
	}

	return that.history[that.stepNumber]
}

// Board returns a copy of the board at the given step.
func (that *GameState) Board(step int) (entity.Board, error) {
	if err := that.validateStep(step); err != nil {
		return entity.Board{}, err
	}

	return that.history[step], nil
}

func (that *GameState) mark() entity.Cell {
	if that.XIsNext() {
		return entity.PlayerX
	}

	return entity.PlayerO
}

// ApplyMove places the next player's mark on cell. Moves on an occupied cell or after the game
// was won are ignored and reported with applied == false. Moves made after jumping back in
// time discard every later step first.
func (that *GameState) ApplyMove(cell int) (bool, error) {
	if !entity.IsValidIndex(cell) {
		return false, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	board := that.CurrentBoard()
	if entity.Evaluate(board).HasWinner() || !board[cell].IsEmpty() {
		return false, nil
	}

	if len(that.history) == 0 {
		that.history = []entity.Board{{}}
	}

	board[cell] = that.mark()

	that.history = append(that.history[:that.stepNumber+1], board)
	that.stepNumber = len(that.history) - 1

	return true, nil
}

// JumpToStep makes step the displayed one. History is left untouched.
func (that *GameState) JumpToStep(step int) error {
	if err := that.validateStep(step); err != nil {
		return err
	}

	that.stepNumber = step

	return nil
}

// ToggleOrder flips the order in which the move list is presented.
func (that *GameState) ToggleOrder() {
	that.sortAscending = !that.sortAscending
}

// Clone returns an independent copy of the game.
func (that *GameState) Clone() *GameState {
	history := make([]entity.Board, len(that.history))
	copy(history, that.history)

	return &GameState{
		history:       history,
		stepNumber:    that.stepNumber,
		sortAscending: that.sortAscending,
	}
}

func (that *GameState) validateStep(step int) error {
	if step < 0 || step >= len(that.history) {
		return fmt.Errorf("%w: step %d, history has %d entries", apperror.ErrInvalidStep, step, len(that.history))
	}

	return nil
}
