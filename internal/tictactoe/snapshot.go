package tictactoe

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// snapshot is the stored form of a GameState.
type snapshot struct {
	History       []entity.Board `json:"history"`
	StepNumber    int            `json:"step_number"`
	SortAscending bool           `json:"sort_ascending"`
}

func (that *GameState) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshot{
		History:       that.history,
		StepNumber:    that.stepNumber,
		SortAscending: that.sortAscending,
	})
}

// UnmarshalJSON restores a game and rejects snapshots that break the game invariants.
func (that *GameState) UnmarshalJSON(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrCorruptState, err)
	}

	if err := validateSnapshot(snap); err != nil {
		return err
	}

	that.history = snap.History
	that.stepNumber = snap.StepNumber
	that.sortAscending = snap.SortAscending

	return nil
}

func validateSnapshot(snap snapshot) error {
	switch {
	case len(snap.History) == 0:
		return fmt.Errorf("%w: empty history", apperror.ErrCorruptState)
	case len(snap.History) > maxMoves+1:
		return fmt.Errorf("%w: %d history entries", apperror.ErrCorruptState, len(snap.History))
	case snap.StepNumber < 0 || snap.StepNumber >= len(snap.History):
		return fmt.Errorf("%w: step %d out of range", apperror.ErrCorruptState, snap.StepNumber)
	}

	if snap.History[0] != (entity.Board{}) {
		return fmt.Errorf("%w: game does not start from an empty board", apperror.ErrCorruptState)
	}

	mover := entity.PlayerX
	for step := 1; step < len(snap.History); step++ {
		prev := snap.History[step-1]
		if entity.Evaluate(prev).HasWinner() {
			return fmt.Errorf("%w: step %d follows a won board", apperror.ErrCorruptState, step)
		}

		if !isMoveBy(prev, snap.History[step], mover) {
			return fmt.Errorf("%w: step %d is not a single %s move", apperror.ErrCorruptState, step, mover)
		}

		mover = mover.Opponent()
	}

	return nil
}

// isMoveBy reports whether next is prev with exactly one empty cell filled by mover.
func isMoveBy(prev, next entity.Board, mover entity.Cell) bool {
	idx := prev.DiffIndex(next)
	if idx < 0 || !prev[idx].IsEmpty() || next[idx] != mover {
		return false
	}

	next[idx] = entity.EmptyCell

	return next == prev
}
