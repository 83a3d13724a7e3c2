package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Run("Returns no winner for an empty board", func(t *testing.T) {
		// Given: an empty board
		board := Board{}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: there is no winner and no line
		assert.Equal(t, EmptyCell, result.Winner)
		assert.False(t, result.HasWinner())
		assert.Empty(t, result.Line)
	})

	t.Run("Detects every winning line", func(t *testing.T) {
		for _, combo := range WinCombos {
			// Given: a board where O owns a single line
			var board Board
			for _, idx := range combo {
				board[idx] = PlayerO
			}

			// When: evaluating the board
			result := Evaluate(board)

			// Then: O wins on exactly that line
			assert.Equal(t, PlayerO, result.Winner)
			assert.Equal(t, []int{combo[0], combo[1], combo[2]}, result.Line)
		}
	})

	t.Run("Returns the earliest line when several are complete", func(t *testing.T) {
		// Given: X owns the top row and the left column at the same time
		board := Board{
			PlayerX, PlayerX, PlayerX,
			PlayerX, PlayerO, PlayerO,
			PlayerX, PlayerO, PlayerO,
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: the row is reported because rows are checked before columns
		assert.Equal(t, PlayerX, result.Winner)
		assert.Equal(t, []int{0, 1, 2}, result.Line)
	})

	t.Run("Prefers the main diagonal over the anti-diagonal", func(t *testing.T) {
		// Given: X owns both diagonals
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerO, PlayerX, PlayerO,
			PlayerX, EmptyCell, PlayerX,
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: the main diagonal is reported
		assert.Equal(t, []int{0, 4, 8}, result.Line)
	})

	t.Run("Returns no winner for a full drawn board", func(t *testing.T) {
		// Given: a full board without three in a row
		board := Board{
			PlayerX, PlayerX, PlayerO,
			PlayerO, PlayerO, PlayerX,
			PlayerX, PlayerO, PlayerX,
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: there is no winner
		require.False(t, result.HasWinner())
		assert.Empty(t, result.Line)
	})
}

func TestCell_Text(t *testing.T) {
	t.Run("Round trips every cell value", func(t *testing.T) {
		for _, cell := range []Cell{EmptyCell, PlayerX, PlayerO} {
			text, err := cell.MarshalText()
			require.NoError(t, err)

			var decoded Cell
			require.NoError(t, decoded.UnmarshalText(text))
			assert.Equal(t, cell, decoded)
		}
	})

	t.Run("Rejects unknown marks", func(t *testing.T) {
		var cell Cell

		err := cell.UnmarshalText([]byte("Z"))

		assert.ErrorIs(t, err, ErrUnknownCell)
	})
}

func TestCell_Opponent(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
	assert.Equal(t, EmptyCell, EmptyCell.Opponent())
}

func TestBoard_DiffIndex(t *testing.T) {
	// Given: two boards that differ in the centre cell
	before := Board{PlayerX}
	after := Board{PlayerX, EmptyCell, EmptyCell, EmptyCell, PlayerO}

	// Then: the centre index is reported, and equal boards report -1
	assert.Equal(t, 4, after.DiffIndex(before))
	assert.Equal(t, -1, before.DiffIndex(before))
	assert.Equal(t, 2, after.MarksCount())
}

func TestCoordinates(t *testing.T) {
	col, row := Coordinates(5)

	assert.Equal(t, 2, col)
	assert.Equal(t, 1, row)
}
