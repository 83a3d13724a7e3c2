package entity

// WinCombos holds every winning line in evaluation order:
// rows top-to-bottom, columns left-to-right, then the two diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Result is the outcome of evaluating a board.
type Result struct {
	Winner Cell  `json:"winner"`
	Line   []int `json:"line"`
}

func (that Result) HasWinner() bool {
	return !that.Winner.IsEmpty()
}

// Evaluate returns the first completed line of the board and its owner.
// When no line is complete, Winner is EmptyCell and Line is empty.
func Evaluate(board Board) Result {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if !a.IsEmpty() && a == b && b == c {
			return Result{
				Winner: a,
				Line:   []int{combo[0], combo[1], combo[2]},
			}
		}
	}

	return Result{
		Winner: EmptyCell,
		Line:   []int{},
	}
}
