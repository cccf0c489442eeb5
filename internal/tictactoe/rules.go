package tictactoe

// State classifies a board.
type State string

const (
	StateOngoing State = "ongoing"
	StateWon     State = "won"
	StateDraw    State = "draw"
)

// WinCombos lists the winning triples: rows, columns, then diagonals.
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

// Result is the outcome of Evaluate. Winner and Line are set only when
// State is StateWon.
type Result struct {
	State  State
	Winner Mark
	Line   [3]int
}

func (that Result) IsOver() bool {
	return that.State != StateOngoing
}

// Evaluate reports whether the board is won, drawn or still in play.
// The first triple in WinCombos order decides when several match.
func Evaluate(board Board) Result {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != Empty && a == b && b == c {
			return Result{State: StateWon, Winner: a, Line: combo}
		}
	}

	if board.IsFull() {
		return Result{State: StateDraw}
	}

	return Result{State: StateOngoing}
}
