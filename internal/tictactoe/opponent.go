package tictactoe

import "math/rand"

// NoMove is returned by SelectMove when the board has no free cell.
const NoMove = -1

const (
	// bestMoveChance is the share of medium-tier turns played with the
	// minimax move.
	bestMoveChance = 0.7

	winScore = 10
)

// openingCells are the corners and the center, picked from on the first move.
var openingCells = [...]int{0, 2, 4, 6, 8}

// SelectMove picks the cell the computer plays with mark. The board is read
// only; rnd supplies every random choice so callers can seed it.
func SelectMove(board Board, mark Mark, difficulty Difficulty, rnd *rand.Rand) int {
	available := board.EmptyCells()

	switch {
	case len(available) == 0:
		return NoMove
	case len(available) == 1:
		return available[0]
	case len(available) >= BoardSize-1:
		return openingMove(board, rnd)
	}

	switch difficulty {
	case DifficultyLow:
		return randomMove(available, rnd)
	case DifficultyHigh:
		return BestMove(board, mark)
	default:
		if rnd.Float64() < bestMoveChance {
			return BestMove(board, mark)
		}
		return randomMove(available, rnd)
	}
}

// BestMove returns the minimax-optimal cell for mark. Among equally scored
// cells the lowest index wins. It returns NoMove on a full board or when
// mark is not a player mark.
func BestMove(board Board, mark Mark) int {
	if !mark.IsPlayer() {
		return NoMove
	}

	bestScore := -winScore - 1
	bestMove := NoMove

	for _, cell := range board.EmptyCells() {
		score := search(board.Place(cell, mark), mark, 0, false)
		if score > bestScore {
			bestScore = score
			bestMove = cell
		}
	}

	return bestMove
}

// search scores board from self's point of view. Wins found sooner score
// higher and losses found later score less negative.
func search(board Board, self Mark, depth int, maximizing bool) int {
	if result := Evaluate(board); result.IsOver() {
		switch {
		case result.State == StateDraw:
			return 0
		case result.Winner == self:
			return winScore - depth
		default:
			return depth - winScore
		}
	}

	mark := self.Opponent()
	best := winScore + 1
	if maximizing {
		mark = self
		best = -winScore - 1
	}

	for _, cell := range board.EmptyCells() {
		score := search(board.Place(cell, mark), self, depth+1, !maximizing)
		if (maximizing && score > best) || (!maximizing && score < best) {
			best = score
		}
	}

	return best
}

func openingMove(board Board, rnd *rand.Rand) int {
	candidates := make([]int, 0, len(openingCells))
	for _, cell := range openingCells {
		if board[cell] == Empty {
			candidates = append(candidates, cell)
		}
	}

	return candidates[rnd.Intn(len(candidates))]
}

func randomMove(available []int, rnd *rand.Rand) int {
	return available[rnd.Intn(len(available))]
}
