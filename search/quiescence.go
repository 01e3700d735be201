package search

import (
	"github.com/chesscore/searchcore/board"
	"github.com/chesscore/searchcore/eval"
)

// quiescence resolves tactically unstable leaves: it searches only noisy
// continuations (all evasions when in check) below depth zero so the static
// evaluation is never taken in the middle of a capture sequence. Fail-soft;
// never writes the transposition table.
func quiescence(ctx *Context, alpha, beta int, helper []searchHelper) int {
	ctx.Nodes++

	if ctx.isDraw() {
		return Draw
	}

	var inCheck = ctx.Board.IsCheck()

	// Stand pat. Inside check there is no meaningful static bound, so seed
	// with the mate score; any legal evasion beats it.
	var bestScore int
	if inCheck {
		bestScore = lossIn(ctx.Ply)
	} else {
		bestScore = eval.Evaluate(ctx.Accumulator(), ctx.Board.WhiteMove)
	}
	if bestScore > alpha {
		if bestScore >= beta {
			return bestScore
		}
		alpha = bestScore
	}

	// Check sequences are the one way quiescence can keep extending; cap
	// before the accumulator stack runs out.
	if ctx.Ply >= MaxPly-1 {
		return bestScore
	}

	var ms MoveSelector
	if inCheck {
		ms.Init(&ctx.Board, board.MoveEmpty)
	} else {
		ms.InitNoisy(&ctx.Board)
	}

	var childPos board.Position
	for {
		var move = ms.Next()
		if move == board.MoveEmpty {
			break
		}
		if !ctx.Board.MakeMove(move, &childPos) {
			continue
		}
		var parent = ctx.Board
		ctx.advance(childPos, move)
		var score = -quiescence(ctx, -beta, -alpha, helper)
		ctx.Undo(parent)

		if score > bestScore {
			if score > alpha {
				if score >= beta {
					return score
				}
				alpha = score
			}
			bestScore = score
		}
	}
	return bestScore
}
