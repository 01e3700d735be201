package search

import (
	"fmt"

	"github.com/chesscore/searchcore/board"
)

const aspirationWindow = 25

// SearchToTime runs iterative deepening from depth 1 until the context's
// time budget is exhausted, re-centering the aspiration window on each
// accepted score. A fail-high or fail-low re-searches the same depth with
// the exceeded bound reset to infinity and the bound that held kept.
// Returns the last fully-accepted root result; an interrupted iteration is
// discarded.
func SearchToTime(ctx *Context) RootMove {
	var helper [MaxDepth + 2]searchHelper

	var bestMove, ponderMove string
	var alpha, beta = -Infinite, Infinite
	ctx.TT.BumpAge()
	ctx.Start()
	for depth := 1; depth <= MaxDepth && !ctx.checkTime(); depth++ {
		var score = alphaBeta(ctx, alpha, beta, depth, Root, helper[:])
		if score > alpha && score < beta && !ctx.Stopped() {
			alpha = score - aspirationWindow
			beta = score + aspirationWindow

			ctx.Best = RootMove{Move: helper[0].pv[0], Score: score}

			var pvString string
			pvString, bestMove, ponderMove = pvToString(helper[0].pv[:])
			if ctx.Print {
				printSearch(ctx, depth, score, pvString)
			}
		} else {
			depth--
			if score <= alpha {
				alpha = -Infinite
			}
			if score >= beta {
				beta = Infinite
			}
		}
	}
	if ctx.Print && ctx.Best.Move != board.MoveEmpty {
		if ponderMove != "" {
			fmt.Printf("bestmove %s ponder %s\n", bestMove, ponderMove)
		} else {
			fmt.Printf("bestmove %s\n", bestMove)
		}
	}
	return ctx.Best
}
