package search

import (
	"fmt"
	"strings"

	"github.com/chesscore/searchcore/board"
)

// searchHelper is the per-ply slot of the driver's helper stack. pv is a
// MoveEmpty-terminated best line from this ply downwards, rebuilt bottom-up
// on every alpha improvement at a PV node.
type searchHelper struct {
	pv [MaxDepth + 1]board.Move
}

// updatePV prepends move to the child's line: move first, then a copy of
// childPV up to and including its terminator.
func updatePV(move board.Move, currentPV, childPV *[MaxDepth + 1]board.Move) {
	currentPV[0] = move
	var i = 0
	for ; i < MaxDepth-1 && childPV[i] != board.MoveEmpty; i++ {
		currentPV[i+1] = childPV[i]
	}
	currentPV[i+1] = board.MoveEmpty
}

// pvToString renders pv as a space-separated long-algebraic move list and
// splits out the best and ponder moves. Assumes at least one move in the
// line; ponder is empty when the line is a single move.
func pvToString(pv []board.Move) (pvString, bestMove, ponderMove string) {
	var sb strings.Builder
	bestMove = pv[0].String()
	sb.WriteString(bestMove)
	for depth := 1; depth < MaxDepth && pv[depth] != board.MoveEmpty; depth++ {
		if depth == 1 {
			ponderMove = pv[depth].String()
		}
		sb.WriteString(" ")
		sb.WriteString(pv[depth].String())
	}
	return sb.String(), bestMove, ponderMove
}

// scoreToUci renders score as "cp N" for centipawn scores and "mate K" for
// mate scores, with K in full moves and K's sign carrying which side mates.
func scoreToUci(score int) string {
	if score >= GuaranteeCheckmate {
		return fmt.Sprintf("mate %d", (Checkmate-score+1)/2)
	}
	if score <= -GuaranteeCheckmate {
		return fmt.Sprintf("mate %d", (-Checkmate-score)/2)
	}
	return fmt.Sprintf("cp %d", score)
}

// printSearch emits the per-iteration UCI info line. This goes through
// fmt.Printf rather than the structured logger: it is protocol wire data,
// not diagnostics.
func printSearch(ctx *Context, depth int, score int, pvString string) {
	var timeMs = ctx.Elapsed().Milliseconds()
	var nps = ctx.Nodes * 1000 / (timeMs + 1)
	fmt.Printf("info depth %d score %s nodes %d nps %d time %d pv %s\n",
		depth, scoreToUci(score), ctx.Nodes, nps, timeMs, pvString)
}
