package search

import (
	"github.com/chesscore/searchcore/board"
	"github.com/chesscore/searchcore/eval"
)

const (
	futilityMargin     = 150
	nullMoveReduction  = 4
	nullMoveDepthLimit = 3
	futilityDepthLimit = 4
	lateMoveReduction  = 2
)

// alphaBeta is the fail-soft negamax core. It returns the best score found,
// which may lie outside [alpha, beta]; callers relying on the window see a
// bound, not a clamp.
func alphaBeta(ctx *Context, alpha, beta, depth int, node NodeKind, helper []searchHelper) int {
	// Reset this ply's line first so PV reconstruction stays safe across
	// every early return below.
	helper[0].pv[0] = board.MoveEmpty

	if depth == 0 {
		return quiescence(ctx, alpha, beta, helper)
	}

	ctx.Nodes++

	if (node != Root && ctx.isDraw()) || ctx.OutOfTime() {
		return Draw
	}

	var isPvNode = node != NonPV
	var positionKey = ctx.Board.Key
	var entry, hasEvaluation = ctx.TT.ProbeTT(positionKey)
	var ttMove = board.MoveEmpty
	if hasEvaluation {
		if !isPvNode && int(entry.Depth) >= depth {
			var nodeScore = adjustMateFromTT(int(entry.NodeScore), ctx.Ply)
			if entry.Bound == BoundExact ||
				(entry.Bound == BoundLower && nodeScore >= beta) ||
				(entry.Bound == BoundUpper && nodeScore <= alpha) {
				return nodeScore
			}
		}
		ttMove = entry.BestMove
	}

	if ctx.Ply >= MaxPly-1 {
		return eval.Evaluate(ctx.Accumulator(), ctx.Board.WhiteMove)
	}

	var inCheck = ctx.Board.IsCheck()
	var staticEval int
	if inCheck {
		staticEval = -Infinite
	} else if hasEvaluation {
		staticEval = int(entry.StaticEval)
	} else {
		staticEval = eval.Evaluate(ctx.Accumulator(), ctx.Board.WhiteMove)
	}

	var child = helper[1:]

	// Null-move pruning. Handing the opponent a free move and still holding
	// beta at reduced depth marks the node as a fail-high. The non-pawn
	// material gate keeps zugzwang positions out.
	if !isPvNode && !inCheck && depth > nullMoveDepthLimit && staticEval >= beta &&
		ctx.Board.HasNonPawnMaterial(ctx.Board.WhiteMove) {
		var parent = ctx.Board
		ctx.MakeNullMove()
		var score = -alphaBeta(ctx, -beta, -beta+1, depth-nullMoveReduction, NonPV, child)
		ctx.Undo(parent)
		if score >= beta {
			return score
		}
	}

	// Reverse futility pruning.
	if !isPvNode && !inCheck && staticEval-futilityMargin*depth >= beta {
		return staticEval
	}

	var ms MoveSelector
	ms.Init(&ctx.Board, ttMove)

	var legalMoves = 0
	var bestScore, oldAlpha = -Infinite, alpha
	var bestMove = board.MoveEmpty

	var childPos board.Position
	for {
		var move = ms.Next()
		if move == board.MoveEmpty {
			break
		}
		if !ctx.Board.MakeMove(move, &childPos) {
			continue
		}
		legalMoves++

		var expectedNonPvNode = !isPvNode || legalMoves > 1

		// Futility pruning: shallow, quiet, and the static eval is so far
		// below alpha that a non-tactical move cannot recover.
		if expectedNonPvNode && depth < futilityDepthLimit && !inCheck &&
			!isInteresting(move) && staticEval+futilityMargin*depth <= alpha {
			continue
		}

		// Late move reductions, deliberately crude: every move after the
		// first at depth > 1 drops an extra ply.
		var reductions = 1
		if legalMoves > 1 && depth > 1 {
			reductions = lateMoveReduction
		}

		var parent = ctx.Board
		ctx.advance(childPos, move)

		// Principal variation search: the first move of a PV node gets the
		// full window; everything else proves itself in a null window first.
		var score int
		if expectedNonPvNode {
			score = -alphaBeta(ctx, -alpha-1, -alpha, depth-reductions, NonPV, child)
		}
		if isPvNode && (legalMoves == 1 || score > alpha) {
			score = -alphaBeta(ctx, -beta, -alpha, depth-1, PV, child)
		}

		ctx.Undo(parent)

		if score > bestScore {
			if score > alpha {
				if score >= beta {
					if !ctx.Stopped() {
						SavePositionEvaluation(ctx.TT, positionKey, move, depth,
							BoundLower, adjustMateToTT(score, ctx.Ply), staticEval)
					}
					return score
				}
				updatePV(move, &helper[0].pv, &child[0].pv)
				alpha = score
			}
			bestScore = score
			bestMove = move
		}
	}

	// No legal moves: mate if in check, stalemate otherwise.
	if legalMoves == 0 {
		if inCheck {
			bestScore = lossIn(ctx.Ply)
		} else {
			bestScore = Draw
		}
	}

	if !ctx.Stopped() {
		var bound = BoundUpper
		if bestScore > oldAlpha {
			bound = BoundExact
		}
		var storedScore = bestScore
		if bestScore == -Infinite {
			storedScore = staticEval
		}
		SavePositionEvaluation(ctx.TT, positionKey, bestMove, depth,
			bound, adjustMateToTT(storedScore, ctx.Ply), staticEval)
	}
	return bestScore
}
