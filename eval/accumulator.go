package eval

import "github.com/chesscore/searchcore/board"

// Accumulator is the POD-copyable per-ply evaluation state the search stack
// threads from parent to child instead of recomputing a full static
// evaluation at every node. It stands in for a neural-network accumulator:
// here it is just the incrementally-maintained PST/material sum and the
// game-phase counter.
type Accumulator struct {
	score Score
	phase int
}

// NewAccumulator builds an accumulator from scratch, the way the root of a
// search (or a freshly loaded FEN) has to, since there is no parent to copy
// from.
func NewAccumulator(p *board.Position) Accumulator {
	var acc Accumulator
	for sq := 0; sq < 64; sq++ {
		pieceType, side := p.GetPieceTypeAndSide(sq)
		if pieceType == board.Empty {
			continue
		}
		acc.add(pieceType, side, sq)
	}
	return acc
}

func (a *Accumulator) add(pieceType int, side bool, sq int) {
	var relSq = sq
	if !side {
		relSq = board.FlipSquare(sq)
	}
	var term = pst[pieceType][relSq]
	if side {
		a.score += term
	} else {
		a.score -= term
	}
	a.phase += pieceValuePhase(pieceType)
}

func (a *Accumulator) remove(pieceType int, side bool, sq int) {
	var relSq = sq
	if !side {
		relSq = board.FlipSquare(sq)
	}
	var term = pst[pieceType][relSq]
	if side {
		a.score -= term
	} else {
		a.score += term
	}
	a.phase -= pieceValuePhase(pieceType)
}

// AfterMove returns the accumulator for the position reached by playing move
// on top of p (which is the position *before* the move), mirroring the
// xorPiece incremental update board/position.go performs on the Zobrist key
// for the same move.
func (a Accumulator) AfterMove(p *board.Position, move board.Move) Accumulator {
	var result = a
	var from = move.From()
	var to = move.To()
	var movingPiece = move.MovingPiece()
	var capturedPiece = move.CapturedPiece()
	var side = p.WhiteMove

	if capturedPiece != board.Empty {
		if capturedPiece == board.Pawn && to == p.EpSquare {
			var capSq = to + 8
			if side {
				capSq = to - 8
			}
			result.remove(board.Pawn, !side, capSq)
		} else {
			result.remove(capturedPiece, !side, to)
		}
	}

	result.remove(movingPiece, side, from)
	if movingPiece == board.Pawn && move.Promotion() != board.Empty {
		result.add(move.Promotion(), side, to)
	} else {
		result.add(movingPiece, side, to)
	}

	if movingPiece == board.King {
		if side {
			if from == board.SquareE1 && to == board.SquareG1 {
				result.remove(board.Rook, true, board.SquareH1)
				result.add(board.Rook, true, board.SquareF1)
			}
			if from == board.SquareE1 && to == board.SquareC1 {
				result.remove(board.Rook, true, board.SquareA1)
				result.add(board.Rook, true, board.SquareD1)
			}
		} else {
			if from == board.SquareE8 && to == board.SquareG8 {
				result.remove(board.Rook, false, board.SquareH8)
				result.add(board.Rook, false, board.SquareF8)
			}
			if from == board.SquareE8 && to == board.SquareC8 {
				result.remove(board.Rook, false, board.SquareA8)
				result.add(board.Rook, false, board.SquareD8)
			}
		}
	}

	return result
}
