package search

import "github.com/chesscore/searchcore/board"

// Score ranges: Infinite is a sentinel never returned from a completed
// search; scores at or beyond GuaranteeCheckmate encode a forced mate with
// its distance in plies.
const (
	Draw               = 0
	Infinite           = Checkmate + 1
	Checkmate          = 32000
	GuaranteeCheckmate = Checkmate - MaxDepth
)

// MaxDepth bounds remaining search depth; MaxPly bounds the accumulator and
// PV stacks a single root search can recurse through (quiescence included).
const (
	MaxDepth = 255
	MaxPly   = 512
)

// NodeKind controls pruning aggressiveness and PV collection. Root is a PV
// node with the extra property that draw detection is skipped (the root
// must always produce a move).
type NodeKind int8

const (
	NonPV NodeKind = iota
	PV
	Root
)

// Bound tags a transposition-table entry's relationship to the true score.
type Bound int8

const (
	BoundNone  Bound = 0
	BoundLower Bound = 1
	BoundUpper Bound = 2
	BoundExact Bound = BoundLower | BoundUpper
)

// MoveObject pairs a move with an ordering score.
type MoveObject struct {
	Move  board.Move
	Score int32
}

func lossIn(ply int) int {
	return -Checkmate + ply
}

// isInteresting marks the moves futility pruning may never skip: captures,
// en passant, and queen promotions.
func isInteresting(move board.Move) bool {
	return move.CapturedPiece() != board.Empty ||
		move.Promotion() == board.Queen
}
