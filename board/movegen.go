package board

// Castling descriptors: the squares between king and rook that must be
// empty, and the squares the king stands on or crosses that must not be
// attacked. The rook's own hop is applied by MakeMove.
var castleDefs = [4]struct {
	right    int
	white    bool
	kingFrom int
	kingTo   int
	empty    uint64
	safe     [2]int
}{
	{WhiteKingSide, true, SquareE1, SquareG1,
		smask(SquareF1) | smask(SquareG1), [2]int{SquareE1, SquareF1}},
	{WhiteQueenSide, true, SquareE1, SquareC1,
		smask(SquareB1) | smask(SquareC1) | smask(SquareD1), [2]int{SquareE1, SquareD1}},
	{BlackKingSide, false, SquareE8, SquareG8,
		smask(SquareF8) | smask(SquareG8), [2]int{SquareE8, SquareF8}},
	{BlackQueenSide, false, SquareE8, SquareC8,
		smask(SquareB8) | smask(SquareC8) | smask(SquareD8), [2]int{SquareE8, SquareD8}},
}

// smask exists because SquareMask is filled by an init function, too late
// for package-level table literals.
func smask(sq int) uint64 {
	return 1 << uint(sq)
}

func pawnForward(side bool) int {
	if side {
		return 8
	}
	return -8
}

// GenerateMoves appends every pseudo-legal move to ml (backed by a MaxMoves
// buffer) and returns the filled slice. When the side to move is in check,
// knights, bishops, rooks and queens are restricted to capturing the checker
// or blocking its line; pawn and king moves are not, and whatever does not
// answer the check is filtered out later by MakeMove's legality test, as are
// moves that expose the own king.
func (p *Position) GenerateMoves(ml []Move) []Move {
	var own = p.PiecesByColor(p.WhiteMove)
	var target = ^own
	if p.Checkers != 0 {
		var kingSq = FirstOne(p.Kings & own)
		target = p.Checkers | betweenMask[FirstOne(p.Checkers)][kingSq]
	}
	ml = p.genPawnMoves(ml[:0], false)
	ml = p.genPieceMoves(ml, target)
	ml = p.genKingMoves(ml, ^own)
	if p.Checkers == 0 {
		ml = p.genCastles(ml)
	}
	return ml
}

// GenerateCaptures appends the noisy subset: captures, en passant, and
// queen promotions (pushed or capturing).
func (p *Position) GenerateCaptures(ml []Move) []Move {
	var opp = p.PiecesByColor(!p.WhiteMove)
	ml = p.genPawnMoves(ml[:0], true)
	ml = p.genPieceMoves(ml, opp)
	ml = p.genKingMoves(ml, opp)
	return ml
}

// GenerateLegalMoves is the allocation-tolerant convenience used outside
// the search hot path.
func (p *Position) GenerateLegalMoves() []Move {
	var buffer [MaxMoves]Move
	var result []Move
	var child Position
	for _, move := range p.GenerateMoves(buffer[:]) {
		if p.MakeMove(move, &child) {
			result = append(result, move)
		}
	}
	return result
}

// genPawnMoves handles both colors with one code path: forward is +8 or -8
// and the promotion test looks at the destination rank. In noisy mode quiet
// pushes are dropped and promotions are queen-only; captures are always
// emitted.
func (p *Position) genPawnMoves(ml []Move, noisyOnly bool) []Move {
	var own = p.PiecesByColor(p.WhiteMove)
	var opp = p.PiecesByColor(!p.WhiteMove)
	var all = p.White | p.Black
	var forward = pawnForward(p.WhiteMove)
	var startRank, promoRank = Rank2, Rank8
	if !p.WhiteMove {
		startRank, promoRank = Rank7, Rank1
	}

	if p.EpSquare != SquareNone {
		for fromBB := PawnAttacks(p.EpSquare, !p.WhiteMove) & p.Pawns & own; fromBB != 0; fromBB &= fromBB - 1 {
			ml = append(ml, makeMove(FirstOne(fromBB), p.EpSquare, Pawn, Pawn))
		}
	}

	for fromBB := p.Pawns & own; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		var to = from + forward
		var promotes = Rank(to) == promoRank

		if all&SquareMask[to] == 0 {
			if promotes {
				ml = appendPromotions(ml, from, to, Empty, noisyOnly)
			} else if !noisyOnly {
				ml = append(ml, makeMove(from, to, Pawn, Empty))
				if Rank(from) == startRank && all&SquareMask[to+forward] == 0 {
					ml = append(ml, makeMove(from, to+forward, Pawn, Empty))
				}
			}
		}

		for _, df := range [2]int{-1, 1} {
			if (df < 0 && File(from) == FileA) || (df > 0 && File(from) == FileH) {
				continue
			}
			var capTo = to + df
			if opp&SquareMask[capTo] == 0 {
				continue
			}
			if promotes {
				ml = appendPromotions(ml, from, capTo, p.WhatPiece(capTo), noisyOnly)
			} else {
				ml = append(ml, makeMove(from, capTo, Pawn, p.WhatPiece(capTo)))
			}
		}
	}
	return ml
}

func appendPromotions(ml []Move, from, to, capturedPiece int, queenOnly bool) []Move {
	ml = append(ml, makePromotionMove(from, to, capturedPiece, Queen))
	if queenOnly {
		return ml
	}
	return append(ml,
		makePromotionMove(from, to, capturedPiece, Rook),
		makePromotionMove(from, to, capturedPiece, Bishop),
		makePromotionMove(from, to, capturedPiece, Knight))
}

func pieceAttacks(pieceType, from int, occ uint64) uint64 {
	switch pieceType {
	case Knight:
		return KnightAttacks[from]
	case Bishop:
		return BishopAttacks(from, occ)
	case Rook:
		return RookAttacks(from, occ)
	case Queen:
		return QueenAttacks(from, occ)
	}
	return 0
}

func (p *Position) genPieceMoves(ml []Move, target uint64) []Move {
	var own = p.PiecesByColor(p.WhiteMove)
	var all = p.White | p.Black
	for pieceType := Knight; pieceType <= Queen; pieceType++ {
		for fromBB := p.pieceBitboard(pieceType) & own; fromBB != 0; fromBB &= fromBB - 1 {
			var from = FirstOne(fromBB)
			for toBB := pieceAttacks(pieceType, from, all) & target; toBB != 0; toBB &= toBB - 1 {
				var to = FirstOne(toBB)
				ml = append(ml, makeMove(from, to, pieceType, p.WhatPiece(to)))
			}
		}
	}
	return ml
}

func (p *Position) genKingMoves(ml []Move, target uint64) []Move {
	var from = FirstOne(p.Kings & p.PiecesByColor(p.WhiteMove))
	for toBB := KingAttacks[from] & target; toBB != 0; toBB &= toBB - 1 {
		var to = FirstOne(toBB)
		ml = append(ml, makeMove(from, to, King, p.WhatPiece(to)))
	}
	return ml
}

func (p *Position) genCastles(ml []Move) []Move {
	var all = p.White | p.Black
	for i := range castleDefs {
		var c = &castleDefs[i]
		if c.white != p.WhiteMove || p.CastleRights&c.right == 0 || all&c.empty != 0 {
			continue
		}
		if p.isAttackedBySide(c.safe[0], !p.WhiteMove) ||
			p.isAttackedBySide(c.safe[1], !p.WhiteMove) {
			continue
		}
		ml = append(ml, makeMove(c.kingFrom, c.kingTo, King, Empty))
	}
	return ml
}
