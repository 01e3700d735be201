package eval

import "github.com/chesscore/searchcore/board"

// Piece-square tables, indexed by square with SquareA1=0 (White's home rank
// first); each entry packs a middlegame and an endgame term via Score.
// Values are centralization/advancement curves rather than hand-tuned
// constants -- a stand-in for a trained network, kept small on purpose.
var pst [board.King + 1][64]Score

const (
	pawnMg, pawnEg     = 100, 120
	knightMg, knightEg = 320, 300
	bishopMg, bishopEg = 330, 320
	rookMg, rookEg     = 500, 520
	queenMg, queenEg   = 950, 970
	kingMg, kingEg     = 0, 0
)

func init() {
	for sq := 0; sq < 64; sq++ {
		var file, rank = board.File(sq), board.Rank(sq)
		var centerFile = centerDistance(file)
		var centerRank = centerDistance(rank)
		var central = 4 - centerFile - centerRank // -2..4, higher = more central

		pst[board.Pawn][sq] = S(pawnMg+4*rank, pawnEg+10*rank)
		pst[board.Knight][sq] = S(knightMg+6*central, knightEg+4*central)
		pst[board.Bishop][sq] = S(bishopMg+5*central, bishopEg+3*central)
		pst[board.Rook][sq] = S(rookMg+2*central, rookEg+6*rank)
		pst[board.Queen][sq] = S(queenMg+3*central, queenEg+2*central)

		// king: hug the back rank in the middlegame, centralize in the endgame.
		var backRankBonus = 10 - 3*rank
		pst[board.King][sq] = S(kingMg+backRankBonus-2*centerFile, kingEg+6*central)
	}
}

// centerDistance returns how far file/rank index lineIndex (0..7) is from
// the central pair {3,4}, so 0 at the center files/ranks and 3 at the edges.
func centerDistance(lineIndex int) int {
	if lineIndex <= 3 {
		return 3 - lineIndex
	}
	return lineIndex - 4
}

// pieceValuePhase is the phase weight contributed by one piece of the given
// type: minors 1, rooks 2, queens 4.
func pieceValuePhase(pieceType int) int {
	switch pieceType {
	case board.Knight, board.Bishop:
		return 1
	case board.Rook:
		return 2
	case board.Queen:
		return 4
	default:
		return 0
	}
}

const totalPhase = 2 * (4*1 + 2*2 + 4) // 24, both sides, matches pesto's totalPhase shape
