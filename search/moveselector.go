package search

import "github.com/chesscore/searchcore/board"

// MoveSelector is a staged pseudo-legal move generator: the TT move first,
// then captures and queen promotions ordered by MVV-LVA, then the
// remaining quiet moves in generation order. Quiescence
// outside check starts directly at the noisy stage and never advances past
// it. Legality is the caller's problem; illegal pseudo-legals come back
// from MakeMove as a refusal and are skipped silently.
type MoveSelector struct {
	position  *board.Position
	ttMove    board.Move
	stage     int
	noisyOnly bool
	buffer    [board.MaxMoves]MoveObject
	count     int
	index     int
}

const (
	stageTTMove = iota
	stageGenerateNoisy
	stageNoisy
	stageGenerateQuiet
	stageQuiet
	stageDone
)

// Init prepares a full selection pass seeded with the TT-move hint. Also
// the in-check entry point for quiescence: with the board in check, the
// quiet stage generates evasions, so the full pass is exactly the evasion
// set the check demands.
func (ms *MoveSelector) Init(p *board.Position, ttMove board.Move) {
	ms.position = p
	ms.ttMove = ttMove
	ms.noisyOnly = false
	if ttMove != board.MoveEmpty {
		ms.stage = stageTTMove
	} else {
		ms.stage = stageGenerateNoisy
	}
}

// InitNoisy prepares a captures/promotions-only pass, the quiescence state
// for positions not in check.
func (ms *MoveSelector) InitNoisy(p *board.Position) {
	ms.position = p
	ms.ttMove = board.MoveEmpty
	ms.noisyOnly = true
	ms.stage = stageGenerateNoisy
}

// Next returns the next candidate move, or MoveEmpty when the selector is
// exhausted.
func (ms *MoveSelector) Next() board.Move {
	for {
		switch ms.stage {
		case stageTTMove:
			ms.stage = stageGenerateNoisy
			return ms.ttMove
		case stageGenerateNoisy:
			ms.generateNoisy()
			ms.stage = stageNoisy
		case stageNoisy:
			if ms.index < ms.count {
				var m = ms.buffer[ms.index].Move
				ms.index++
				return m
			}
			if ms.noisyOnly {
				ms.stage = stageDone
			} else {
				ms.stage = stageGenerateQuiet
			}
		case stageGenerateQuiet:
			ms.generateQuiet()
			ms.stage = stageQuiet
		case stageQuiet:
			if ms.index < ms.count {
				var m = ms.buffer[ms.index].Move
				ms.index++
				return m
			}
			ms.stage = stageDone
		default:
			return board.MoveEmpty
		}
	}
}

func (ms *MoveSelector) generateNoisy() {
	var buf [board.MaxMoves]board.Move
	ms.count = 0
	ms.index = 0
	for _, m := range ms.position.GenerateCaptures(buf[:]) {
		if m == ms.ttMove {
			continue
		}
		ms.buffer[ms.count] = MoveObject{Move: m, Score: int32(mvvlva(m))}
		ms.count++
	}
	sortMoves(ms.buffer[:ms.count])
}

// generateQuiet emits everything the noisy stage did not: quiet moves,
// castles, and the under-promotions GenerateCaptures leaves out (capturing
// ones included). When the side to move is in check, GenerateMoves
// restricts itself to evasions, so this stage doubles as the evasion
// generator.
func (ms *MoveSelector) generateQuiet() {
	var buf [board.MaxMoves]board.Move
	ms.count = 0
	ms.index = 0
	for _, m := range ms.position.GenerateMoves(buf[:]) {
		if m == ms.ttMove ||
			m.Promotion() == board.Queen ||
			(m.CapturedPiece() != board.Empty && m.Promotion() == board.Empty) {
			continue
		}
		ms.buffer[ms.count] = MoveObject{Move: m}
		ms.count++
	}
}

var sortPieceValues = [...]int{board.Empty: 0, board.Pawn: 1, board.Knight: 2,
	board.Bishop: 3, board.Rook: 4, board.Queen: 5, board.King: 6}

func mvvlva(move board.Move) int {
	return 8*(sortPieceValues[move.CapturedPiece()]+
		sortPieceValues[move.Promotion()]) -
		sortPieceValues[move.MovingPiece()]
}

func sortMoves(moves []MoveObject) {
	for i := 1; i < len(moves); i++ {
		j, t := i, moves[i]
		for ; j > 0 && moves[j-1].Score < t.Score; j-- {
			moves[j] = moves[j-1]
		}
		moves[j] = t
	}
}
