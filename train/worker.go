package train

import (
	"bufio"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"lukechampine.com/frand"

	"github.com/chesscore/searchcore/board"
	"github.com/chesscore/searchcore/search"
)

const (
	minRandomMoves = 5
	maxRandomMoves = 10
)

// gameData is one recorded position, reverse-linked so the game is captured
// backwards on the self-play recursion and written tail-to-head once the
// outcome is known.
type gameData struct {
	prev           *gameData
	scoreFromWhite int
	fen            string
}

// worker is one independent self-play loop. It owns everything it touches:
// transposition table, random source, output file. The only shared state is
// the session's stop flag, read once per game.
type worker struct {
	id          int
	tt          *search.TranspositionTable
	rng         *frand.RNG
	timePerMove time.Duration
	file        *os.File
	out         *bufio.Writer
}

func newWorker(id int, config *Config) (*worker, error) {
	var file, err = os.OpenFile(workerFileName(config.OutputDir, id),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &worker{
		id:          id,
		tt:          search.CreateTranspositionTable(config.HashSizeMB),
		rng:         frand.New(),
		timePerMove: config.TimePerMove,
		file:        file,
		out:         bufio.NewWriter(file),
	}, nil
}

func (w *worker) run(stop *atomic.Bool) error {
	for !stop.Load() {
		if err := w.playRandomGame(); err != nil {
			return fmt.Errorf("worker %v: %w", w.id, err)
		}
		search.ClearTranspositionTable(w.tt)
	}
	return nil
}

func (w *worker) close() {
	w.out.Flush()
	w.file.Close()
	search.DestroyTranspositionTable(w.tt)
}

// playRandomGame plays one game from the initial position: a randomized
// opening of 5-10 plies, then self-play to termination.
func (w *worker) playRandomGame() error {
	var pos, err = board.NewPositionFromFEN(board.InitialPositionFen)
	if err != nil {
		return err
	}
	w.playRandomMoves(&pos)
	var history = map[uint64]int{pos.Key: 1}
	return w.playGame(pos, history, nil)
}

// playRandomMoves applies a uniformly random count of opening plies in
// [5,10], each drawn uniformly from the legal moves (captures listed before
// non-captures, as the move-list contract orders them). A drawn move that
// turns out illegal is swapped out and the draw repeated over the rest. If
// the randomized opening runs into a terminal position the remaining draws
// find no legal move and the position is left as is.
func (w *worker) playRandomMoves(pos *board.Position) {
	var plies = minRandomMoves + w.rng.Intn(maxRandomMoves-minRandomMoves+1)
	for i := 0; i < plies; i++ {
		var buffer [board.MaxMoves]board.Move
		var ml = capturesFirst(pos.GenerateMoves(buffer[:]))
		var child board.Position
		for len(ml) > 0 {
			var k = w.rng.Intn(len(ml))
			if pos.MakeMove(ml[k], &child) {
				*pos = child
				break
			}
			ml[k] = ml[len(ml)-1]
			ml = ml[:len(ml)-1]
		}
	}
}

// capturesFirst partitions ml in place so captures and promotions come
// before quiet moves. Captures and promotions keep their relative order; the
// quiet moves do not.
func capturesFirst(ml []board.Move) []board.Move {
	var i = 0
	for j := range ml {
		if ml[j].CapturedPiece() != board.Empty || ml[j].Promotion() != board.Empty {
			ml[i], ml[j] = ml[j], ml[i]
			i++
		}
	}
	return ml
}

// playGame self-plays from pos to termination, linking recorded positions
// through prev. Positions are recorded only when the side to move is not in
// check, the searched score is not a mate score, and mating material
// remains; the recorded score is flipped to White's perspective and the FEN
// is the one before the move is played.
func (w *worker) playGame(pos board.Position, history map[uint64]int, prev *gameData) error {
	var ctx = search.NewContext(pos, w.tt, w.timePerMove, false)
	ctx.SetHistoryKeys(history)
	var best = search.SearchToTime(ctx)

	if !pos.IsCheck() && !isCheckmateScore(best.Score) && !pos.InsufficientMaterial() {
		var score = best.Score
		if !pos.WhiteMove {
			score = -score
		}
		prev = &gameData{prev: prev, scoreFromWhite: score, fen: pos.String()}
	}

	if isEndOfGame(&pos, best) {
		return writeGameData(prev, w.out, gameOutcome(best.Score, pos.WhiteMove))
	}

	var child board.Position
	if !pos.MakeMove(best.Move, &child) {
		return fmt.Errorf("searcher returned illegal move %v in %v", best.Move, pos.String())
	}
	history[child.Key]++
	return w.playGame(child, history, prev)
}

func isCheckmateScore(score int) bool {
	return score <= -search.GuaranteeCheckmate || score >= search.GuaranteeCheckmate
}

func isStalemate(score int, bestMove board.Move) bool {
	return score == search.Draw && bestMove == board.MoveEmpty
}

func isEndOfGame(pos *board.Position, best search.RootMove) bool {
	return isCheckmateScore(best.Score) || isStalemate(best.Score, best.Move) || pos.IsDraw()
}

// gameOutcome derives the final result from White's perspective: 1.0 White
// won, 0.5 draw, 0.0 Black won. A mate score favoring the side to move
// means that side delivered the mate.
func gameOutcome(score int, whiteMove bool) float64 {
	if !isCheckmateScore(score) {
		return 0.5
	}
	if (score > 0) == whiteMove {
		return 1.0
	}
	return 0.0
}

// writeGameData walks the reverse-linked list, emitting one
// "<fen> | <score> | <outcome>" line per recorded position, newest first.
// Outcome is from White's perspective: 1.0 White won, 0.5 draw, 0.0 Black
// won.
func writeGameData(data *gameData, out *bufio.Writer, outcome float64) error {
	for ; data != nil; data = data.prev {
		if _, err := fmt.Fprintf(out, "%v | %v | %.1f\n", data.fen, data.scoreFromWhite, outcome); err != nil {
			return err
		}
	}
	return nil
}
