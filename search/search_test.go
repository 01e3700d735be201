package search

import (
	"testing"
	"time"

	"github.com/chesscore/searchcore/board"
	"github.com/chesscore/searchcore/eval"
)

func mustPosition(t *testing.T, fen string) board.Position {
	t.Helper()
	var p, err = board.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestMateInOne(t *testing.T) {
	var p = mustPosition(t, "4k3/8/4K3/4Q3/8/8/8/8 w - - 0 1")
	var ctx = NewContext(p, CreateTranspositionTable(1), 100*time.Millisecond, false)
	var best = SearchToTime(ctx)
	if best.Score != Checkmate-1 {
		t.Fatalf("score = %v, want %v", best.Score, Checkmate-1)
	}
	var child board.Position
	if !p.MakeMove(best.Move, &child) {
		t.Fatalf("best move %v is not legal", best.Move)
	}
	if !child.IsCheck() || len(child.GenerateLegalMoves()) != 0 {
		t.Fatalf("best move %v does not mate", best.Move)
	}
}

func TestStalemate(t *testing.T) {
	var p = mustPosition(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if p.IsCheck() {
		t.Fatal("expected no check")
	}
	if len(p.GenerateLegalMoves()) != 0 {
		t.Fatal("expected no legal moves")
	}
	var ctx = NewContext(p, CreateTranspositionTable(1), 30*time.Millisecond, false)
	var best = SearchToTime(ctx)
	if best.Score != Draw {
		t.Errorf("score = %v, want %v", best.Score, Draw)
	}
	if best.Move != board.MoveEmpty {
		t.Errorf("move = %v, want none", best.Move)
	}
}

func TestWinsHangingQueen(t *testing.T) {
	var p = mustPosition(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	var ctx = NewContext(p, CreateTranspositionTable(1), 100*time.Millisecond, false)
	var best = SearchToTime(ctx)
	if best.Move.String() != "e4d5" {
		t.Errorf("best move = %v, want e4d5", best.Move)
	}
	if best.Score <= 0 {
		t.Errorf("score = %v, want winning", best.Score)
	}
}

func TestRepetitionDraw(t *testing.T) {
	var p = mustPosition(t, board.InitialPositionFen)
	var move, ok = p.MoveFromLAN("g1f3")
	if !ok {
		t.Fatal("g1f3 not found")
	}
	var child board.Position
	p.MakeMove(move, &child)

	var ctx = NewContext(child, CreateTranspositionTable(1), 0, false)
	ctx.SetHistoryKeys(map[uint64]int{child.Key: 2})
	if !ctx.isDraw() {
		t.Fatal("expected threefold repetition draw")
	}

	var helper [8]searchHelper
	if got := alphaBeta(ctx, -Infinite, Infinite, 3, PV, helper[:]); got != Draw {
		t.Errorf("alphaBeta = %v, want %v", got, Draw)
	}
	if ctx.Ply != 0 {
		t.Errorf("ply = %v, want 0", ctx.Ply)
	}
}

func TestQuiescenceStandPatCutoff(t *testing.T) {
	var p = mustPosition(t, "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	var ctx = NewContext(p, CreateTranspositionTable(1), 0, false)
	var standPat = eval.Evaluate(ctx.Accumulator(), ctx.Board.WhiteMove)
	if standPat <= 0 {
		t.Fatalf("static eval = %v, want positive", standPat)
	}
	var helper [4]searchHelper
	var got = quiescence(ctx, standPat-2, standPat-1, helper[:])
	if got != standPat {
		t.Errorf("quiescence = %v, want stand pat %v", got, standPat)
	}
	if ctx.Nodes != 1 {
		t.Errorf("nodes = %v, want 1 (no moves searched)", ctx.Nodes)
	}
}

func TestPlyRestoredAfterSearch(t *testing.T) {
	var fens = []string{
		board.InitialPositionFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		var p = mustPosition(t, fen)
		var ctx = NewContext(p, CreateTranspositionTable(4), 0, false)
		var helper [MaxDepth + 2]searchHelper
		var score = alphaBeta(ctx, -Infinite, Infinite, 3, Root, helper[:])
		if ctx.Ply != 0 {
			t.Errorf("%v: ply = %v, want 0", fen, ctx.Ply)
		}
		if score > Checkmate || score < -Checkmate {
			t.Errorf("%v: score %v out of range", fen, score)
		}
		if ctx.Board.Key != p.Key {
			t.Errorf("%v: board not restored", fen)
		}
	}
}

func TestSearchToTimeProducesResult(t *testing.T) {
	var p = mustPosition(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var ctx = NewContext(p, CreateTranspositionTable(4), 50*time.Millisecond, false)
	var best = SearchToTime(ctx)
	if best.Move == board.MoveEmpty {
		t.Fatal("no best move")
	}
	var child board.Position
	if !p.MakeMove(best.Move, &child) {
		t.Fatalf("best move %v is not legal", best.Move)
	}
}

func TestMateAdjustRoundTrip(t *testing.T) {
	var scores = []int{
		0, 25, -118, GuaranteeCheckmate - 1, -(GuaranteeCheckmate - 1),
		Checkmate - 1, Checkmate - 20, -(Checkmate - 1), -(Checkmate - 7),
	}
	for _, score := range scores {
		for _, ply := range []int{0, 1, 5, 40, 200} {
			if got := adjustMateFromTT(adjustMateToTT(score, ply), ply); got != score {
				t.Errorf("roundtrip(%v, ply %v) = %v", score, ply, got)
			}
		}
	}
}
