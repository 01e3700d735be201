package search

import (
	"testing"

	"github.com/chesscore/searchcore/board"
)

// The selector must cover exactly the legal move set, whatever the staging:
// TT move, noisy, and quiet stages together may neither drop nor duplicate
// a legal move.
func TestMoveSelectorCoversLegalMoves(t *testing.T) {
	var fens = []string{
		board.InitialPositionFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		// promotions, including capturing under-promotions
		"8/p1P5/P7/3p4/5p1p/3p1P1P/K2p2pp/3R2nk w - - 0 1",
		"rnbqk3/p1P5/8/8/8/8/8/4K3 w q - 0 1",
		// en passant
		"8/7p/p5pb/4k3/P1pPn3/8/P5PP/1rB2RK1 b - d3 0 28",
		// side to move in check
		"4k3/4q3/8/8/8/8/3P4/4K3 w - - 0 1",
	}
	for _, fen := range fens {
		var p = mustPosition(t, fen)

		var want = make(map[board.Move]bool)
		for _, m := range p.GenerateLegalMoves() {
			want[m] = true
		}

		var got = make(map[board.Move]int)
		var ms MoveSelector
		ms.Init(&p, board.MoveEmpty)
		var child board.Position
		for {
			var move = ms.Next()
			if move == board.MoveEmpty {
				break
			}
			if !p.MakeMove(move, &child) {
				continue
			}
			got[move]++
		}

		for m := range want {
			if got[m] == 0 {
				t.Errorf("%v: selector dropped %v", fen, m)
			}
		}
		for m, n := range got {
			if !want[m] {
				t.Errorf("%v: selector produced non-legal %v", fen, m)
			}
			if n > 1 {
				t.Errorf("%v: selector produced %v %d times", fen, m, n)
			}
		}
	}
}

func TestMoveSelectorEmitsTTMoveFirst(t *testing.T) {
	var p = mustPosition(t, board.InitialPositionFen)
	var ttMove, _ = p.MoveFromLAN("b1c3")
	var ms MoveSelector
	ms.Init(&p, ttMove)
	if got := ms.Next(); got != ttMove {
		t.Fatalf("first move = %v, want TT move %v", got, ttMove)
	}
	// The TT move must not reappear in a later stage.
	for {
		var move = ms.Next()
		if move == board.MoveEmpty {
			break
		}
		if move == ttMove {
			t.Fatal("TT move emitted twice")
		}
	}
}

func TestNoisySelectorEmitsOnlyNoisyMoves(t *testing.T) {
	var p = mustPosition(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	var ms MoveSelector
	ms.InitNoisy(&p)
	var count = 0
	for {
		var move = ms.Next()
		if move == board.MoveEmpty {
			break
		}
		if move.CapturedPiece() == board.Empty && move.Promotion() == board.Empty {
			t.Errorf("quiet move %v from noisy selector", move)
		}
		count++
	}
	if count == 0 {
		t.Error("expected captures in kiwipete")
	}
}

func TestMVVLVAPrefersCheapAttacker(t *testing.T) {
	// Same victim, cheaper attacker: pawn takes queen sorts before queen
	// takes queen.
	var p = mustPosition(t, "4k3/8/8/3q4/4P3/8/8/3QK3 w - - 0 1")
	var pxq, _ = p.MoveFromLAN("e4d5")
	var qxq, _ = p.MoveFromLAN("d1d5")
	if pxq == board.MoveEmpty || qxq == board.MoveEmpty {
		t.Fatal("setup moves missing")
	}
	if mvvlva(pxq) <= mvvlva(qxq) {
		t.Errorf("mvvlva(PxQ)=%v should exceed mvvlva(QxQ)=%v", mvvlva(pxq), mvvlva(qxq))
	}
}
