package board

import "testing"

// https://www.chessprogramming.org/Perft_Results
func TestPerft(t *testing.T) {
	var tests = []struct {
		fen   string
		depth int
		nodes int
	}{
		{
			fen:   InitialPositionFen,
			depth: 4,
			nodes: 197281,
		},
		{
			fen:   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			depth: 3,
			nodes: 97862,
		},
		{
			fen:   "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			depth: 5,
			nodes: 674624,
		},
		{
			fen:   "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			depth: 3,
			nodes: 9467,
		},
	}
	for i, test := range tests {
		p, err := NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(err)
		}
		var nodes = perft(&p, test.depth)
		if nodes != test.nodes {
			t.Errorf("case %d (%v): got %v nodes, want %v", i, test.fen, nodes, test.nodes)
		}
	}
}

func perft(p *Position, depth int) int {
	if depth == 0 {
		return 1
	}
	var buffer [MaxMoves]Move
	var child Position
	var nodes = 0
	for _, move := range p.GenerateMoves(buffer[:]) {
		if !p.MakeMove(move, &child) {
			continue
		}
		if depth == 1 {
			nodes++
		} else {
			nodes += perft(&child, depth-1)
		}
	}
	return nodes
}
