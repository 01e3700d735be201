package search

import (
	"github.com/chesscore/searchcore/board"
)

// PositionEvaluation is a transposition-table entry, consumed by alphaBeta
// (quiescence does not use the table) but owned and replaced by this package. The search only
// depends on the probe/store contract, not the storage layout.
type PositionEvaluation struct {
	Key        uint64
	BestMove   board.Move
	Depth      uint8
	Bound      Bound
	NodeScore  int16
	StaticEval int16
	Age        uint8
}

// TranspositionTable is a flat, unsynchronized array of entries indexed by
// key modulo length. The table is advisory: a stale or mismatched Key is
// just a probe miss, never a correctness issue, so no locking is
// introduced and torn entries are tolerated.
type TranspositionTable struct {
	entries []PositionEvaluation
	age     uint32
}

// CreateTranspositionTable sizes the table to approximately sizeMB
// megabytes (megabytes*1024*1024/entrySize slots).
func CreateTranspositionTable(sizeMB int) *TranspositionTable {
	if sizeMB < 1 {
		sizeMB = 1
	}
	const entrySize = 24
	var count = sizeMB * 1024 * 1024 / entrySize
	if count < 1024 {
		count = 1024
	}
	return &TranspositionTable{entries: make([]PositionEvaluation, count)}
}

// ClearTranspositionTable zeroes every entry. The training driver calls
// this between self-play games.
func ClearTranspositionTable(tt *TranspositionTable) {
	for i := range tt.entries {
		tt.entries[i] = PositionEvaluation{}
	}
	tt.age = 0
}

// DestroyTranspositionTable drops the table's backing storage. Go's GC makes
// this a no-op beyond letting the slice become collectible; kept as a named
// call so the create/destroy lifecycle stays explicit at the call sites.
func DestroyTranspositionTable(tt *TranspositionTable) {
	tt.entries = nil
}

// BumpAge increments the per-table age counter, once per root search.
func (tt *TranspositionTable) BumpAge() {
	tt.age++
}

func (tt *TranspositionTable) index(key uint64) int {
	return int(key % uint64(len(tt.entries)))
}

// ProbeTT looks up key and returns the stored entry and whether it was a
// hit. A Key mismatch is reported as a miss, not an error.
func (tt *TranspositionTable) ProbeTT(key uint64) (entry PositionEvaluation, hit bool) {
	var slot = &tt.entries[tt.index(key)]
	if slot.Key == key {
		return *slot, true
	}
	return PositionEvaluation{}, false
}

// SavePositionEvaluation writes an entry for key, always replacing whatever
// occupied the slot. A generation/depth-aware replacement scheme could slot
// in here without touching the callers.
func SavePositionEvaluation(tt *TranspositionTable, key uint64, move board.Move, depth int, bound Bound, score, staticEval int) {
	tt.entries[tt.index(key)] = PositionEvaluation{
		Key:        key,
		BestMove:   move,
		Depth:      uint8(depth),
		Bound:      bound,
		NodeScore:  int16(score),
		StaticEval: int16(staticEval),
		Age:        uint8(tt.age),
	}
}

// adjustMateToTT converts a root-relative mate score (produced by a ply
// counter that runs continuously from the root) into one relative to the
// node being stored: add ply for a mate-for score, subtract for
// mate-against, otherwise leave it alone.
func adjustMateToTT(score, ply int) int {
	if score >= GuaranteeCheckmate {
		return score + ply
	}
	if score <= -GuaranteeCheckmate {
		return score - ply
	}
	return score
}

// adjustMateFromTT is adjustMateToTT's inverse.
func adjustMateFromTT(score, ply int) int {
	if score >= GuaranteeCheckmate {
		return score - ply
	}
	if score <= -GuaranteeCheckmate {
		return score + ply
	}
	return score
}
