package assembler

import (
	"testing"

	"blockasm.dev/engine/consensus"
)

func vtx(txid byte, fee, weight uint64) *consensus.ValidatedTx {
	return &consensus.ValidatedTx{Txid: [32]byte{txid}, Fee: fee, Weight: weight}
}

func TestSelectOrdersAscendingByFeeRate(t *testing.T) {
	candidates := []*consensus.ValidatedTx{
		vtx(3, 300, 100), // rate 3
		vtx(1, 100, 100), // rate 1
		vtx(2, 200, 100), // rate 2
	}
	selected := Select(candidates, 0)
	if len(selected) != 3 {
		t.Fatalf("got %d selected, want 3", len(selected))
	}
	want := []byte{1, 2, 3}
	for i, w := range want {
		if selected[i].Txid[0] != w {
			t.Fatalf("position %d: txid[0]=%d, want %d", i, selected[i].Txid[0], w)
		}
	}
}

func TestSelectBreaksTiesByTxidLexicographic(t *testing.T) {
	candidates := []*consensus.ValidatedTx{
		vtx(9, 100, 100),
		vtx(1, 100, 100),
		vtx(5, 100, 100),
	}
	selected := Select(candidates, 0)
	want := []byte{1, 5, 9}
	for i, w := range want {
		if selected[i].Txid[0] != w {
			t.Fatalf("position %d: txid[0]=%d, want %d", i, selected[i].Txid[0], w)
		}
	}
}

func TestSelectStopsAtWeightBudget(t *testing.T) {
	candidates := []*consensus.ValidatedTx{
		vtx(1, 10, 1000),
		vtx(2, 20, 1000),
		vtx(3, 30, 1000),
	}
	selected := Select(candidates, consensus.MaxBlockWeight-1500) // leaves a 1500-weight budget
	if len(selected) != 1 {
		t.Fatalf("got %d selected, want 1 under a tight budget", len(selected))
	}
}

func TestSelectSkipsOversizedCandidateButKeepsSmallerOnes(t *testing.T) {
	huge := vtx(1, 1, consensus.MaxBlockWeight+1000)
	small := vtx(2, 1, 100)
	selected := Select([]*consensus.ValidatedTx{huge, small}, 0)
	if len(selected) != 1 || selected[0].Txid[0] != 2 {
		t.Fatalf("expected only the small candidate to be selected, got %d entries", len(selected))
	}
}
