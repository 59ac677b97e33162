package consensus

import (
	"math"
	"testing"
)

func TestAddUint64OverflowIsRejected(t *testing.T) {
	_, err := addUint64(math.MaxUint64, 1)
	txErr, ok := err.(*TxError)
	if !ok || txErr.Code != EncodingOverflow {
		t.Fatalf("expected EncodingOverflow, got %v", err)
	}
}

func TestAddUint64NoOverflow(t *testing.T) {
	got, err := addUint64(2, 3)
	if err != nil {
		t.Fatalf("addUint64: %v", err)
	}
	if got != 5 {
		t.Fatalf("addUint64(2,3) = %d, want 5", got)
	}
}
