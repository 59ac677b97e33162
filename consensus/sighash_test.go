package consensus

import "testing"

func TestLegacySighashDigestBlanksOtherInputScripts(t *testing.T) {
	tx := &Tx{
		Version: 1,
		Inputs: []TxInput{
			{PrevTxid: [32]byte{1}, ScriptSig: []byte{0xaa, 0xbb}, Sequence: 1},
			{PrevTxid: [32]byte{2}, ScriptSig: []byte{0xcc, 0xdd}, Sequence: 2},
		},
		Outputs: []TxOutput{{Value: 1, ScriptPubKey: []byte{0x6a}}},
	}
	scriptCode := []byte{0x76, 0xa9}

	d0, err := LegacySighashDigest(tx, 0, scriptCode, SighashAll)
	if err != nil {
		t.Fatalf("LegacySighashDigest(0): %v", err)
	}

	tx.Inputs[1].ScriptSig = []byte{0xff, 0xff, 0xff}
	d0again, err := LegacySighashDigest(tx, 0, scriptCode, SighashAll)
	if err != nil {
		t.Fatalf("LegacySighashDigest(0) again: %v", err)
	}
	if d0 != d0again {
		t.Fatalf("changing another input's scriptSig must not change input 0's digest")
	}
}

func TestLegacySighashDigestRejectsOutOfRangeIndex(t *testing.T) {
	tx := &Tx{Inputs: []TxInput{{}}, Outputs: []TxOutput{{}}}
	if _, err := LegacySighashDigest(tx, 5, nil, SighashAll); err == nil {
		t.Fatalf("expected an out-of-range input index to be rejected")
	}
}

func TestBIP143SighashDigestChangesWithAmount(t *testing.T) {
	tx := &Tx{
		Version:  2,
		Inputs:   []TxInput{{PrevTxid: [32]byte{1}, Sequence: 0xffffffff}},
		Outputs:  []TxOutput{{Value: 1, ScriptPubKey: []byte{0x6a}}},
		Locktime: 0,
	}
	scriptCode := []byte{0x76, 0xa9}

	d1, err := BIP143SighashDigest(tx, 0, 1000, scriptCode, SighashAll)
	if err != nil {
		t.Fatalf("BIP143SighashDigest: %v", err)
	}
	d2, err := BIP143SighashDigest(tx, 0, 2000, scriptCode, SighashAll)
	if err != nil {
		t.Fatalf("BIP143SighashDigest: %v", err)
	}
	if d1 == d2 {
		t.Fatalf("BIP-143 digest must depend on the spent amount")
	}
}

func TestBIP143SighashDigestIsDeterministic(t *testing.T) {
	tx := &Tx{
		Version:  2,
		Inputs:   []TxInput{{PrevTxid: [32]byte{1}, Sequence: 0xffffffff}},
		Outputs:  []TxOutput{{Value: 1, ScriptPubKey: []byte{0x6a}}},
		Locktime: 0,
	}
	scriptCode := []byte{0x76, 0xa9}

	d1, err := BIP143SighashDigest(tx, 0, 1000, scriptCode, SighashAll)
	if err != nil {
		t.Fatalf("BIP143SighashDigest: %v", err)
	}
	d2, err := BIP143SighashDigest(tx, 0, 1000, scriptCode, SighashAll)
	if err != nil {
		t.Fatalf("BIP143SighashDigest: %v", err)
	}
	if d1 != d2 {
		t.Fatalf("BIP143SighashDigest is not deterministic for identical inputs")
	}
}
