package consensus

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"blockasm.dev/engine/crypto"
)

func TestValidateTxComputesFeeAndIdentifiers(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	tx := signedP2PKHTx(t, priv, 90000)
	txid := TxID(tx)

	vt, err := ValidateTx(tx, txid, crypto.Secp256k1Provider{})
	if err != nil {
		t.Fatalf("ValidateTx: %v", err)
	}
	if vt.Fee != 10000 {
		t.Fatalf("fee = %d, want 10000", vt.Fee)
	}
	if vt.Txid != txid {
		t.Fatalf("Txid field does not match computed txid")
	}
	if vt.VSize != VirtualSize(vt.Weight) {
		t.Fatalf("VSize does not match VirtualSize(Weight)")
	}
}

func TestValidateTxRejectsIdentifierMismatch(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	tx := signedP2PKHTx(t, priv, 90000)

	_, err = ValidateTx(tx, [32]byte{0xee}, crypto.Secp256k1Provider{})
	txErr, ok := err.(*TxError)
	if !ok || txErr.Code != IdentifierMismatch {
		t.Fatalf("expected IdentifierMismatch, got %v", err)
	}
}

func TestValidateTxRejectsAmountUnderflow(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	tx := signedP2PKHTx(t, priv, 200000) // exceeds the 100000 input
	txid := TxID(tx)

	_, err = ValidateTx(tx, txid, crypto.Secp256k1Provider{})
	txErr, ok := err.(*TxError)
	if !ok || txErr.Code != AmountUnderflow {
		t.Fatalf("expected AmountUnderflow, got %v", err)
	}
}

func TestValidateTxRejectsEmptyInputs(t *testing.T) {
	tx := &Tx{Version: 1, Outputs: []TxOutput{{Value: 1, ScriptPubKey: []byte{0x6a}}}}
	_, err := ValidateTx(tx, [32]byte{}, crypto.Secp256k1Provider{})
	txErr, ok := err.(*TxError)
	if !ok || txErr.Code != MalformedTransaction {
		t.Fatalf("expected MalformedTransaction for a tx with no inputs, got %v", err)
	}
}

func TestCheckStructureRejectsUnsupportedVersion(t *testing.T) {
	tx := &Tx{
		Version: 99,
		Inputs:  []TxInput{{Prevout: PrevoutView{ScriptPubKey: []byte{0x6a}}}},
		Outputs: []TxOutput{{Value: 1, ScriptPubKey: []byte{0x6a}}},
	}
	if err := checkStructure(tx); err == nil {
		t.Fatalf("expected an unsupported version to be rejected")
	}
}
