package consensus

import "testing"

func TestMerkleRootSingleLeafDuplicatesItself(t *testing.T) {
	leaf := Sha256([]byte("only-leaf"))
	got, err := MerkleRoot([][32]byte{leaf})
	if err != nil {
		t.Fatalf("MerkleRoot: %v", err)
	}
	want := Hash256(append(append([]byte(nil), leaf[:]...), leaf[:]...))
	if got != want {
		t.Fatalf("single-leaf root = %x, want hash256(leaf||leaf) = %x", got, want)
	}
}

func TestMerkleRootEmptyIsRejected(t *testing.T) {
	if _, err := MerkleRoot(nil); err == nil {
		t.Fatalf("expected an error for an empty leaf set")
	}
}

func TestMerkleRootOddLevelDuplicatesLast(t *testing.T) {
	a := Sha256([]byte("a"))
	b := Sha256([]byte("b"))
	c := Sha256([]byte("c"))

	got, err := MerkleRoot([][32]byte{a, b, c})
	if err != nil {
		t.Fatalf("MerkleRoot: %v", err)
	}

	ab := Hash256(append(append([]byte(nil), a[:]...), b[:]...))
	cc := Hash256(append(append([]byte(nil), c[:]...), c[:]...))
	want := Hash256(append(append([]byte(nil), ab[:]...), cc[:]...))
	if got != want {
		t.Fatalf("odd-level root mismatch: got %x, want %x", got, want)
	}
}

func TestMerkleRootIsDeterministic(t *testing.T) {
	leaves := [][32]byte{Sha256([]byte("x")), Sha256([]byte("y")), Sha256([]byte("z"))}
	r1, err := MerkleRoot(leaves)
	if err != nil {
		t.Fatalf("MerkleRoot: %v", err)
	}
	r2, err := MerkleRoot(append([][32]byte(nil), leaves...))
	if err != nil {
		t.Fatalf("MerkleRoot: %v", err)
	}
	if r1 != r2 {
		t.Fatalf("MerkleRoot is not deterministic across equivalent inputs")
	}
}

func TestWitnessMerkleRootPrependsZeroCoinbaseWtxid(t *testing.T) {
	wtxid := Sha256([]byte("included-tx"))
	got, err := WitnessMerkleRoot([][32]byte{wtxid})
	if err != nil {
		t.Fatalf("WitnessMerkleRoot: %v", err)
	}
	want, err := MerkleRoot([][32]byte{{}, wtxid})
	if err != nil {
		t.Fatalf("MerkleRoot: %v", err)
	}
	if got != want {
		t.Fatalf("WitnessMerkleRoot did not prepend the all-zero coinbase wtxid as expected")
	}
}

func TestWitnessCommitmentIsHash256OfRootAndReserved(t *testing.T) {
	root := Sha256([]byte("root"))
	var reserved [32]byte
	got := WitnessCommitment(root, reserved)
	want := Hash256(append(append([]byte(nil), root[:]...), reserved[:]...))
	if got != want {
		t.Fatalf("WitnessCommitment mismatch")
	}
}
