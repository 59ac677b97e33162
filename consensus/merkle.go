package consensus

// MerkleRoot computes a merkle root over leaves using hash256 pairing
// with duplicate-last-element promotion for odd-sized levels. A
// single-leaf input is treated as the degenerate odd case: it is paired
// with itself exactly like any other odd level, so the root is
// hash256(leaf‖leaf) rather than the leaf itself. This matches the
// specification's single-element property and differs from the
// teacher lineage's in-place-mutating reduction, which this package
// avoids by always working from a copy.
func MerkleRoot(leaves [][32]byte) ([32]byte, error) {
	if len(leaves) == 0 {
		return [32]byte{}, txerr(MalformedTransaction, "merkle root of empty leaf set")
	}
	level := append([][32]byte(nil), leaves...)
	for {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([][32]byte, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			pair := make([]byte, 0, 64)
			pair = append(pair, level[i][:]...)
			pair = append(pair, level[i+1][:]...)
			next = append(next, Hash256(pair))
		}
		level = next
		if len(level) == 1 {
			return level[0], nil
		}
	}
}

// TxidMerkleRoot builds the txid tree: coinbase txid first, then the
// included transactions' txids in their committed selection order.
func TxidMerkleRoot(coinbaseTxid [32]byte, txids [][32]byte) ([32]byte, error) {
	leaves := make([][32]byte, 0, 1+len(txids))
	leaves = append(leaves, coinbaseTxid)
	leaves = append(leaves, txids...)
	return MerkleRoot(leaves)
}

// WitnessMerkleRoot builds the wtxid tree: the all-zeros coinbase wtxid
// first, then the included transactions' wtxids in the same order used
// for the txid tree.
func WitnessMerkleRoot(wtxids [][32]byte) ([32]byte, error) {
	leaves := make([][32]byte, 0, 1+len(wtxids))
	leaves = append(leaves, [32]byte{})
	leaves = append(leaves, wtxids...)
	return MerkleRoot(leaves)
}

// WitnessCommitment computes hash256(witnessMerkleRoot‖witnessReservedValue).
func WitnessCommitment(witnessMerkleRoot [32]byte, witnessReservedValue [32]byte) [32]byte {
	buf := make([]byte, 0, 64)
	buf = append(buf, witnessMerkleRoot[:]...)
	buf = append(buf, witnessReservedValue[:]...)
	return Hash256(buf)
}
