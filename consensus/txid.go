package consensus

// TxID returns reverse(hash256(legacy serialization)).
func TxID(tx *Tx) [32]byte {
	return Reverse32(Hash256(LegacyBytes(tx)))
}

// WTxID returns reverse(hash256(full serialization)). It equals TxID
// when the transaction carries no witness data.
func WTxID(tx *Tx) [32]byte {
	if !tx.IsSegwit() {
		return TxID(tx)
	}
	return Reverse32(Hash256(FullBytes(tx)))
}

// Weight returns 3*stripped_size + full_size.
func Weight(tx *Tx) uint64 {
	stripped := len(LegacyBytes(tx))
	full := len(FullBytes(tx))
	return uint64(3*stripped + full)
}

// VirtualSize returns ceil(weight/4).
func VirtualSize(weight uint64) uint64 {
	return (weight + 3) / 4
}
