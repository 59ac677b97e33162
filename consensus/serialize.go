package consensus

// LegacyBytes returns tx's legacy serialization: no segwit marker/flag,
// no witness data. This is the "stripped" form used for txid and for
// the legacy sighash preimage.
func LegacyBytes(tx *Tx) []byte {
	out := make([]byte, 0, 256)
	out = AppendLE(out, uint64(uint32(tx.Version)), 4)
	out = AppendCompactSize(out, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		out = append(out, Reverse(in.PrevTxid[:])...)
		out = AppendLE(out, uint64(in.PrevVout), 4)
		out = AppendCompactSize(out, uint64(len(in.ScriptSig)))
		out = append(out, in.ScriptSig...)
		out = AppendLE(out, uint64(in.Sequence), 4)
	}
	out = AppendCompactSize(out, uint64(len(tx.Outputs)))
	for _, o := range tx.Outputs {
		out = AppendLE(out, o.Value, 8)
		out = AppendCompactSize(out, uint64(len(o.ScriptPubKey)))
		out = append(out, o.ScriptPubKey...)
	}
	out = AppendLE(out, uint64(tx.Locktime), 4)
	return out
}

// FullBytes returns tx's full serialization. For a non-segwit tx this is
// identical to LegacyBytes; for a segwit tx it inserts the marker/flag
// after the version and appends one witness stack per input before the
// locktime.
func FullBytes(tx *Tx) []byte {
	if !tx.IsSegwit() {
		return LegacyBytes(tx)
	}
	out := make([]byte, 0, 256)
	out = AppendLE(out, uint64(uint32(tx.Version)), 4)
	out = append(out, 0x00, 0x01)
	out = AppendCompactSize(out, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		out = append(out, Reverse(in.PrevTxid[:])...)
		out = AppendLE(out, uint64(in.PrevVout), 4)
		out = AppendCompactSize(out, uint64(len(in.ScriptSig)))
		out = append(out, in.ScriptSig...)
		out = AppendLE(out, uint64(in.Sequence), 4)
	}
	out = AppendCompactSize(out, uint64(len(tx.Outputs)))
	for _, o := range tx.Outputs {
		out = AppendLE(out, o.Value, 8)
		out = AppendCompactSize(out, uint64(len(o.ScriptPubKey)))
		out = append(out, o.ScriptPubKey...)
	}
	for i := range tx.Inputs {
		var stack WitnessStack
		if i < len(tx.Witnesses) {
			stack = tx.Witnesses[i]
		}
		out = AppendCompactSize(out, uint64(len(stack)))
		for _, item := range stack {
			out = AppendCompactSize(out, uint64(len(item)))
			out = append(out, item...)
		}
	}
	out = AppendLE(out, uint64(tx.Locktime), 4)
	return out
}

// BlockHeaderBytes returns the fixed 80-byte header encoding.
func BlockHeaderBytes(h BlockHeader) []byte {
	out := make([]byte, 0, HeaderBytes)
	out = AppendLE(out, uint64(h.Version), 4)
	out = append(out, h.PrevBlockHash[:]...)
	out = append(out, h.MerkleRoot[:]...)
	out = AppendLE(out, uint64(h.Timestamp), 4)
	out = AppendLE(out, uint64(h.Bits), 4)
	out = AppendLE(out, uint64(h.Nonce), 4)
	return out
}
