package consensus

// LegacySighashDigest builds the pre-segwit signature-hash digest for
// input i: every other input's scriptSig is blanked, the target
// input's scriptSig is replaced with scriptCode, the sighash flag is
// appended, and the result is hash256'd.
func LegacySighashDigest(tx *Tx, inputIndex int, scriptCode []byte, sighashFlag uint32) ([32]byte, error) {
	if inputIndex < 0 || inputIndex >= len(tx.Inputs) {
		return [32]byte{}, txerr(MalformedTransaction, "sighash input index out of range")
	}
	copyTx := &Tx{
		Version:  tx.Version,
		Inputs:   make([]TxInput, len(tx.Inputs)),
		Outputs:  tx.Outputs,
		Locktime: tx.Locktime,
	}
	copy(copyTx.Inputs, tx.Inputs)
	for i := range copyTx.Inputs {
		if i == inputIndex {
			copyTx.Inputs[i].ScriptSig = scriptCode
		} else {
			copyTx.Inputs[i].ScriptSig = nil
		}
	}

	b := LegacyBytes(copyTx)
	b = AppendLE(b, uint64(sighashFlag), 4)
	return Hash256(b), nil
}

// BIP143SighashDigest builds the segregated-witness signature-hash
// digest for input i, per BIP-143: the preimage hashes the full set of
// prevouts, sequences, and outputs once each, then assembles the
// per-input fields around them.
func BIP143SighashDigest(tx *Tx, inputIndex int, amount uint64, scriptCode []byte, sighashFlag uint32) ([32]byte, error) {
	if inputIndex < 0 || inputIndex >= len(tx.Inputs) {
		return [32]byte{}, txerr(MalformedTransaction, "sighash input index out of range")
	}

	var prevouts, sequences []byte
	for _, in := range tx.Inputs {
		prevouts = append(prevouts, Reverse(in.PrevTxid[:])...)
		prevouts = AppendLE(prevouts, uint64(in.PrevVout), 4)
		sequences = AppendLE(sequences, uint64(in.Sequence), 4)
	}
	hashPrevouts := Hash256(prevouts)
	hashSequence := Hash256(sequences)

	var outputs []byte
	for _, o := range tx.Outputs {
		outputs = AppendLE(outputs, o.Value, 8)
		outputs = AppendCompactSize(outputs, uint64(len(o.ScriptPubKey)))
		outputs = append(outputs, o.ScriptPubKey...)
	}
	hashOutputs := Hash256(outputs)

	in := tx.Inputs[inputIndex]
	preimage := make([]byte, 0, 200)
	preimage = AppendLE(preimage, uint64(uint32(tx.Version)), 4)
	preimage = append(preimage, hashPrevouts[:]...)
	preimage = append(preimage, hashSequence[:]...)
	preimage = append(preimage, Reverse(in.PrevTxid[:])...)
	preimage = AppendLE(preimage, uint64(in.PrevVout), 4)
	preimage = AppendCompactSize(preimage, uint64(len(scriptCode)))
	preimage = append(preimage, scriptCode...)
	preimage = AppendLE(preimage, amount, 8)
	preimage = AppendLE(preimage, uint64(in.Sequence), 4)
	preimage = append(preimage, hashOutputs[:]...)
	preimage = AppendLE(preimage, uint64(tx.Locktime), 4)
	preimage = AppendLE(preimage, uint64(sighashFlag), 4)

	return Hash256(preimage), nil
}
