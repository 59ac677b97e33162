package consensus

import "blockasm.dev/engine/crypto"

// ValidatedTx is the result of a successfully validated candidate
// transaction, carrying everything the block assembler needs without
// recomputing it.
type ValidatedTx struct {
	Tx          *Tx
	Txid        [32]byte
	Wtxid       [32]byte
	Fee         uint64
	Weight      uint64
	VSize       uint64
	FullBytes   []byte
	LegacyBytes []byte
}

// ValidateTx orchestrates the five-step pipeline: structural checks,
// amount conservation, txid self-consistency against the caller's
// external identifier (the mempool file's name), per-input script
// execution, and weight accounting. It never mutates tx; on any
// failure it returns the typed error and a nil result.
func ValidateTx(tx *Tx, externalTxid [32]byte, provider crypto.Provider) (*ValidatedTx, error) {
	if err := checkStructure(tx); err != nil {
		return nil, err
	}

	var totalIn, totalOut uint64
	var err error
	for _, in := range tx.Inputs {
		totalIn, err = addUint64(totalIn, in.Prevout.Value)
		if err != nil {
			return nil, err
		}
	}
	for _, out := range tx.Outputs {
		totalOut, err = addUint64(totalOut, out.Value)
		if err != nil {
			return nil, err
		}
	}
	if totalOut > totalIn {
		return nil, txerr(AmountUnderflow, "output total exceeds input total")
	}
	fee := totalIn - totalOut

	txid := TxID(tx)
	if txid != externalTxid {
		return nil, txerr(IdentifierMismatch, "computed txid does not match external identifier")
	}
	wtxid := WTxID(tx)

	for i := range tx.Inputs {
		if err := ExecuteInput(tx, i, provider); err != nil {
			return nil, err
		}
	}

	legacy := LegacyBytes(tx)
	full := FullBytes(tx)
	weight := uint64(3*len(legacy) + len(full))

	return &ValidatedTx{
		Tx:          tx,
		Txid:        txid,
		Wtxid:       wtxid,
		Fee:         fee,
		Weight:      weight,
		VSize:       VirtualSize(weight),
		FullBytes:   full,
		LegacyBytes: legacy,
	}, nil
}

func checkStructure(tx *Tx) error {
	if tx.Version != 1 && tx.Version != 2 {
		return txerr(MalformedTransaction, "unsupported transaction version")
	}
	if len(tx.Inputs) == 0 {
		return txerr(MalformedTransaction, "transaction has no inputs")
	}
	if len(tx.Outputs) == 0 {
		return txerr(MalformedTransaction, "transaction has no outputs")
	}
	if tx.Witnesses != nil && len(tx.Witnesses) != len(tx.Inputs) {
		return txerr(MalformedTransaction, "witness count does not match input count")
	}
	for _, in := range tx.Inputs {
		if in.Prevout.ScriptPubKey == nil {
			return txerr(MalformedTransaction, "input is missing its prevout scriptPubKey")
		}
	}
	return nil
}
