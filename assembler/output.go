package assembler

import (
	"encoding/hex"
	"fmt"
	"io"

	"blockasm.dev/engine/consensus"
)

// WriteOutput writes the four-section output format: the header, the
// full-form coinbase, the coinbase txid, then one included txid per
// line, all natural-order hex.
func WriteOutput(w io.Writer, header consensus.BlockHeader, coinbaseFull []byte, coinbaseTxid [32]byte, includedTxids [][32]byte) error {
	if _, err := fmt.Fprintln(w, hex.EncodeToString(consensus.BlockHeaderBytes(header))); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, hex.EncodeToString(coinbaseFull)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, hex.EncodeToString(coinbaseTxid[:])); err != nil {
		return err
	}
	for _, t := range includedTxids {
		if _, err := fmt.Fprintln(w, hex.EncodeToString(t[:])); err != nil {
			return err
		}
	}
	return nil
}
