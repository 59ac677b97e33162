package assembler

import "blockasm.dev/engine/consensus"

// compactBits is recorded in the header's bits field for completeness;
// proof-of-work is always checked against the fixed
// consensus.DifficultyTarget constant regardless of this value, per
// the difficulty-encoding design note this engine follows.
const compactBits = 0x1d00ffff

// MineHeader searches the 32-bit nonce space for a header satisfying
// proof-of-work against consensus.DifficultyTarget for a single fixed
// timestamp. It reports false if the entire nonce space was exhausted
// without success, in which case the caller (Assemble) bumps the
// timestamp and calls MineHeader again.
func MineHeader(prevBlockHash, merkleRoot [32]byte, timestamp uint32) (consensus.BlockHeader, bool) {
	header := consensus.BlockHeader{
		Version:       consensus.BlockVersion,
		PrevBlockHash: prevBlockHash,
		MerkleRoot:    merkleRoot,
		Timestamp:     timestamp,
		Bits:          compactBits,
	}
	nonce := uint32(0)
	for {
		header.Nonce = nonce
		if consensus.PowCheck(consensus.BlockHeaderBytes(header), consensus.DifficultyTarget) {
			return header, true
		}
		if nonce == ^uint32(0) {
			return header, false
		}
		nonce++
	}
}
