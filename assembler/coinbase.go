package assembler

import "blockasm.dev/engine/consensus"

// WitnessReservedValue is the 32 zero bytes carried as the coinbase's
// single witness-stack item, per BIP-141.
var WitnessReservedValue [32]byte

// BuildCoinbase synthesizes the coinbase transaction: one input
// spending nothing (block height and an extra nonce encoded into its
// scriptSig), a payout output carrying reward, and a zero-value
// OP_RETURN output carrying the witness commitment derived from
// witnessMerkleRoot.
func BuildCoinbase(height, extraNonce, reward uint64, payoutScript []byte, witnessMerkleRoot [32]byte) *consensus.Tx {
	scriptSig := append(encodeMinimalPush(height), encodeExtraNonce(extraNonce)...)

	commitment := consensus.WitnessCommitment(witnessMerkleRoot, WitnessReservedValue)
	commitScript := make([]byte, 0, 38)
	commitScript = append(commitScript, 0x6a, 0x24, 0xaa, 0x21, 0xa9, 0xed)
	commitScript = append(commitScript, commitment[:]...)

	return &consensus.Tx{
		Version: 2,
		Inputs: []consensus.TxInput{
			{
				PrevTxid:  [32]byte{},
				PrevVout:  consensus.CoinbaseVout,
				ScriptSig: scriptSig,
				Sequence:  consensus.CoinbaseSequence,
			},
		},
		Outputs: []consensus.TxOutput{
			{Value: reward, ScriptPubKey: payoutScript},
			{Value: 0, ScriptPubKey: commitScript},
		},
		Witnesses: []consensus.WitnessStack{
			{append([]byte(nil), WitnessReservedValue[:]...)},
		},
		Locktime: 0,
	}
}

// encodeMinimalPush encodes n as a BIP-34-style minimal data push: a
// single length byte followed by n's shortest little-endian encoding,
// with a zero high byte appended when the top bit would otherwise be
// mistaken for a sign.
func encodeMinimalPush(n uint64) []byte {
	if n == 0 {
		return []byte{0x00}
	}
	var data []byte
	for v := n; v > 0; v >>= 8 {
		data = append(data, byte(v))
	}
	if data[len(data)-1]&0x80 != 0 {
		data = append(data, 0x00)
	}
	out := make([]byte, 0, len(data)+1)
	out = append(out, byte(len(data)))
	return append(out, data...)
}

func encodeExtraNonce(n uint64) []byte {
	data := make([]byte, 8)
	for i := range data {
		data[i] = byte(n >> (8 * uint(i)))
	}
	return append([]byte{byte(len(data))}, data...)
}
