package consensus

// ScriptType classifies a prevout's scriptPubKey shape. It is supplied
// by the caller alongside the prevout (the engine does not maintain a
// UTXO set, so it cannot derive this from chain history) and confirmed
// structurally when the script runs.
type ScriptType string

const (
	ScriptP2PKH  ScriptType = "p2pkh"
	ScriptP2WPKH ScriptType = "p2wpkh"
	ScriptP2SH   ScriptType = "p2sh"
	ScriptP2WSH  ScriptType = "p2wsh"
	ScriptP2TR   ScriptType = "p2tr"
)

// SighashAll is the only sighash flag this engine accepts.
const SighashAll = 0x01

// MaxBlockWeight bounds the total weight of transactions the assembler
// may select into a block, coinbase included.
const MaxBlockWeight = 4_000_000

// HeaderBytes is the fixed serialized size of a BlockHeader.
const HeaderBytes = 80

// BlockVersion is the version field this engine writes into every
// mined header.
const BlockVersion uint32 = 4

// CoinbaseVout and CoinbaseSequence are the fixed sentinel values used
// in a coinbase input's prevout reference and sequence number.
const (
	CoinbaseVout     = 0xffffffff
	CoinbaseSequence = 0xffffffff
)

// DifficultyTarget is the fixed 256-bit proof-of-work target, expressed
// in natural (big-endian, display) byte order.
var DifficultyTarget = [32]byte{
	0x00, 0x00, 0xff, 0xff,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
}

// PrevoutView is the caller-supplied view of the output an input spends:
// its value, its scriptPubKey, and the script type the caller asserts it
// to be. The engine trusts this for dispatch but verifies it against the
// actual script bytes during execution (e.g. a P2SH assertion is
// confirmed by recomputing hash160 of the redeem script).
type PrevoutView struct {
	Value        uint64
	ScriptPubKey []byte
	Type         ScriptType
}

// TxInput is one spend within a transaction.
type TxInput struct {
	PrevTxid  [32]byte // natural (display) order
	PrevVout  uint32
	ScriptSig []byte
	Sequence  uint32
	Prevout   PrevoutView
}

// TxOutput is one created output.
type TxOutput struct {
	Value        uint64
	ScriptPubKey []byte
}

// WitnessStack is the ordered data pushes carried for one input in the
// witness section of a segwit transaction.
type WitnessStack [][]byte

// Tx is a single transaction. Witnesses, if present, is parallel to
// Inputs (same length, one stack per input; an empty stack for an input
// means that input carries no witness data). A Witnesses slice that is
// nil, or whose every stack is empty, marks a legacy (non-segwit) tx.
type Tx struct {
	Version   int32
	Inputs    []TxInput
	Outputs   []TxOutput
	Witnesses []WitnessStack
	Locktime  uint32
}

// IsSegwit reports whether tx carries any non-empty witness stack and
// therefore must be serialized in full (marker/flag) form.
func (tx *Tx) IsSegwit() bool {
	for _, w := range tx.Witnesses {
		if len(w) > 0 {
			return true
		}
	}
	return false
}

// BlockHeader is the fixed 80-byte block header.
type BlockHeader struct {
	Version       uint32
	PrevBlockHash [32]byte // natural order
	MerkleRoot    [32]byte // natural order
	Timestamp     uint32
	Bits          uint32
	Nonce         uint32
}

// Block is a header plus its ordered transactions, coinbase first.
type Block struct {
	Header BlockHeader
	Txs    []*Tx
}
