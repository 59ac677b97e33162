package consensus

import (
	"bytes"
	"encoding/binary"
	"math/big"

	"blockasm.dev/engine/crypto"
)

// Opcodes this interpreter supports. Anything else is ScriptFailure.
const (
	opPushdata1  = 0x4c
	opPushdata2  = 0x4d
	opPushdata4  = 0x4e
	op1Negate    = 0x4f
	op1          = 0x51
	op16         = 0x60
	opDup        = 0x76
	opEqual      = 0x87
	opEqualVerify = 0x88
	opHash160    = 0xa9
	opCheckSig   = 0xac
)

// verifyContext carries the per-input state checkSig needs to build the
// correct sighash digest: which input is being verified, whether it is
// a segwit spend (selects legacy vs BIP-143 preimage), the spent
// amount (BIP-143 only), and the scriptCode substituted into that
// preimage.
type verifyContext struct {
	tx         *Tx
	inputIndex int
	segwit     bool
	amount     uint64
	scriptCode []byte
	provider   crypto.Provider
}

func stackTrue(top []byte) bool {
	if len(top) == 0 {
		return false
	}
	for _, b := range top {
		if b != 0 {
			return true
		}
	}
	return false
}

func pop(stack *[][]byte) []byte {
	n := len(*stack)
	top := (*stack)[n-1]
	*stack = (*stack)[:n-1]
	return top
}

// execScript runs script over stack, applying its opcodes in order.
// scriptSig and scriptPubKey (or witness equivalents) are both run
// through this same function; only the opcode set they are expected to
// use differs by convention, not by what the interpreter accepts.
func execScript(stack *[][]byte, script []byte, vctx *verifyContext) error {
	i := 0
	for i < len(script) {
		op := script[i]
		i++
		switch {
		case op == 0x00:
			*stack = append(*stack, []byte{})

		case op >= 0x01 && op <= 0x4b:
			n := int(op)
			if i+n > len(script) {
				return txerr(ScriptFailure, "push opcode runs past end of script")
			}
			*stack = append(*stack, append([]byte(nil), script[i:i+n]...))
			i += n

		case op == opPushdata1:
			if i+1 > len(script) {
				return txerr(ScriptFailure, "OP_PUSHDATA1 missing length byte")
			}
			n := int(script[i])
			i++
			if i+n > len(script) {
				return txerr(ScriptFailure, "OP_PUSHDATA1 runs past end of script")
			}
			*stack = append(*stack, append([]byte(nil), script[i:i+n]...))
			i += n

		case op == opPushdata2:
			if i+2 > len(script) {
				return txerr(ScriptFailure, "OP_PUSHDATA2 missing length bytes")
			}
			n := int(binary.LittleEndian.Uint16(script[i : i+2]))
			i += 2
			if i+n > len(script) {
				return txerr(ScriptFailure, "OP_PUSHDATA2 runs past end of script")
			}
			*stack = append(*stack, append([]byte(nil), script[i:i+n]...))
			i += n

		case op == opPushdata4:
			if i+4 > len(script) {
				return txerr(ScriptFailure, "OP_PUSHDATA4 missing length bytes")
			}
			n := int(binary.LittleEndian.Uint32(script[i : i+4]))
			i += 4
			if i+n > len(script) {
				return txerr(ScriptFailure, "OP_PUSHDATA4 runs past end of script")
			}
			*stack = append(*stack, append([]byte(nil), script[i:i+n]...))
			i += n

		case op == op1Negate:
			*stack = append(*stack, []byte{0x81})

		case op >= op1 && op <= op16:
			*stack = append(*stack, []byte{byte(op - (op1 - 1))})

		case op == opDup:
			if len(*stack) < 1 {
				return txerr(ScriptFailure, "OP_DUP on empty stack")
			}
			top := (*stack)[len(*stack)-1]
			*stack = append(*stack, append([]byte(nil), top...))

		case op == opHash160:
			if len(*stack) < 1 {
				return txerr(ScriptFailure, "OP_HASH160 on empty stack")
			}
			top := pop(stack)
			h := Hash160(top)
			*stack = append(*stack, h[:])

		case op == opEqual:
			if len(*stack) < 2 {
				return txerr(ScriptFailure, "OP_EQUAL needs two items")
			}
			b := pop(stack)
			a := pop(stack)
			if bytes.Equal(a, b) {
				*stack = append(*stack, []byte{1})
			} else {
				*stack = append(*stack, []byte{})
			}

		case op == opEqualVerify:
			if len(*stack) < 2 {
				return txerr(ScriptFailure, "OP_EQUALVERIFY needs two items")
			}
			b := pop(stack)
			a := pop(stack)
			if !bytes.Equal(a, b) {
				return txerr(ScriptFailure, "OP_EQUALVERIFY failed")
			}

		case op == opCheckSig:
			if len(*stack) < 2 {
				return txerr(ScriptFailure, "OP_CHECKSIG needs signature and pubkey")
			}
			pubkey := pop(stack)
			sig := pop(stack)
			ok, err := checkSig(sig, pubkey, vctx)
			if err != nil {
				return err
			}
			if ok {
				*stack = append(*stack, []byte{1})
			} else {
				*stack = append(*stack, []byte{})
			}

		default:
			return txerr(ScriptFailure, "unsupported opcode")
		}
	}
	return nil
}

func finalCheck(stack [][]byte) error {
	if len(stack) == 0 {
		return txerr(ScriptFailure, "script left an empty stack")
	}
	if !stackTrue(stack[len(stack)-1]) {
		return txerr(ScriptFailure, "final stack top is false")
	}
	return nil
}

// secp256k1HalfOrder is N/2, used to reject non-canonical high-S
// signatures per BIP-62 before handing the signature to the curve
// library.
var secp256k1HalfOrder = func() *big.Int {
	n, ok := new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)
	if !ok {
		panic("consensus: bad secp256k1 order constant")
	}
	return n.Rsh(n, 1)
}()

// derSValue extracts the raw big-endian S integer from a DER-encoded
// ECDSA signature (SEQUENCE of two INTEGERs), for the sole purpose of
// the low-S policy check. It does not validate the encoding beyond
// what that extraction requires; full DER validity is left to the
// provider's own parser.
func derSValue(der []byte) ([]byte, error) {
	if len(der) < 8 || der[0] != 0x30 {
		return nil, txerr(ScriptFailure, "signature is not a DER sequence")
	}
	seqLen := int(der[1])
	if seqLen < 0 || 2+seqLen > len(der) {
		return nil, txerr(ScriptFailure, "signature has bad DER length")
	}
	off := 2
	if off >= len(der) || der[off] != 0x02 {
		return nil, txerr(ScriptFailure, "signature missing r integer")
	}
	off++
	if off >= len(der) {
		return nil, txerr(ScriptFailure, "signature truncated after r tag")
	}
	rLen := int(der[off])
	off++
	off += rLen
	if off >= len(der) || der[off] != 0x02 {
		return nil, txerr(ScriptFailure, "signature missing s integer")
	}
	off++
	if off >= len(der) {
		return nil, txerr(ScriptFailure, "signature truncated after s tag")
	}
	sLen := int(der[off])
	off++
	if off+sLen > len(der) {
		return nil, txerr(ScriptFailure, "signature truncated s value")
	}
	return der[off : off+sLen], nil
}

// checkSig strips the trailing sighash byte, rejects anything but
// SIGHASH_ALL and non-canonical high-S signatures, builds the correct
// digest for the input's script context, and delegates the curve math
// to vctx.provider.
func checkSig(sigWithFlag, pubkey []byte, vctx *verifyContext) (bool, error) {
	if len(sigWithFlag) == 0 {
		return false, nil
	}
	flag := sigWithFlag[len(sigWithFlag)-1]
	if flag != SighashAll {
		return false, txerr(ScriptFailure, "unsupported sighash flag")
	}
	derSig := sigWithFlag[:len(sigWithFlag)-1]

	sBytes, err := derSValue(derSig)
	if err != nil {
		return false, nil
	}
	if new(big.Int).SetBytes(sBytes).Cmp(secp256k1HalfOrder) > 0 {
		return false, nil
	}

	var digest [32]byte
	if vctx.segwit {
		digest, err = BIP143SighashDigest(vctx.tx, vctx.inputIndex, vctx.amount, vctx.scriptCode, SighashAll)
	} else {
		digest, err = LegacySighashDigest(vctx.tx, vctx.inputIndex, vctx.scriptCode, SighashAll)
	}
	if err != nil {
		return false, err
	}
	return vctx.provider.VerifyECDSA(pubkey, derSig, digest)
}

func p2pkhScriptCode(keyhash [20]byte) []byte {
	out := make([]byte, 0, 25)
	out = append(out, opDup, opHash160, 0x14)
	out = append(out, keyhash[:]...)
	out = append(out, opEqualVerify, opCheckSig)
	return out
}

func p2wpkhProgram(scriptPubKey []byte) ([20]byte, error) {
	if len(scriptPubKey) != 22 || scriptPubKey[0] != 0x00 || scriptPubKey[1] != 0x14 {
		return [20]byte{}, txerr(ScriptFailure, "not a well-formed p2wpkh program")
	}
	var h [20]byte
	copy(h[:], scriptPubKey[2:22])
	return h, nil
}

func p2shProgram(scriptPubKey []byte) ([20]byte, error) {
	if len(scriptPubKey) != 23 || scriptPubKey[0] != opHash160 || scriptPubKey[1] != 0x14 || scriptPubKey[22] != opEqual {
		return [20]byte{}, txerr(ScriptFailure, "not a well-formed p2sh program")
	}
	var h [20]byte
	copy(h[:], scriptPubKey[2:22])
	return h, nil
}

func p2wshProgram(scriptPubKey []byte) ([32]byte, error) {
	if len(scriptPubKey) != 34 || scriptPubKey[0] != 0x00 || scriptPubKey[1] != 0x20 {
		return [32]byte{}, txerr(ScriptFailure, "not a well-formed p2wsh program")
	}
	var h [32]byte
	copy(h[:], scriptPubKey[2:34])
	return h, nil
}

func witnessStackFor(tx *Tx, i int) WitnessStack {
	if i >= len(tx.Witnesses) {
		return nil
	}
	return tx.Witnesses[i]
}

func execP2PKH(tx *Tx, i int, provider crypto.Provider) error {
	in := tx.Inputs[i]
	vctx := &verifyContext{tx: tx, inputIndex: i, segwit: false, scriptCode: in.Prevout.ScriptPubKey, provider: provider}
	var stack [][]byte
	if err := execScript(&stack, in.ScriptSig, vctx); err != nil {
		return err
	}
	if err := execScript(&stack, in.Prevout.ScriptPubKey, vctx); err != nil {
		return err
	}
	return finalCheck(stack)
}

func execP2WPKH(tx *Tx, i int, provider crypto.Provider) error {
	in := tx.Inputs[i]
	if len(in.ScriptSig) != 0 {
		return txerr(ScriptFailure, "p2wpkh: scriptSig must be empty")
	}
	witness := witnessStackFor(tx, i)
	if len(witness) != 2 {
		return txerr(ScriptFailure, "p2wpkh: witness must carry exactly a signature and a pubkey")
	}
	keyhash, err := p2wpkhProgram(in.Prevout.ScriptPubKey)
	if err != nil {
		return err
	}
	scriptCode := p2pkhScriptCode(keyhash)
	vctx := &verifyContext{tx: tx, inputIndex: i, segwit: true, amount: in.Prevout.Value, scriptCode: scriptCode, provider: provider}
	stack := append([][]byte(nil), witness...)
	if err := execScript(&stack, scriptCode, vctx); err != nil {
		return err
	}
	return finalCheck(stack)
}

func execP2SH(tx *Tx, i int, provider crypto.Provider) error {
	in := tx.Inputs[i]
	vctx := &verifyContext{tx: tx, inputIndex: i, segwit: false, provider: provider}
	var stack [][]byte
	if err := execScript(&stack, in.ScriptSig, vctx); err != nil {
		return err
	}
	if len(stack) == 0 {
		return txerr(ScriptFailure, "p2sh: scriptSig left no redeem script on the stack")
	}
	redeemScript := pop(&stack)
	computed := Hash160(redeemScript)
	expected, err := p2shProgram(in.Prevout.ScriptPubKey)
	if err != nil {
		return err
	}
	if computed != expected {
		return txerr(ScriptFailure, "p2sh: redeem script does not match scriptPubKey hash")
	}
	vctx.scriptCode = redeemScript
	if err := execScript(&stack, redeemScript, vctx); err != nil {
		return err
	}
	return finalCheck(stack)
}

func execP2WSH(tx *Tx, i int, provider crypto.Provider) error {
	in := tx.Inputs[i]
	if len(in.ScriptSig) != 0 {
		return txerr(ScriptFailure, "p2wsh: scriptSig must be empty")
	}
	witness := witnessStackFor(tx, i)
	if len(witness) == 0 {
		return txerr(ScriptFailure, "p2wsh: witness must carry at least the witness script")
	}
	witnessScript := witness[len(witness)-1]
	items := witness[:len(witness)-1]

	computed := Sha256(witnessScript)
	expected, err := p2wshProgram(in.Prevout.ScriptPubKey)
	if err != nil {
		return err
	}
	if computed != expected {
		return txerr(ScriptFailure, "p2wsh: witness script does not match scriptPubKey hash")
	}

	vctx := &verifyContext{tx: tx, inputIndex: i, segwit: true, amount: in.Prevout.Value, scriptCode: witnessScript, provider: provider}
	stack := append([][]byte(nil), items...)
	if err := execScript(&stack, witnessScript, vctx); err != nil {
		return err
	}
	return finalCheck(stack)
}

// ExecuteInput verifies input i of tx against the script type its
// prevout asserts. P2TR is not implemented (no Schnorr-capable
// dependency was available to ground one on) and is always rejected.
func ExecuteInput(tx *Tx, i int, provider crypto.Provider) error {
	in := tx.Inputs[i]
	switch in.Prevout.Type {
	case ScriptP2PKH:
		return execP2PKH(tx, i, provider)
	case ScriptP2WPKH:
		return execP2WPKH(tx, i, provider)
	case ScriptP2SH:
		return execP2SH(tx, i, provider)
	case ScriptP2WSH:
		return execP2WSH(tx, i, provider)
	default:
		return txerr(UnsupportedScriptType, string(in.Prevout.Type))
	}
}
