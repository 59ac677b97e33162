package consensus

import "encoding/binary"

// reader is a cursor over a byte slice, grounded on the teacher's
// wire.go cursor: every read advances pos and reports a typed error on
// truncation instead of panicking.
type reader struct {
	b   []byte
	pos int
}

func newReader(b []byte) *reader { return &reader{b: b} }

func (r *reader) remaining() int { return len(r.b) - r.pos }

func (r *reader) readBytes(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, txerr(MalformedTransaction, "truncated input")
	}
	out := r.b[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

func (r *reader) readU32() (uint32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) readU64() (uint64, error) {
	b, err := r.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *reader) readCompactSize() (uint64, error) {
	tagb, err := r.readBytes(1)
	if err != nil {
		return 0, err
	}
	tag := tagb[0]
	switch {
	case tag < 0xfd:
		return uint64(tag), nil
	case tag == 0xfd:
		b, err := r.readBytes(2)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case tag == 0xfe:
		b, err := r.readBytes(4)
		if err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint32(b)), nil
	default:
		b, err := r.readBytes(8)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(b), nil
	}
}

// DecodeTx parses either the legacy or full wire form of a transaction,
// auto-detecting the segwit marker/flag. It returns the number of bytes
// consumed so callers can enforce canonical (no trailing garbage)
// encoding.
func DecodeTx(b []byte) (*Tx, int, error) {
	r := newReader(b)
	version, err := r.readU32()
	if err != nil {
		return nil, 0, err
	}

	segwit := false
	if r.remaining() >= 2 && r.b[r.pos] == 0x00 && r.b[r.pos+1] == 0x01 {
		segwit = true
		if _, err := r.readBytes(2); err != nil {
			return nil, 0, err
		}
	}

	inCount, err := r.readCompactSize()
	if err != nil {
		return nil, 0, err
	}
	inputs := make([]TxInput, 0, inCount)
	for i := uint64(0); i < inCount; i++ {
		txidBytes, err := r.readBytes(32)
		if err != nil {
			return nil, 0, err
		}
		var prevTxid [32]byte
		copy(prevTxid[:], Reverse(txidBytes))

		vout, err := r.readU32()
		if err != nil {
			return nil, 0, err
		}
		sigLen, err := r.readCompactSize()
		if err != nil {
			return nil, 0, err
		}
		sigBytes, err := r.readBytes(int(sigLen))
		if err != nil {
			return nil, 0, err
		}
		seq, err := r.readU32()
		if err != nil {
			return nil, 0, err
		}
		inputs = append(inputs, TxInput{
			PrevTxid:  prevTxid,
			PrevVout:  vout,
			ScriptSig: append([]byte(nil), sigBytes...),
			Sequence:  seq,
		})
	}

	outCount, err := r.readCompactSize()
	if err != nil {
		return nil, 0, err
	}
	outputs := make([]TxOutput, 0, outCount)
	for i := uint64(0); i < outCount; i++ {
		value, err := r.readU64()
		if err != nil {
			return nil, 0, err
		}
		spkLen, err := r.readCompactSize()
		if err != nil {
			return nil, 0, err
		}
		spk, err := r.readBytes(int(spkLen))
		if err != nil {
			return nil, 0, err
		}
		outputs = append(outputs, TxOutput{
			Value:        value,
			ScriptPubKey: append([]byte(nil), spk...),
		})
	}

	var witnesses []WitnessStack
	if segwit {
		witnesses = make([]WitnessStack, len(inputs))
		for i := range inputs {
			count, err := r.readCompactSize()
			if err != nil {
				return nil, 0, err
			}
			stack := make(WitnessStack, 0, count)
			for j := uint64(0); j < count; j++ {
				itemLen, err := r.readCompactSize()
				if err != nil {
					return nil, 0, err
				}
				item, err := r.readBytes(int(itemLen))
				if err != nil {
					return nil, 0, err
				}
				stack = append(stack, append([]byte(nil), item...))
			}
			witnesses[i] = stack
		}
	}

	locktime, err := r.readU32()
	if err != nil {
		return nil, 0, err
	}

	tx := &Tx{
		Version:   int32(version),
		Inputs:    inputs,
		Outputs:   outputs,
		Witnesses: witnesses,
		Locktime:  locktime,
	}
	return tx, r.pos, nil
}
