package consensus

import "math/big"

// PowCheck reports whether headerBytes satisfies proof-of-work against
// target: reverse(hash256(headerBytes)), read as a big-endian integer,
// must not exceed target.
func PowCheck(headerBytes []byte, target [32]byte) bool {
	h := Reverse32(Hash256(headerBytes))
	hi := new(big.Int).SetBytes(h[:])
	ti := new(big.Int).SetBytes(target[:])
	return hi.Cmp(ti) <= 0
}
