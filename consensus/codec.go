// Package consensus implements the transaction- and block-level rules of
// the block-assembly engine: deterministic serialization, the script
// interpreter, signature-hash construction, transaction validation,
// merkle roots, and proof-of-work checking.
package consensus

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/crypto/ripemd160"
)

// LE returns the k-byte little-endian encoding of n. It panics if n does
// not fit in k bytes, which would indicate a programming error upstream
// (EncodingOverflow in spec terms) rather than a malformed transaction.
func LE(n uint64, k int) []byte {
	out := make([]byte, k)
	for i := 0; i < k; i++ {
		out[i] = byte(n >> (8 * uint(i)))
	}
	if k < 8 && n>>(8*uint(k)) != 0 {
		panic("consensus: value does not fit in the requested width")
	}
	return out
}

// AppendLE appends the k-byte little-endian encoding of n to dst.
func AppendLE(dst []byte, n uint64, k int) []byte {
	return append(dst, LE(n, k)...)
}

// CompactSize encodes n using the 1/3/5/9-byte variable-length scheme.
func CompactSize(n uint64) []byte {
	switch {
	case n < 0xfd:
		return []byte{byte(n)}
	case n <= 0xffff:
		out := make([]byte, 3)
		out[0] = 0xfd
		binary.LittleEndian.PutUint16(out[1:], uint16(n))
		return out
	case n <= 0xffffffff:
		out := make([]byte, 5)
		out[0] = 0xfe
		binary.LittleEndian.PutUint32(out[1:], uint32(n))
		return out
	default:
		out := make([]byte, 9)
		out[0] = 0xff
		binary.LittleEndian.PutUint64(out[1:], n)
		return out
	}
}

// AppendCompactSize appends the CompactSize encoding of n to dst.
func AppendCompactSize(dst []byte, n uint64) []byte {
	return append(dst, CompactSize(n)...)
}

// Sha256 returns the single SHA-256 digest of b.
func Sha256(b []byte) [32]byte {
	return sha256.Sum256(b)
}

// Hash256 returns SHA-256(SHA-256(b)), the double hash used for txids,
// block hashes, and sighash digests throughout this package.
func Hash256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

// Hash160 returns RIPEMD-160(SHA-256(b)), used for P2PKH/P2WPKH/P2SH
// program hashes.
func Hash160(b []byte) [20]byte {
	first := sha256.Sum256(b)
	h := ripemd160.New()
	_, _ = h.Write(first[:])
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Reverse returns a new slice holding the bytewise reversal of b.
func Reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// Reverse32 returns the bytewise reversal of a 32-byte array.
func Reverse32(b [32]byte) [32]byte {
	var out [32]byte
	for i := 0; i < 32; i++ {
		out[31-i] = b[i]
	}
	return out
}
