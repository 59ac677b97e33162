// Package crypto isolates the one cryptographic operation consensus
// delegates to a pluggable backend: ECDSA signature verification. All
// other primitives (hash256, hash160, sha256) are deterministic, pure,
// and need no backend seam, so they live directly in the consensus
// package.
package crypto

// Provider verifies an ECDSA signature over a precomputed digest. The
// signature is passed with its trailing sighash byte already stripped;
// callers are responsible for that and for any low-S policy check
// before reaching here.
type Provider interface {
	VerifyECDSA(pubkey []byte, derSig []byte, digest [32]byte) (bool, error)
}
