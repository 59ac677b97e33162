package crypto

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Secp256k1Provider is the production Provider: DER-parses the
// signature and verifies it against pubkey over digest using the
// secp256k1 curve. A malformed signature or pubkey is reported as a
// failed verification (false, nil), not an error — script execution
// treats both identically (a false OP_CHECKSIG result), so there is
// nothing for a caller to do differently with the distinction.
type Secp256k1Provider struct{}

func (Secp256k1Provider) VerifyECDSA(pubkey []byte, derSig []byte, digest [32]byte) (bool, error) {
	pk, err := secp256k1.ParsePubKey(pubkey)
	if err != nil {
		return false, nil
	}
	sig, err := ecdsa.ParseDERSignature(derSig)
	if err != nil {
		return false, nil
	}
	return sig.Verify(digest[:], pk), nil
}
