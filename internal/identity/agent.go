package identity

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/ethereum/go-ethereum/crypto"
)

// agentAddressPrefix marks addresses minted by DeriveAgentAddress.
const agentAddressPrefix = "agent1q"

// DeriveAgentAddress derives the agent's wire address from its seed phrase.
// The seed is hashed into a secp256k1 key and the address is taken from the
// compressed public key, so the same seed always yields the same address.
func DeriveAgentAddress(seed string) string {
	digest := sha256.Sum256([]byte(seed))
	key, err := crypto.ToECDSA(digest[:])
	if err != nil {
		// The digest is not a valid secp256k1 scalar; derive from it directly.
		return agentAddressPrefix + hex.EncodeToString(digest[:20])
	}
	sum := sha256.Sum256(crypto.CompressPubkey(&key.PublicKey))
	return agentAddressPrefix + hex.EncodeToString(sum[:20])
}
