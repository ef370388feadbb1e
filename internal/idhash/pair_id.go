package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputePairID computes a deterministic pair_id linking the two halves of a
// token-to-token split using SHA256.
// Formula: SHA256(tx_signature|out_mint|in_mint)
// Returns hex-encoded hash (64 characters).
func ComputePairID(
	txSignature string,
	outMint string,
	inMint string,
) string {
	data := fmt.Sprintf("%s|%s|%s",
		txSignature,
		outMint,
		inMint,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
