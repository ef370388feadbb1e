package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeRecordID computes a deterministic record_id using SHA256.
// Formula: SHA256(tx_signature|base_mint|direction)
// Returns hex-encoded hash (64 characters).
func ComputeRecordID(
	txSignature string,
	baseMint string,
	direction string,
) string {
	data := fmt.Sprintf("%s|%s|%s",
		txSignature,
		baseMint,
		direction,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
