package classifier

import (
	"solana-swap-classifier/internal/domain"
)

// Transaction is the provider-normalized input to the pipeline. Both
// provider adapters converge on this shape; the pipeline never sees a
// provider-native record.
type Transaction struct {
	Signature string
	Timestamp int64 // unix ms
	Protocol  string

	FeePayer string
	// Signers lists transaction signers in order; Signers[0] is the primary
	// signer.
	Signers []string

	FeeLamports         int64
	PriorityFeeLamports int64
	PlatformFeeLamports int64

	// Changes holds every observed balance change, all owners included.
	Changes []domain.BalanceChange

	// Action optionally carries an authoritative in/out pair from a
	// provider swap-action record. It is an accelerant for incomplete
	// balance data, never an authority: it is consulted only when exactly
	// one asset survives aggregation.
	Action *SwapAction

	// WrappedSolSeen marks that the transaction moved wrapped SOL through
	// transfer legs; WrappedSolVolumeLamports is the gross volume of those
	// legs touching the swapper. Used by the pattern variant when native
	// SOL movement is insignificant.
	WrappedSolSeen           bool
	WrappedSolVolumeLamports int64

	// Symbols is best-effort mint-to-symbol decoration. Never a
	// classification input.
	Symbols map[string]string
}

// SwapAction is an explicit in/out pair extracted from a provider action
// record.
type SwapAction struct {
	InMint      string
	InRawAmount int64
	InDecimals  uint8

	OutMint      string
	OutRawAmount int64
	OutDecimals  uint8
}

// symbolFor returns the decorated symbol for a mint, if known.
func (tx *Transaction) symbolFor(mint string) string {
	if tx.Symbols == nil {
		return ""
	}
	return tx.Symbols[mint]
}
