package classifier

import "solana-swap-classifier/internal/domain"

// scoreConfidence is a pure function of the swapper-identification method.
// No other signal feeds the score; it exists to let downstream consumers
// weight alert trust.
func scoreConfidence(method domain.IdentificationMethod) int {
	switch method {
	case domain.IdentifyFeePayer:
		return 100
	case domain.IdentifySigner:
		return 90
	case domain.IdentifyOwnerAnalysis:
		return 80
	default:
		return 50
	}
}
