package classifier

import (
	"solana-swap-classifier/internal/coretoken"
	"solana-swap-classifier/internal/domain"
)

// noiseResult separates economic balance changes from rent-refund noise.
// Refunds are retained only for debug counts.
type noiseResult struct {
	economic    []domain.BalanceChange
	rentRefunds []domain.BalanceChange
}

// filterRentNoise strips small positive SOL credits from the swapper's
// changes when genuine economic activity exists elsewhere in the same
// transaction. A lone small SOL credit with no other activity is not noise.
// The filter is idempotent on its own output.
func filterRentNoise(changes []domain.BalanceChange, swapper string) noiseResult {
	hasOtherActivity := false
	for _, c := range changes {
		if c.Owner == swapper && c.RawDelta != 0 && !isSolMint(c.Mint) {
			hasOtherActivity = true
			break
		}
	}

	res := noiseResult{economic: make([]domain.BalanceChange, 0, len(changes))}
	for _, c := range changes {
		if hasOtherActivity && isRentRefund(c, swapper) {
			res.rentRefunds = append(res.rentRefunds, c)
			continue
		}
		res.economic = append(res.economic, c)
	}
	return res
}

// isSolMint reports native or wrapped SOL. Liquid-staking derivatives never
// carry rent refunds, so they are excluded here even though they merge into
// the logical SOL delta later.
func isSolMint(mint string) bool {
	return mint == coretoken.WSOL || mint == coretoken.NativeSOL
}

// isRentRefund reports whether a single change looks like a token-account
// rent refund: a small positive native/wrapped SOL credit to the swapper.
func isRentRefund(c domain.BalanceChange, swapper string) bool {
	if c.Owner != swapper {
		return false
	}
	if !isSolMint(c.Mint) {
		return false
	}
	if c.RawDelta <= 0 {
		return false
	}
	return c.Normalized() < RentRefundThresholdSOL
}
