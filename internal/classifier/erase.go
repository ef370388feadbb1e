package classifier

import (
	"solana-swap-classifier/internal/domain"
)

// validateSwap applies the strict non-swap rejection rules to a quote/base
// pair on the standard (non-split) path. Rules are ordered and first match
// wins: a near-zero base makes the other signs unreliable, so it is checked
// before the airdrop and burn rules. Returns the erase reason, or "" when
// the pair is a genuine opposite-flow swap.
func validateSwap(quote, base *domain.AssetDelta) string {
	baseN := base.Normalized()
	if abs(baseN) < DustThreshold {
		return domain.EraseNoBaseDelta
	}

	quoteN := quote.Normalized()
	if quoteN >= 0 && baseN >= 0 {
		return domain.EraseAirdrop
	}
	if quoteN <= 0 && baseN <= 0 {
		return domain.EraseBurn
	}

	return ""
}

// resolveDirection derives the direction after validation has confirmed
// opposite flows.
func resolveDirection(quote, base *domain.AssetDelta) domain.Direction {
	if quote.Normalized() < 0 {
		return domain.DirectionBuy
	}
	return domain.DirectionSell
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
