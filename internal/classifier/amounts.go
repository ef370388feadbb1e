package classifier

import (
	"solana-swap-classifier/internal/coretoken"
	"solana-swap-classifier/internal/domain"
)

// normalizedAmounts is the direction-dependent output of the amount
// normalizer. Only the fields matching the direction are set.
type normalizedAmounts struct {
	baseAmount float64

	// BUY.
	totalWalletCost *float64
	swapInputAmount *float64

	// SELL.
	netWalletReceived *float64
	swapOutputAmount  *float64

	fees domain.FeeBreakdown
}

// normalizeAmounts converts raw deltas to decimal-normalized human units and
// computes wallet-level cost or proceeds plus the fee breakdown. Fees are
// informational: they adjust the wallet totals but never feed back into the
// base amount. Any internal failure degrades to a fallback computation from
// absolute deltas; the pipeline stays total once a swap is structurally
// confirmed.
func normalizeAmounts(tx *Transaction, dir domain.Direction, quote, base *domain.AssetDelta, solPriceUSD float64) (out normalizedAmounts) {
	defer func() {
		if r := recover(); r != nil {
			out = fallbackAmounts(dir, quote, base)
		}
	}()

	fees := convertFees(tx, quote.Mint, solPriceUSD)
	quoteAbs := quote.AbsNormalized()

	out = normalizedAmounts{
		baseAmount: base.AbsNormalized(),
		fees:       fees,
	}

	switch dir {
	case domain.DirectionBuy:
		cost := quoteAbs + fees.TotalFeeInQuote
		out.totalWalletCost = &cost
		input := quoteAbs
		out.swapInputAmount = &input
	case domain.DirectionSell:
		received := quoteAbs - fees.TotalFeeInQuote
		out.netWalletReceived = &received
		output := quoteAbs
		out.swapOutputAmount = &output
	}
	return out
}

// convertFees sums the network, priority, and optional platform fees, each
// converted into quote-asset terms: identity when the quote is SOL, a fixed
// approximate rate for major stablecoins, and a low-confidence 1:1 fallback
// otherwise.
func convertFees(tx *Transaction, quoteMint string, solPriceUSD float64) domain.FeeBreakdown {
	fees := domain.FeeBreakdown{
		NetworkFeeLamports:  tx.FeeLamports,
		PriorityFeeLamports: tx.PriorityFeeLamports,
		PlatformFeeLamports: tx.PlatformFeeLamports,
	}

	totalLamports := tx.FeeLamports + tx.PriorityFeeLamports + tx.PlatformFeeLamports
	feeSOL := float64(totalLamports) / LamportsPerSOL

	switch {
	case coretoken.IsSOLEquivalent(quoteMint):
		fees.TotalFeeInQuote = feeSOL
	case coretoken.IsStablecoin(quoteMint):
		if solPriceUSD <= 0 {
			solPriceUSD = DefaultSOLPriceUSD
		}
		fees.TotalFeeInQuote = feeSOL * solPriceUSD
	default:
		fees.TotalFeeInQuote = feeSOL
		fees.LowConfidence = true
	}
	return fees
}

// fallbackAmounts is the degraded computation used when normalization hits
// an unexpected internal failure: absolute deltas only, no fee adjustment.
func fallbackAmounts(dir domain.Direction, quote, base *domain.AssetDelta) normalizedAmounts {
	out := normalizedAmounts{baseAmount: base.AbsNormalized()}
	quoteAbs := quote.AbsNormalized()
	switch dir {
	case domain.DirectionBuy:
		out.totalWalletCost = &quoteAbs
	case domain.DirectionSell:
		out.netWalletReceived = &quoteAbs
	}
	return out
}
