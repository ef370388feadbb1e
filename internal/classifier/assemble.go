package classifier

import (
	"solana-swap-classifier/internal/domain"
	"solana-swap-classifier/internal/idhash"
)

// assembleSwap builds the terminal ParsedSwap record.
func assembleSwap(tx *Transaction, id identification, dir domain.Direction, quote, base *domain.AssetDelta, amounts normalizedAmounts) *domain.ParsedSwap {
	return &domain.ParsedSwap{
		Signature: tx.Signature,
		Timestamp: tx.Timestamp,
		Swapper:   id.swapper,
		Protocol:  tx.Protocol,

		Direction:   dir,
		QuoteMint:   quote.Mint,
		QuoteSymbol: quote.Symbol,
		BaseMint:    base.Mint,
		BaseSymbol:  base.Symbol,

		BaseAmount:        amounts.baseAmount,
		TotalWalletCost:   amounts.totalWalletCost,
		SwapInputAmount:   amounts.swapInputAmount,
		NetWalletReceived: amounts.netWalletReceived,
		SwapOutputAmount:  amounts.swapOutputAmount,
		Fees:              amounts.fees,

		IdentificationMethod: id.method,
		Confidence:           scoreConfidence(id.method),
	}
}

// assembleSplit builds two linked sub-records under one SplitSwapPair: a
// SELL of the outgoing asset and a BUY of the incoming asset, sharing
// signature, timestamp, and swapper. Neither side of a token-to-token pair
// is quote-denominated, so the quote-side amount fields stay absent rather
// than zero.
func assembleSplit(tx *Transaction, id identification, outgoing, incoming *domain.AssetDelta) *domain.SplitSwapPair {
	confidence := scoreConfidence(id.method)
	fees := domain.FeeBreakdown{
		NetworkFeeLamports:  tx.FeeLamports,
		PriorityFeeLamports: tx.PriorityFeeLamports,
		PlatformFeeLamports: tx.PlatformFeeLamports,
	}

	sell := &domain.ParsedSwap{
		Signature:            tx.Signature,
		Timestamp:            tx.Timestamp,
		Swapper:              id.swapper,
		Protocol:             tx.Protocol,
		Direction:            domain.DirectionSell,
		BaseMint:             outgoing.Mint,
		BaseSymbol:           outgoing.Symbol,
		BaseAmount:           outgoing.AbsNormalized(),
		Fees:                 fees,
		IdentificationMethod: id.method,
		Confidence:           confidence,
	}
	buy := &domain.ParsedSwap{
		Signature:            tx.Signature,
		Timestamp:            tx.Timestamp,
		Swapper:              id.swapper,
		Protocol:             tx.Protocol,
		Direction:            domain.DirectionBuy,
		BaseMint:             incoming.Mint,
		BaseSymbol:           incoming.Symbol,
		BaseAmount:           incoming.AbsNormalized(),
		Fees:                 fees,
		IdentificationMethod: id.method,
		Confidence:           confidence,
	}

	return &domain.SplitSwapPair{
		PairID:    idhash.ComputePairID(tx.Signature, outgoing.Mint, incoming.Mint),
		Signature: tx.Signature,
		Timestamp: tx.Timestamp,
		Swapper:   id.swapper,
		Protocol:  tx.Protocol,
		Sell:      sell,
		Buy:       buy,
	}
}

// assembleErase builds the rejection record with its debug snapshot.
func assembleErase(tx *Transaction, id identification, reason, detail string, deltas []domain.AssetDelta, rentStripped int) *domain.EraseResult {
	return &domain.EraseResult{
		Signature: tx.Signature,
		Timestamp: tx.Timestamp,
		Swapper:   id.swapper,
		Protocol:  tx.Protocol,
		Reason:    reason,
		Debug: domain.DebugInfo{
			Deltas:               deltas,
			RentRefundsStripped:  rentStripped,
			IdentificationMethod: id.method,
			Detail:               detail,
		},
		IdentificationMethod: id.method,
		Confidence:           scoreConfidence(id.method),
	}
}
