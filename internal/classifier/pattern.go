package classifier

import (
	"fmt"
	"time"

	"solana-swap-classifier/internal/coretoken"
	"solana-swap-classifier/internal/domain"
)

// ClassifyDeltas is the self-contained variant for providers whose records
// are already delta-oriented. Classification is driven by two signals: the
// non-SOL token count and whether SOL movement is significant (above a fixed
// lamport floor). The variant computes BUY/SELL purely from core-vs-non-core
// flow direction, suppresses core-to-core pairs before emission in every
// branch, and applies the minimum-notional filter last.
func (p *Pipeline) ClassifyDeltas(tx *Transaction) (c *domain.Classification) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			c = p.recovered(tx, r)
		}
		c.ProcessingTime = time.Since(start)
		p.record(c)
	}()

	if tx == nil || tx.Signature == "" {
		return p.eraseOut(tx, identification{method: domain.IdentifyUnknown},
			domain.EraseMissingFields, "missing signature", nil, 0)
	}

	stageStart := time.Now()
	id, ok := identifySwapper(tx, p.filter)
	p.observe(StageSwapper, stageStart)
	if !ok {
		return p.eraseOut(tx, id, domain.EraseSwapperUnidentified, "", nil, 0)
	}

	stageStart = time.Now()
	noise := filterRentNoise(tx.Changes, id.swapper)
	p.observe(StageNoise, stageStart)

	stageStart = time.Now()
	deltas := collectDeltas(noise.economic, id.swapper, tx)
	p.observe(StageDeltas, stageStart)
	rentStripped := len(noise.rentRefunds)

	sol, _ := findSOL(deltas)
	solSignificant := absI64(sol.RawDelta) >= SignificantSolLamports

	var tokens []domain.AssetDelta
	for _, d := range deltas {
		if d.Mint != coretoken.WSOL && !d.IsIntermediate {
			tokens = append(tokens, d)
		}
	}

	switch {
	case len(tokens) == 0 && !solSignificant:
		return p.eraseOut(tx, id, domain.EraseZeroMovement, "", deltas, rentStripped)

	case len(tokens) == 0:
		return p.eraseOut(tx, id, domain.EraseSolOnly, "", deltas, rentStripped)

	case len(tokens) == 1 && solSignificant:
		return p.emitAgainstSol(tx, id, tokens[0], sol, deltas, rentStripped)

	case len(tokens) == 1:
		// Insignificant native SOL: the quote side may have moved as
		// wrapped-SOL transfer legs instead.
		if !tx.WrappedSolSeen || tx.WrappedSolVolumeLamports <= 0 {
			return p.eraseOut(tx, id, domain.EraseNoWrappedSol, "", deltas, rentStripped)
		}
		quote := syntheticSolQuote(tokens[0], tx.WrappedSolVolumeLamports)
		return p.emitAgainstSol(tx, id, tokens[0], quote, deltas, rentStripped)

	default:
		return p.classifyMultiToken(tx, id, tokens, sol, solSignificant, deltas, rentStripped)
	}
}

// emitAgainstSol emits a standard swap of one token against the logical SOL
// delta, running the suppression check and notional floor first.
func (p *Pipeline) emitAgainstSol(tx *Transaction, id identification, token, sol domain.AssetDelta, deltas []domain.AssetDelta, rentStripped int) *domain.Classification {
	if coretoken.IsCore(token.Mint) {
		return p.eraseOut(tx, id, domain.EraseCoreToCore,
			fmt.Sprintf("%s <-> %s", sol.Mint, token.Mint), deltas, rentStripped)
	}

	tokenN := token.Normalized()
	solN := sol.Normalized()
	var dir domain.Direction
	switch {
	case tokenN > 0 && solN < 0:
		dir = domain.DirectionBuy
	case tokenN < 0 && solN > 0:
		dir = domain.DirectionSell
	default:
		return p.eraseOut(tx, id, domain.EraseInvalidDeltaSigns, "", deltas, rentStripped)
	}

	if reason := p.belowNotionalFloor(&sol); reason != "" {
		return p.eraseOut(tx, id, reason, "", deltas, rentStripped)
	}

	solPrice, _ := p.price()
	amounts := normalizeAmounts(tx, dir, &sol, &token, solPrice)
	return &domain.Classification{Swap: assembleSwap(tx, id, dir, &sol, &token, amounts)}
}

// classifyMultiToken handles the two-or-more-token patterns.
func (p *Pipeline) classifyMultiToken(tx *Transaction, id identification, tokens []domain.AssetDelta, sol domain.AssetDelta, solSignificant bool, deltas []domain.AssetDelta, rentStripped int) *domain.Classification {
	var largestNeg, largestPos *domain.AssetDelta
	for i := range tokens {
		n := tokens[i].Normalized()
		switch {
		case n < 0 && (largestNeg == nil || -n > largestNeg.AbsNormalized()):
			largestNeg = &tokens[i]
		case n > 0 && (largestPos == nil || n > largestPos.AbsNormalized()):
			largestPos = &tokens[i]
		}
	}

	// Exactly one signed direction plus SOL: the dominant token trades
	// against SOL, the rest is routing residue.
	if largestNeg == nil || largestPos == nil {
		if !solSignificant {
			return p.eraseOut(tx, id, domain.EraseInvalidDeltaSigns, "", deltas, rentStripped)
		}
		dominant := largestPos
		if dominant == nil {
			dominant = largestNeg
		}
		return p.emitAgainstSol(tx, id, *dominant, sol, deltas, rentStripped)
	}

	// Tokens span both signs.
	outCore := coretoken.IsCore(largestNeg.Mint)
	inCore := coretoken.IsCore(largestPos.Mint)

	switch {
	case outCore && inCore:
		return p.eraseOut(tx, id, domain.EraseCoreToCore,
			fmt.Sprintf("%s <-> %s", largestNeg.Mint, largestPos.Mint), deltas, rentStripped)

	case outCore || inCore:
		// Core-vs-non-core standard swap; the core side is the quote.
		quote, base := largestPos, largestNeg
		dir := domain.DirectionSell
		if outCore {
			quote, base = largestNeg, largestPos
			dir = domain.DirectionBuy
		}
		if reason := p.belowNotionalFloor(quote); reason != "" {
			return p.eraseOut(tx, id, reason, "", deltas, rentStripped)
		}
		solPrice, _ := p.price()
		amounts := normalizeAmounts(tx, dir, quote, base, solPrice)
		return &domain.Classification{Swap: assembleSwap(tx, id, dir, quote, base, amounts)}

	default:
		return &domain.Classification{Split: assembleSplit(tx, id, largestNeg, largestPos)}
	}
}

// syntheticSolQuote builds the quote-side SOL delta from gross wrapped-SOL
// transfer volume, signed opposite to the token leg.
func syntheticSolQuote(token domain.AssetDelta, volumeLamports int64) domain.AssetDelta {
	raw := volumeLamports
	if token.Normalized() > 0 {
		raw = -raw
	}
	return domain.AssetDelta{
		Mint:     coretoken.WSOL,
		RawDelta: raw,
		Decimals: coretoken.SOLDecimals,
	}
}

func absI64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
