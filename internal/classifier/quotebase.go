package classifier

import (
	"solana-swap-classifier/internal/coretoken"
	"solana-swap-classifier/internal/domain"
)

// quoteBaseResult assigns economic roles to the two surviving assets, or
// routes the pair to the split protocol, or rejects with a specific reason.
// Exactly one of (quote+base), (outgoing+incoming with splitRequired), or
// eraseReason is meaningful. Direction may be empty with quote+base set when
// the sign pattern is ambiguous; the erase validator then produces the
// precise reason.
type quoteBaseResult struct {
	quote *domain.AssetDelta
	base  *domain.AssetDelta

	direction domain.Direction

	splitRequired bool
	outgoing      *domain.AssetDelta // sold side of a split
	incoming      *domain.AssetDelta // bought side of a split

	eraseReason string
}

// detectQuoteBase runs the ordered structural gates and role assignment.
func detectQuoteBase(deltas []domain.AssetDelta) quoteBaseResult {
	active := make([]domain.AssetDelta, 0, 2)
	for _, d := range deltas {
		if !d.IsIntermediate {
			active = append(active, d)
		}
	}

	switch len(active) {
	case 2:
		return detectPair(active[0], active[1])
	case 1:
		// A single surviving asset still reaches the erase validator paired
		// with the (possibly absent) SOL delta, so that airdrops and
		// dust-base transactions get their precise semantic reasons instead
		// of a generic count failure.
		return pairWithZeroQuote(active[0], deltas)
	default:
		return quoteBaseResult{eraseReason: domain.EraseInvalidAssetCount}
	}
}

// detectPair applies the sign, mint, and dust gates to exactly two active
// assets, then assigns roles.
func detectPair(a, b domain.AssetDelta) quoteBaseResult {
	na, nb := a.Normalized(), b.Normalized()

	// Opposite-sign deltas.
	if na*nb >= 0 {
		return quoteBaseResult{eraseReason: domain.EraseInvalidDeltaSigns}
	}

	// Distinct mints.
	if a.Mint == b.Mint {
		return quoteBaseResult{eraseReason: domain.EraseSameToken}
	}

	// Both above dust.
	if a.AbsNormalized() < DustThreshold || b.AbsNormalized() < DustThreshold {
		return quoteBaseResult{eraseReason: domain.EraseDustAmounts}
	}

	aCore, bCore := coretoken.IsCore(a.Mint), coretoken.IsCore(b.Mint)

	// Neither core: token-to-token pair, split protocol.
	if !aCore && !bCore {
		res := quoteBaseResult{splitRequired: true}
		if na < 0 {
			res.outgoing, res.incoming = &a, &b
		} else {
			res.outgoing, res.incoming = &b, &a
		}
		return res
	}

	// At least one core: core side is quote.
	var quote, base domain.AssetDelta
	switch {
	case aCore && bCore:
		if coretoken.PreferAsQuote(a.Mint, b.Mint) == a.Mint {
			quote, base = a, b
		} else {
			quote, base = b, a
		}
	case aCore:
		quote, base = a, b
	default:
		quote, base = b, a
	}

	res := quoteBaseResult{quote: &quote, base: &base}
	qn, bn := quote.Normalized(), base.Normalized()
	switch {
	case qn < 0 && bn > 0:
		res.direction = domain.DirectionBuy
	case qn > 0 && bn < 0:
		res.direction = domain.DirectionSell
	}
	// Any other sign pattern leaves direction empty for the erase validator.
	return res
}

// pairWithZeroQuote handles the one-active-asset case by pairing it against
// the logical SOL delta (zero when absent). Direction is deliberately left
// empty; the erase validator decides between no_base_delta, airdrop, and
// burn.
func pairWithZeroQuote(active domain.AssetDelta, all []domain.AssetDelta) quoteBaseResult {
	sol, _ := findSOL(all)
	if sol.Mint == "" {
		sol = domain.AssetDelta{Mint: coretoken.WSOL, Decimals: coretoken.SOLDecimals, IsIntermediate: true}
	}

	if coretoken.IsCore(active.Mint) {
		// The survivor is the quote side; the base never moved. Use an
		// intermediate non-core asset as the base reference when one exists.
		base := firstInactiveNonCore(all)
		return quoteBaseResult{quote: &active, base: &base}
	}

	return quoteBaseResult{quote: &sol, base: &active}
}

// firstInactiveNonCore returns a zero-delta non-core asset from the
// snapshot, or a placeholder when none exists.
func firstInactiveNonCore(deltas []domain.AssetDelta) domain.AssetDelta {
	for _, d := range deltas {
		if d.IsIntermediate && !coretoken.IsCore(d.Mint) {
			return d
		}
	}
	return domain.AssetDelta{}
}
