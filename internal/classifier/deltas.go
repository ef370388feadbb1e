package classifier

import (
	"math"
	"sort"

	"solana-swap-classifier/internal/coretoken"
	"solana-swap-classifier/internal/domain"
)

// collectDeltas aggregates the swapper's balance changes into per-mint net
// deltas. All SOL-equivalent mints merge into one logical SOL entry by
// summation before any threshold check; zero-net assets are flagged as
// intermediate.
func collectDeltas(changes []domain.BalanceChange, swapper string, tx *Transaction) []domain.AssetDelta {
	type acc struct {
		raw      int64
		decimals uint8
	}
	totals := make(map[string]*acc)
	var order []string

	for _, c := range changes {
		if c.Owner != swapper {
			continue
		}
		mint := coretoken.Canonical(c.Mint)
		a, ok := totals[mint]
		if !ok {
			decimals := c.Decimals
			if mint == coretoken.WSOL {
				decimals = coretoken.SOLDecimals
			}
			a = &acc{decimals: decimals}
			totals[mint] = a
			order = append(order, mint)
		}
		a.raw += c.RawDelta
	}

	deltas := make([]domain.AssetDelta, 0, len(order))
	for _, mint := range order {
		a := totals[mint]
		d := domain.AssetDelta{
			Mint:     mint,
			Symbol:   tx.symbolFor(mint),
			RawDelta: a.raw,
			Decimals: a.decimals,
		}
		d.IsIntermediate = math.Abs(d.Normalized()) < Epsilon
		deltas = append(deltas, d)
	}

	// Deterministic ordering: largest magnitude first, mint as tiebreaker.
	sort.SliceStable(deltas, func(i, j int) bool {
		mi, mj := deltas[i].AbsNormalized(), deltas[j].AbsNormalized()
		if mi != mj {
			return mi > mj
		}
		return deltas[i].Mint < deltas[j].Mint
	})

	return deltas
}

// applyEntryExitHeuristic handles 3+ hop routes that did not net to zero:
// the largest-magnitude negative delta is the true entry (spent) asset, the
// largest-magnitude positive delta is the true exit (received) asset, and
// every other active asset is reclassified as intermediate.
func applyEntryExitHeuristic(deltas []domain.AssetDelta) []domain.AssetDelta {
	if countActive(deltas) <= 2 {
		return deltas
	}

	entry, exit := -1, -1
	var entryMag, exitMag float64
	for i, d := range deltas {
		if d.IsIntermediate {
			continue
		}
		n := d.Normalized()
		switch {
		case n < 0 && -n > entryMag:
			entryMag, entry = -n, i
		case n > 0 && n > exitMag:
			exitMag, exit = n, i
		}
	}

	out := make([]domain.AssetDelta, len(deltas))
	copy(out, deltas)
	for i := range out {
		if out[i].IsIntermediate {
			continue
		}
		if i != entry && i != exit {
			out[i].IsIntermediate = true
		}
	}
	return out
}

// synthesizeFromAction fills a missing asset leg from an explicit
// swap-action record. Some providers omit legs from balance-change data; the
// action record is an accelerant, never an authority, so it is consulted
// only when exactly one asset survived aggregation and both action legs are
// present.
func synthesizeFromAction(deltas []domain.AssetDelta, action *SwapAction) []domain.AssetDelta {
	if action == nil || countActive(deltas) != 1 {
		return deltas
	}
	if action.InMint == "" || action.OutMint == "" {
		return deltas
	}

	survivor := ""
	for _, d := range deltas {
		if !d.IsIntermediate {
			survivor = d.Mint
			break
		}
	}

	inMint := coretoken.Canonical(action.InMint)
	outMint := coretoken.Canonical(action.OutMint)

	var synth domain.AssetDelta
	switch survivor {
	case inMint:
		// Out leg missing: swapper received it.
		synth = domain.AssetDelta{
			Mint:     outMint,
			RawDelta: action.OutRawAmount,
			Decimals: action.OutDecimals,
		}
	case outMint:
		// In leg missing: swapper spent it.
		synth = domain.AssetDelta{
			Mint:     inMint,
			RawDelta: -action.InRawAmount,
			Decimals: action.InDecimals,
		}
	default:
		// Action record does not involve the surviving asset; ignore it.
		return deltas
	}

	synth.IsIntermediate = math.Abs(synth.Normalized()) < Epsilon
	if synth.IsIntermediate {
		return deltas
	}

	// Replace an existing zero entry for the same mint rather than
	// duplicating it.
	out := make([]domain.AssetDelta, len(deltas))
	copy(out, deltas)
	for i := range out {
		if out[i].Mint == synth.Mint {
			out[i] = synth
			return out
		}
	}
	return append(out, synth)
}

// countActive returns the number of non-intermediate deltas.
func countActive(deltas []domain.AssetDelta) int {
	n := 0
	for _, d := range deltas {
		if !d.IsIntermediate {
			n++
		}
	}
	return n
}

// findSOL returns the logical SOL entry, intermediate or not.
func findSOL(deltas []domain.AssetDelta) (domain.AssetDelta, bool) {
	for _, d := range deltas {
		if d.Mint == coretoken.WSOL {
			return d, true
		}
	}
	return domain.AssetDelta{}, false
}
