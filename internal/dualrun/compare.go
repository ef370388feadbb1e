// Package dualrun diffs two classifications of the same transaction. It is
// offline validation tooling layered outside the pipeline: comparisons never
// feed state back into classification.
package dualrun

import (
	"fmt"
	"math"

	"solana-swap-classifier/internal/domain"
)

// deviationTolerance absorbs float rounding between two computations of the
// same amount.
const deviationTolerance = 1e-9

// Result is one pairwise comparison.
type Result struct {
	Signature string `json:"signature"`

	OutcomeA string `json:"outcomeA"`
	OutcomeB string `json:"outcomeB"`

	// Diffs lists human-readable mismatches; empty means full agreement.
	Diffs []string `json:"diffs,omitempty"`

	// BaseAmountDeviation is |a-b| / max(|a|,|b|) for two comparable swap
	// outcomes, NaN otherwise.
	BaseAmountDeviation float64 `json:"baseAmountDeviation"`
}

// Agree reports whether the two runs matched on every compared dimension.
func (r Result) Agree() bool { return len(r.Diffs) == 0 }

// Compare diffs outcome status, direction, roles, erase reasons, and
// relative base-amount deviation.
func Compare(a, b *domain.Classification) Result {
	res := Result{
		Signature:           a.Signature(),
		OutcomeA:            a.Outcome(),
		OutcomeB:            b.Outcome(),
		BaseAmountDeviation: math.NaN(),
	}
	if res.Signature == "" {
		res.Signature = b.Signature()
	}

	if res.OutcomeA != res.OutcomeB {
		res.Diffs = append(res.Diffs,
			fmt.Sprintf("outcome: %s vs %s", res.OutcomeA, res.OutcomeB))
		return res
	}

	switch res.OutcomeA {
	case domain.OutcomeSwap:
		compareSwaps(&res, a.Swap, b.Swap)
	case domain.OutcomeSplit:
		compareSwaps(&res, a.Split.Sell, b.Split.Sell)
		compareSwaps(&res, a.Split.Buy, b.Split.Buy)
	case domain.OutcomeErase:
		if a.Erase.Reason != b.Erase.Reason {
			res.Diffs = append(res.Diffs,
				fmt.Sprintf("erase reason: %s vs %s", a.Erase.Reason, b.Erase.Reason))
		}
	}
	return res
}

func compareSwaps(res *Result, a, b *domain.ParsedSwap) {
	if a.Direction != b.Direction {
		res.Diffs = append(res.Diffs,
			fmt.Sprintf("direction: %s vs %s", a.Direction, b.Direction))
	}
	if a.QuoteMint != b.QuoteMint {
		res.Diffs = append(res.Diffs,
			fmt.Sprintf("quote mint: %s vs %s", a.QuoteMint, b.QuoteMint))
	}
	if a.BaseMint != b.BaseMint {
		res.Diffs = append(res.Diffs,
			fmt.Sprintf("base mint: %s vs %s", a.BaseMint, b.BaseMint))
	}

	dev := relativeDeviation(a.BaseAmount, b.BaseAmount)
	if math.IsNaN(res.BaseAmountDeviation) || dev > res.BaseAmountDeviation {
		res.BaseAmountDeviation = dev
	}
	if dev > deviationTolerance {
		res.Diffs = append(res.Diffs,
			fmt.Sprintf("base amount: %g vs %g (deviation %.4f)", a.BaseAmount, b.BaseAmount, dev))
	}
}

// relativeDeviation returns |a-b| scaled by the larger magnitude; two zero
// amounts deviate by zero.
func relativeDeviation(a, b float64) float64 {
	if a == b {
		return 0
	}
	denom := math.Max(math.Abs(a), math.Abs(b))
	if denom == 0 {
		return 0
	}
	return math.Abs(a-b) / denom
}
