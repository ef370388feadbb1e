package dualrun

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-swap-classifier/internal/domain"
)

func swapResult(dir domain.Direction, baseAmount float64) *domain.Classification {
	return &domain.Classification{Swap: &domain.ParsedSwap{
		Signature:  "5Sig",
		Direction:  dir,
		QuoteMint:  "So11111111111111111111111111111111111111112",
		BaseMint:   "MemeMint111111111111111111111111111111111111",
		BaseAmount: baseAmount,
	}}
}

func eraseResult(reason string) *domain.Classification {
	return &domain.Classification{Erase: &domain.EraseResult{
		Signature: "5Sig",
		Reason:    reason,
	}}
}

func TestCompare_Agreement(t *testing.T) {
	res := Compare(swapResult(domain.DirectionBuy, 1000), swapResult(domain.DirectionBuy, 1000))

	assert.True(t, res.Agree())
	assert.Equal(t, "5Sig", res.Signature)
	assert.Zero(t, res.BaseAmountDeviation)
}

func TestCompare_OutcomeMismatchShortCircuits(t *testing.T) {
	res := Compare(swapResult(domain.DirectionBuy, 1000), eraseResult("dust_amounts_detected"))

	require.Len(t, res.Diffs, 1)
	assert.Contains(t, res.Diffs[0], "outcome")
	assert.True(t, math.IsNaN(res.BaseAmountDeviation))
}

func TestCompare_DirectionMismatch(t *testing.T) {
	res := Compare(swapResult(domain.DirectionBuy, 1000), swapResult(domain.DirectionSell, 1000))

	assert.False(t, res.Agree())
	assert.Contains(t, res.Diffs[0], "direction")
}

func TestCompare_AmountDeviation(t *testing.T) {
	res := Compare(swapResult(domain.DirectionBuy, 1000), swapResult(domain.DirectionBuy, 900))

	assert.False(t, res.Agree())
	assert.InDelta(t, 0.1, res.BaseAmountDeviation, 1e-9)
}

func TestCompare_EraseReasonMismatch(t *testing.T) {
	res := Compare(eraseResult("both_positive_airdrop"), eraseResult("no_base_delta"))

	require.Len(t, res.Diffs, 1)
	assert.Contains(t, res.Diffs[0], "erase reason")
}

func TestCompare_EraseAgreement(t *testing.T) {
	res := Compare(eraseResult("sol_only_movement"), eraseResult("sol_only_movement"))
	assert.True(t, res.Agree())
}
