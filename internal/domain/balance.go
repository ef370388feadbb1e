package domain

import "math"

// BalanceChange is one observed change to one token holding for one owner
// within a transaction. Multiple changes may exist for the same (owner, mint)
// pair when the owner holds several token accounts; they must be summed,
// never overwritten.
type BalanceChange struct {
	Owner       string // wallet that owns the token account
	Mint        string // token mint address
	RawDelta    int64  // signed change in smallest units
	Decimals    uint8  // decimal scale of the mint
	PreBalance  uint64 // balance before the transaction (smallest units)
	PostBalance uint64 // balance after the transaction (smallest units)
}

// Normalized returns the delta scaled by the mint's decimals.
func (c BalanceChange) Normalized() float64 {
	return float64(c.RawDelta) / math.Pow10(int(c.Decimals))
}

// AssetDelta is the aggregated per-mint net change for the identified swapper.
// IsIntermediate is true iff the normalized net delta is below Epsilon: the
// asset passed through the wallet during multi-hop routing without net effect.
// Intermediate assets are excluded from role assignment but retained for
// debug output.
type AssetDelta struct {
	Mint           string
	Symbol         string // best-effort decoration, never a classification input
	RawDelta       int64  // signed net change in smallest units
	Decimals       uint8
	IsIntermediate bool
}

// Normalized returns the net delta scaled by the mint's decimals.
func (d AssetDelta) Normalized() float64 {
	return float64(d.RawDelta) / math.Pow10(int(d.Decimals))
}

// AbsNormalized returns the absolute normalized net delta.
func (d AssetDelta) AbsNormalized() float64 {
	return math.Abs(d.Normalized())
}
