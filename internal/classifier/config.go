package classifier

// Threshold constants. These are business tuning parameters rather than
// structural invariants; adjust with care and keep tests in sync.
const (
	// Epsilon is the normalized-unit tolerance below which a net delta is
	// treated as zero (intermediate routing asset).
	Epsilon = 1e-9

	// DustThreshold is the normalized-unit floor below which an amount is
	// considered dust for the quote/base gates.
	DustThreshold = 1e-9

	// RentRefundThresholdSOL is the magnitude ceiling for a positive SOL
	// delta to qualify as rent noise.
	RentRefundThresholdSOL = 0.01

	// SignificantSolLamports is the lamport floor above which SOL movement
	// counts as significant in the delta-oriented pattern variant (0.01 SOL).
	SignificantSolLamports = 10_000_000

	// LamportsPerSOL is the decimal scale of native SOL.
	LamportsPerSOL = 1_000_000_000

	// DefaultSOLPriceUSD is the hardcoded fallback used for stablecoin fee
	// conversion and the notional filter before the price cache has ever
	// fetched successfully.
	DefaultSOLPriceUSD = 180.0
)

// Config holds the tunable parameters of one pipeline instance.
type Config struct {
	// MinNotionalUSD erases otherwise-valid trades whose quote-side value is
	// below this floor. Zero disables the filter.
	MinNotionalUSD float64
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		MinNotionalUSD: 0,
	}
}
