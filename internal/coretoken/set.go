// Package coretoken defines the fixed set of mints treated as pricing and
// settlement currencies: native SOL and its wrapped form (unified under one
// identity), major stablecoins, and liquid-staking derivatives of SOL.
// Membership decides whether a pair is a standard swap (one core + one
// non-core asset) or a split (two non-core assets).
package coretoken

// WSOL is the wrapped SOL mint, used as the single logical identity for
// native SOL and every SOL equivalent after merging.
const WSOL = "So11111111111111111111111111111111111111112"

// NativeSOL is the pseudo-mint some providers use for native SOL legs.
const NativeSOL = "11111111111111111111111111111111"

// SOLDecimals is the decimal scale shared by SOL and its liquid-staking
// derivatives.
const SOLDecimals uint8 = 9

// Stablecoin mints.
const (
	USDC  = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	USDT  = "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB"
	PYUSD = "2b1kV6DkPAnxd5ixfnxCpjxmKwqjjaYmCZfHsFu24GXo"
	USDS  = "USDSwr9ApdHk5bvJKMjzff41FfuX8bSxdKcR81vTwcA"
	USDH  = "USDH1SM1ojwWUga67PGrgFWUHibbjqMvuMaDkRJTgkX"
	UXD   = "7kbnvuGBxxj8AG9qp8Scn56muWGaRaFqxg1FsRp3PaFT"
)

// Liquid-staking derivatives of SOL. Routing through these inflates the
// asset count past two unless they are merged into the logical SOL delta.
const (
	MSOL    = "mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So"
	StSOL   = "7dHbWXmci3dT8UFYWYZweBLXgycu7Y3iL6trKn1Y7ARj"
	JitoSOL = "J1toso1uCk3RLmjorhTtrVwY9HJ7X8V9yYac6Y7kGCPn"
	BSOL    = "bSo13r4TkiE4KumL71LsHTPpL2euBYLFx6h9HP3piy1"
	JupSOL  = "jupSoLaHXQiZZTSfEWMTRRgpnyFm8f6sZdosWBjx93v"
	INF     = "5oVNBeEEQvYi1cX3ir8Dx5n1P7pdxydbGF2X4TxVusJm"
	LST     = "LSTxxxnJzKDFSLr4dUkPcmCf5VyryEqzPLz5j4bpxFp"
)

// solEquivalents maps every SOL-equivalent mint (native, wrapped,
// liquid-staked) to membership. All entries share SOLDecimals.
var solEquivalents = map[string]struct{}{
	WSOL:      {},
	NativeSOL: {},
	MSOL:      {},
	StSOL:     {},
	JitoSOL:   {},
	BSOL:      {},
	JupSOL:    {},
	INF:       {},
	LST:       {},
}

// stablecoins maps stablecoin mints to membership.
var stablecoins = map[string]struct{}{
	USDC:  {},
	USDT:  {},
	PYUSD: {},
	USDS:  {},
	USDH:  {},
	UXD:   {},
}

// IsSOLEquivalent reports whether mint is native SOL, wrapped SOL, or a
// liquid-staking derivative. All such legs must be summed into one logical
// SOL delta before role assignment.
func IsSOLEquivalent(mint string) bool {
	_, ok := solEquivalents[mint]
	return ok
}

// IsStablecoin reports whether mint is a known major stablecoin.
func IsStablecoin(mint string) bool {
	_, ok := stablecoins[mint]
	return ok
}

// IsCore reports whether mint belongs to the core token set.
func IsCore(mint string) bool {
	return IsSOLEquivalent(mint) || IsStablecoin(mint)
}

// Canonical maps any SOL-equivalent mint to WSOL so that equivalents merge
// into a single logical entry; every other mint maps to itself.
func Canonical(mint string) string {
	if IsSOLEquivalent(mint) {
		return WSOL
	}
	return mint
}

// PreferAsQuote picks the quote side when both assets are core: native SOL
// wins over stablecoins; between two stablecoins the choice is arbitrary but
// deterministic (lexicographic).
func PreferAsQuote(a, b string) string {
	switch {
	case IsSOLEquivalent(a):
		return a
	case IsSOLEquivalent(b):
		return b
	case a <= b:
		return a
	default:
		return b
	}
}
