package classifier

import (
	"solana-swap-classifier/internal/coretoken"
	"solana-swap-classifier/internal/domain"
)

// Shared fixtures. Addresses are synthetic, so tests that exercise owner
// analysis inject permissiveFilter instead of the curve-check default.

const (
	walletA = "WaLLetAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	walletB = "WaLLetBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"
	poolX   = "PooLXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX"

	memeMint  = "MemeMint111111111111111111111111111111111111"
	memeMint2 = "MemeMint222222222222222222222222222222222222"
)

// permissiveFilter treats every address as a user wallet.
type permissiveFilter struct{}

func (permissiveFilter) IsSystemAccount(string) bool { return false }

// fixedPrice is a PriceSource stub with a fresh fixed quote.
type fixedPrice float64

func (p fixedPrice) PriceUSD() (float64, bool) { return float64(p), true }

func change(owner, mint string, raw int64, decimals uint8) domain.BalanceChange {
	return domain.BalanceChange{Owner: owner, Mint: mint, RawDelta: raw, Decimals: decimals}
}

func solChange(owner string, lamports int64) domain.BalanceChange {
	return change(owner, coretoken.WSOL, lamports, coretoken.SOLDecimals)
}

func testTx(changes ...domain.BalanceChange) *Transaction {
	return &Transaction{
		Signature:   "5TestSignature111111111111111111111111111111",
		Timestamp:   1717000000000,
		FeePayer:    walletA,
		Signers:     []string{walletA},
		FeeLamports: 5000,
		Changes:     changes,
	}
}

func newTestPipeline(opts ...Option) *Pipeline {
	base := []Option{WithSystemAccountFilter(permissiveFilter{})}
	return New(DefaultConfig(), append(base, opts...)...)
}
