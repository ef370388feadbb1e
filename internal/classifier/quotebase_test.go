package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-swap-classifier/internal/coretoken"
	"solana-swap-classifier/internal/domain"
)

func sol(raw int64) domain.AssetDelta {
	return domain.AssetDelta{Mint: coretoken.WSOL, RawDelta: raw, Decimals: 9}
}

func usdc(raw int64) domain.AssetDelta {
	return domain.AssetDelta{Mint: coretoken.USDC, RawDelta: raw, Decimals: 6}
}

func meme(mint string, raw int64) domain.AssetDelta {
	return domain.AssetDelta{Mint: mint, RawDelta: raw, Decimals: 6}
}

func TestDetectQuoteBase_SolBuy(t *testing.T) {
	res := detectQuoteBase([]domain.AssetDelta{sol(-1_500_000_000), meme(memeMint, 1_000_000_000)})

	require.Empty(t, res.eraseReason)
	require.False(t, res.splitRequired)
	assert.Equal(t, coretoken.WSOL, res.quote.Mint)
	assert.Equal(t, memeMint, res.base.Mint)
	assert.Equal(t, domain.DirectionBuy, res.direction)
}

func TestDetectQuoteBase_StablecoinSell(t *testing.T) {
	res := detectQuoteBase([]domain.AssetDelta{meme(memeMint, -1_000_000_000), usdc(250_000_000)})

	require.Empty(t, res.eraseReason)
	assert.Equal(t, coretoken.USDC, res.quote.Mint)
	assert.Equal(t, memeMint, res.base.Mint)
	assert.Equal(t, domain.DirectionSell, res.direction)
}

func TestDetectQuoteBase_SolPreferredOverStablecoin(t *testing.T) {
	res := detectQuoteBase([]domain.AssetDelta{sol(-10_000_000_000), usdc(1_800_000_000)})

	require.Empty(t, res.eraseReason)
	assert.Equal(t, coretoken.WSOL, res.quote.Mint)
	assert.Equal(t, coretoken.USDC, res.base.Mint)
	assert.Equal(t, domain.DirectionBuy, res.direction)
}

func TestDetectQuoteBase_TokenToTokenSplit(t *testing.T) {
	res := detectQuoteBase([]domain.AssetDelta{meme(memeMint, -5_000_000), meme(memeMint2, 9_000_000)})

	require.Empty(t, res.eraseReason)
	require.True(t, res.splitRequired)
	assert.Equal(t, memeMint, res.outgoing.Mint)
	assert.Equal(t, memeMint2, res.incoming.Mint)
}

func TestDetectQuoteBase_GateOrdering(t *testing.T) {
	tests := []struct {
		name   string
		deltas []domain.AssetDelta
		reason string
	}{
		{
			name:   "same signs fail before mint check",
			deltas: []domain.AssetDelta{meme(memeMint, 1_000_000), meme(memeMint, 2_000_000)},
			reason: domain.EraseInvalidDeltaSigns,
		},
		{
			name:   "same mint fails before dust check",
			deltas: []domain.AssetDelta{meme(memeMint, -1), meme(memeMint, 2)},
			reason: domain.EraseSameToken,
		},
		{
			name:   "dust",
			deltas: []domain.AssetDelta{meme(memeMint, -5_000_000), {Mint: memeMint2, RawDelta: 1, Decimals: 12}},
			reason: domain.EraseDustAmounts,
		},
		{
			name: "too many active assets",
			deltas: []domain.AssetDelta{
				meme(memeMint, -5_000_000),
				meme(memeMint2, 9_000_000),
				sol(-1_000_000_000),
			},
			reason: domain.EraseInvalidAssetCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := detectQuoteBase(tt.deltas)
			assert.Equal(t, tt.reason, res.eraseReason)
		})
	}
}

func TestDetectQuoteBase_IntermediatesExcluded(t *testing.T) {
	deltas := []domain.AssetDelta{
		sol(-1_500_000_000),
		meme(memeMint, 1_000_000_000),
		{Mint: memeMint2, RawDelta: 0, Decimals: 6, IsIntermediate: true},
	}
	res := detectQuoteBase(deltas)
	require.Empty(t, res.eraseReason)
	assert.Equal(t, memeMint, res.base.Mint)
}

func TestDetectQuoteBase_SingleNonCoreSurvivorPairsWithSol(t *testing.T) {
	// Airdrop shape: one token credited, no SOL movement at all. The pair
	// reaches the erase validator with a zero logical-SOL quote so that the
	// precise reason wins over a count failure.
	res := detectQuoteBase([]domain.AssetDelta{meme(memeMint, 1_000_000_000)})

	require.Empty(t, res.eraseReason)
	require.NotNil(t, res.quote)
	assert.Equal(t, coretoken.WSOL, res.quote.Mint)
	assert.Zero(t, res.quote.RawDelta)
	assert.Equal(t, memeMint, res.base.Mint)
	assert.Empty(t, res.direction)
}

func TestDetectQuoteBase_SingleCoreSurvivorKeepsQuoteRole(t *testing.T) {
	deltas := []domain.AssetDelta{
		sol(-1_500_000_000),
		{Mint: memeMint, RawDelta: 0, Decimals: 6, IsIntermediate: true},
	}
	res := detectQuoteBase(deltas)

	require.Empty(t, res.eraseReason)
	assert.Equal(t, coretoken.WSOL, res.quote.Mint)
	assert.Equal(t, memeMint, res.base.Mint)
	assert.Empty(t, res.direction)
}

func TestDetectQuoteBase_NoActiveAssets(t *testing.T) {
	res := detectQuoteBase(nil)
	assert.Equal(t, domain.EraseInvalidAssetCount, res.eraseReason)
}
