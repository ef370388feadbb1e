package coretoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical_MergesSOLEquivalents(t *testing.T) {
	for _, mint := range []string{WSOL, NativeSOL, MSOL, JitoSOL, BSOL, StSOL, JupSOL, INF, LST} {
		assert.Equal(t, WSOL, Canonical(mint), "mint %s should canonicalize to WSOL", mint)
	}
}

func TestCanonical_LeavesOtherMintsAlone(t *testing.T) {
	assert.Equal(t, USDC, Canonical(USDC))
	assert.Equal(t, "SomeMemecoinMint111111111111111111111111111", Canonical("SomeMemecoinMint111111111111111111111111111"))
}

func TestIsCore(t *testing.T) {
	assert.True(t, IsCore(WSOL))
	assert.True(t, IsCore(USDC))
	assert.True(t, IsCore(JitoSOL))
	assert.False(t, IsCore("SomeMemecoinMint111111111111111111111111111"))
	assert.False(t, IsCore(""))
}

func TestPreferAsQuote_SOLOverStablecoin(t *testing.T) {
	assert.Equal(t, WSOL, PreferAsQuote(WSOL, USDC))
	assert.Equal(t, WSOL, PreferAsQuote(USDC, WSOL))
}

func TestPreferAsQuote_TwoStablecoinsDeterministic(t *testing.T) {
	first := PreferAsQuote(USDC, USDT)
	second := PreferAsQuote(USDT, USDC)
	assert.Equal(t, first, second)
}
