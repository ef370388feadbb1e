package sysaccount

import (
	"testing"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onCurveAddr builds a base58 address that decodes to a valid curve point,
// the way every real wallet keypair does.
func onCurveAddr(t *testing.T) string {
	t.Helper()
	p := edwards25519.NewGeneratorPoint()
	addr := base58.Encode(p.Bytes())
	require.Len(t, addr, 44)
	return addr
}

func TestSetFilter_KnownPrograms(t *testing.T) {
	f := New()
	assert.True(t, f.IsSystemAccount("11111111111111111111111111111111"))
	assert.True(t, f.IsSystemAccount("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"))
	assert.True(t, f.IsSystemAccount("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"))
}

func TestSetFilter_EmptyAddress(t *testing.T) {
	assert.True(t, New().IsSystemAccount(""))
}

func TestSetFilter_OnCurveWalletPasses(t *testing.T) {
	f := New()
	assert.False(t, f.IsSystemAccount(onCurveAddr(t)))
}

func TestSetFilter_InvalidBase58Excluded(t *testing.T) {
	f := New()
	assert.True(t, f.IsSystemAccount("not-a-pubkey"))
}

func TestSetFilter_AddKnown(t *testing.T) {
	wallet := onCurveAddr(t)

	f := New()
	require.False(t, f.IsSystemAccount(wallet))

	f.AddKnown(wallet)
	assert.True(t, f.IsSystemAccount(wallet))

	// Package-level set must stay untouched.
	assert.False(t, New().IsSystemAccount(wallet))
}

type suffixHeuristic struct{ suffix byte }

func (h suffixHeuristic) Matches(addr string) bool {
	return len(addr) > 0 && addr[len(addr)-1] == h.suffix
}

func TestSetFilter_CustomHeuristic(t *testing.T) {
	wallet := onCurveAddr(t)

	f := New().WithHeuristic(suffixHeuristic{suffix: wallet[len(wallet)-1]})
	assert.True(t, f.IsSystemAccount(wallet))
}
