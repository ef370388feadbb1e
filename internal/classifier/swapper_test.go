package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-swap-classifier/internal/domain"
)

func TestIdentifySwapper_FeePayer(t *testing.T) {
	tx := testTx(
		solChange(walletA, -1_500_000_000),
		change(walletA, memeMint, 1_000_000, 6),
		change(poolX, memeMint, -1_000_000, 6),
	)

	id, ok := identifySwapper(tx, permissiveFilter{})
	require.True(t, ok)
	assert.Equal(t, walletA, id.swapper)
	assert.Equal(t, domain.IdentifyFeePayer, id.method)
}

func TestIdentifySwapper_FeePayerWithoutChanges(t *testing.T) {
	// Gasless pattern: the fee payer is a sponsor with no balance changes,
	// the primary signer is the acting wallet.
	tx := testTx(
		solChange(walletB, -1_500_000_000),
		change(walletB, memeMint, 1_000_000, 6),
	)
	tx.FeePayer = walletA
	tx.Signers = []string{walletB}

	id, ok := identifySwapper(tx, permissiveFilter{})
	require.True(t, ok)
	assert.Equal(t, walletB, id.swapper)
	assert.Equal(t, domain.IdentifySigner, id.method)
}

func TestIdentifySwapper_OwnerAnalysis(t *testing.T) {
	tx := testTx(
		solChange(walletB, -1_000_000_000),
		change(walletB, memeMint, 500_000, 6),
	)
	tx.FeePayer = walletA
	tx.Signers = nil

	id, ok := identifySwapper(tx, permissiveFilter{})
	require.True(t, ok)
	assert.Equal(t, walletB, id.swapper)
	assert.Equal(t, domain.IdentifyOwnerAnalysis, id.method)
}

func TestIdentifySwapper_OwnerAnalysisSkipsSystemAccounts(t *testing.T) {
	tx := testTx(
		solChange(walletB, -1_000_000_000),
		solChange(poolX, 1_000_000_000),
	)
	tx.FeePayer = walletA
	tx.Signers = nil

	f := &markedFilter{system: poolX}
	id, ok := identifySwapper(tx, f)
	require.True(t, ok)
	assert.Equal(t, walletB, id.swapper)
	assert.Equal(t, domain.IdentifyOwnerAnalysis, id.method)
}

func TestIdentifySwapper_AmbiguousOwnersFails(t *testing.T) {
	tx := testTx(
		solChange(walletB, -1_000_000_000),
		change(poolX, memeMint, 1_000_000, 6),
	)
	tx.FeePayer = walletA
	tx.Signers = nil

	id, ok := identifySwapper(tx, permissiveFilter{})
	assert.False(t, ok)
	assert.Equal(t, domain.IdentifyUnknown, id.method)
}

func TestIdentifySwapper_ZeroDeltaOwnerNotEligible(t *testing.T) {
	// An owner whose only changes net to zero raw amounts never qualifies
	// at any tier.
	tx := testTx(
		change(walletA, memeMint, 0, 6),
		solChange(walletB, -1_000_000_000),
		change(walletB, memeMint2, 2_000_000, 6),
	)
	tx.FeePayer = walletA
	tx.Signers = []string{walletA}

	id, ok := identifySwapper(tx, permissiveFilter{})
	require.True(t, ok)
	assert.Equal(t, walletB, id.swapper)
	assert.Equal(t, domain.IdentifyOwnerAnalysis, id.method)
}

// markedFilter flags a single configured address as system-owned.
type markedFilter struct{ system string }

func (f *markedFilter) IsSystemAccount(addr string) bool { return addr == f.system }
