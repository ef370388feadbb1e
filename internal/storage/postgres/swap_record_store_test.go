package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-swap-classifier/internal/domain"
	"solana-swap-classifier/internal/storage"
)

func testSwapRecord(id, sig, swapper string, ts int64) *domain.SwapRecord {
	return &domain.SwapRecord{
		RecordID:             id,
		Signature:            sig,
		Timestamp:            ts,
		Swapper:              swapper,
		Protocol:             "RAYDIUM",
		Side:                 domain.DirectionBuy,
		QuoteMint:            "So11111111111111111111111111111111111111112",
		BaseMint:             "MemeMint111111111111111111111111111111111111",
		BaseAmount:           1000,
		QuoteAmount:          ptr(1.5),
		WalletTotal:          ptr(1.500005),
		TotalFeeInQuote:      0.000005,
		IdentificationMethod: domain.IdentifyFeePayer,
		Confidence:           100,
		CreatedAt:            ts,
	}
}

func TestSwapRecordStore_InsertAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewSwapRecordStore(pool)

	rec := testSwapRecord("rec-1", "Sig1", "Wallet1", 1717000000000)
	require.NoError(t, store.Insert(ctx, rec))

	got, err := store.GetByID(ctx, "rec-1")
	require.NoError(t, err)

	assert.Equal(t, rec.Signature, got.Signature)
	assert.Equal(t, rec.Timestamp, got.Timestamp)
	assert.Equal(t, rec.Swapper, got.Swapper)
	assert.Equal(t, rec.Side, got.Side)
	assert.Equal(t, rec.QuoteMint, got.QuoteMint)
	assert.Equal(t, rec.BaseMint, got.BaseMint)
	assert.InDelta(t, rec.BaseAmount, got.BaseAmount, 0.0001)
	require.NotNil(t, got.QuoteAmount)
	assert.InDelta(t, 1.5, *got.QuoteAmount, 0.0000001)
	require.NotNil(t, got.WalletTotal)
	assert.InDelta(t, 1.500005, *got.WalletTotal, 0.0000001)
	assert.Equal(t, domain.IdentifyFeePayer, got.IdentificationMethod)
	assert.Equal(t, 100, got.Confidence)
}

func TestSwapRecordStore_NullableQuoteColumns(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewSwapRecordStore(pool)

	// A split half has no SOL quote leg.
	rec := testSwapRecord("rec-split", "SigSplit", "Wallet1", 1717000000000)
	rec.PairID = "pair-1"
	rec.QuoteAmount = nil
	rec.WalletTotal = nil
	require.NoError(t, store.Insert(ctx, rec))

	got, err := store.GetByID(ctx, "rec-split")
	require.NoError(t, err)
	assert.Equal(t, "pair-1", got.PairID)
	assert.Nil(t, got.QuoteAmount)
	assert.Nil(t, got.WalletTotal)
}

func TestSwapRecordStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewSwapRecordStore(pool)

	rec := testSwapRecord("rec-1", "Sig1", "Wallet1", 1717000000000)
	require.NoError(t, store.Insert(ctx, rec))

	err := store.Insert(ctx, rec)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestSwapRecordStore_GetByIDNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewSwapRecordStore(pool)

	_, err := store.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSwapRecordStore_InsertBulkAtomic(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewSwapRecordStore(pool)

	require.NoError(t, store.Insert(ctx, testSwapRecord("rec-1", "Sig1", "Wallet1", 100)))

	err := store.InsertBulk(ctx, []*domain.SwapRecord{
		testSwapRecord("rec-2", "Sig2", "Wallet1", 200),
		testSwapRecord("rec-1", "Sig1", "Wallet1", 100),
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// The whole batch must roll back.
	_, err = store.GetByID(ctx, "rec-2")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSwapRecordStore_GetBySignature(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewSwapRecordStore(pool)

	sell := testSwapRecord("rec-sell", "SigSplit", "Wallet1", 100)
	sell.Side = domain.DirectionSell
	sell.PairID = "pair-1"
	buy := testSwapRecord("rec-buy", "SigSplit", "Wallet1", 100)
	buy.PairID = "pair-1"
	require.NoError(t, store.InsertBulk(ctx, []*domain.SwapRecord{sell, buy}))
	require.NoError(t, store.Insert(ctx, testSwapRecord("rec-other", "SigOther", "Wallet1", 200)))

	got, err := store.GetBySignature(ctx, "SigSplit")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "pair-1", got[0].PairID)
	assert.Equal(t, "pair-1", got[1].PairID)
	// Equal timestamps order deterministically by record_id.
	assert.Equal(t, "rec-buy", got[0].RecordID)
	assert.Equal(t, "rec-sell", got[1].RecordID)
}

func TestSwapRecordStore_GetBySwapperTimeRange(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewSwapRecordStore(pool)

	require.NoError(t, store.Insert(ctx, testSwapRecord("rec-1", "Sig1", "Wallet1", 100)))
	require.NoError(t, store.Insert(ctx, testSwapRecord("rec-2", "Sig2", "Wallet1", 200)))
	require.NoError(t, store.Insert(ctx, testSwapRecord("rec-3", "Sig3", "Wallet1", 300)))
	require.NoError(t, store.Insert(ctx, testSwapRecord("rec-4", "Sig4", "Wallet2", 200)))

	got, err := store.GetBySwapper(ctx, "Wallet1", 100, 200)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(100), got[0].Timestamp)
	assert.Equal(t, int64(200), got[1].Timestamp)
}
