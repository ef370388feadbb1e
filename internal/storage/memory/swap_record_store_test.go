package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-swap-classifier/internal/domain"
	"solana-swap-classifier/internal/storage"
)

func record(id, sig, swapper string, ts int64) *domain.SwapRecord {
	return &domain.SwapRecord{
		RecordID:   id,
		Signature:  sig,
		Timestamp:  ts,
		Swapper:    swapper,
		Side:       domain.DirectionBuy,
		QuoteMint:  "So11111111111111111111111111111111111111112",
		BaseMint:   "MemeMint111111111111111111111111111111111111",
		BaseAmount: 1000,
	}
}

func TestSwapRecordStore_InsertAndGet(t *testing.T) {
	s := NewSwapRecordStore()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("r1", "sig1", "w1", 100)))

	got, err := s.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "sig1", got.Signature)

	_, err = s.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSwapRecordStore_DuplicateInsert(t *testing.T) {
	s := NewSwapRecordStore()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("r1", "sig1", "w1", 100)))
	assert.ErrorIs(t, s.Insert(ctx, record("r1", "sig1", "w1", 100)), storage.ErrDuplicateKey)
}

func TestSwapRecordStore_InvalidInput(t *testing.T) {
	s := NewSwapRecordStore()
	ctx := context.Background()

	assert.ErrorIs(t, s.Insert(ctx, nil), storage.ErrInvalidInput)
	assert.ErrorIs(t, s.Insert(ctx, &domain.SwapRecord{}), storage.ErrInvalidInput)
}

func TestSwapRecordStore_InsertBulkAtomic(t *testing.T) {
	s := NewSwapRecordStore()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("r1", "sig1", "w1", 100)))

	// A batch containing an existing ID must fail without inserting anything.
	err := s.InsertBulk(ctx, []*domain.SwapRecord{
		record("r2", "sig2", "w1", 200),
		record("r1", "sig1", "w1", 100),
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	_, err = s.GetByID(ctx, "r2")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSwapRecordStore_InsertBulkIntraBatchDuplicate(t *testing.T) {
	s := NewSwapRecordStore()
	ctx := context.Background()

	err := s.InsertBulk(ctx, []*domain.SwapRecord{
		record("r1", "sig1", "w1", 100),
		record("r1", "sig1", "w1", 100),
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestSwapRecordStore_GetBySignature(t *testing.T) {
	s := NewSwapRecordStore()
	ctx := context.Background()

	// A split pair: two records sharing the signature.
	sell := record("r-sell", "sig1", "w1", 100)
	sell.Side = domain.DirectionSell
	sell.PairID = "pair1"
	buy := record("r-buy", "sig1", "w1", 100)
	buy.PairID = "pair1"
	require.NoError(t, s.InsertBulk(ctx, []*domain.SwapRecord{sell, buy}))
	require.NoError(t, s.Insert(ctx, record("r3", "sig2", "w1", 200)))

	got, err := s.GetBySignature(ctx, "sig1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, got[0].PairID, got[1].PairID)
}

func TestSwapRecordStore_GetBySwapperTimeRange(t *testing.T) {
	s := NewSwapRecordStore()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("r1", "sig1", "w1", 100)))
	require.NoError(t, s.Insert(ctx, record("r2", "sig2", "w1", 200)))
	require.NoError(t, s.Insert(ctx, record("r3", "sig3", "w1", 300)))
	require.NoError(t, s.Insert(ctx, record("r4", "sig4", "w2", 200)))

	got, err := s.GetBySwapper(ctx, "w1", 100, 200)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(100), got[0].Timestamp)
	assert.Equal(t, int64(200), got[1].Timestamp)
}

func TestSwapRecordStore_ReturnsCopies(t *testing.T) {
	s := NewSwapRecordStore()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("r1", "sig1", "w1", 100)))

	got, err := s.GetByID(ctx, "r1")
	require.NoError(t, err)
	got.Swapper = "mutated"

	again, err := s.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "w1", again.Swapper)
}
