package storage

import (
	"context"

	"solana-swap-classifier/internal/domain"
)

// SwapRecordStore provides access to swap_records storage. Records are
// append-only: a re-classification of the same transaction produces the same
// deterministic record IDs, so duplicate inserts signal replayed input
// rather than new data.
type SwapRecordStore interface {
	// Insert adds a new record. Returns ErrDuplicateKey if record_id exists.
	Insert(ctx context.Context, r *domain.SwapRecord) error

	// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, records []*domain.SwapRecord) error

	// GetByID retrieves a record by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, recordID string) (*domain.SwapRecord, error)

	// GetBySignature retrieves all records for a transaction signature.
	// Split pairs yield two records sharing pair_id.
	GetBySignature(ctx context.Context, signature string) ([]*domain.SwapRecord, error)

	// GetBySwapper retrieves records for a wallet within [start, end] ms (inclusive),
	// ordered by timestamp ASC.
	GetBySwapper(ctx context.Context, swapper string, start, end int64) ([]*domain.SwapRecord, error)
}

// EraseAuditStore provides access to the erase audit log. The log is
// high-volume and analytical; the backing store tolerates duplicates.
type EraseAuditStore interface {
	// Insert appends one rejection row.
	Insert(ctx context.Context, r *domain.EraseRecord) error

	// InsertBulk appends multiple rejection rows.
	InsertBulk(ctx context.Context, records []*domain.EraseRecord) error

	// GetBySignature retrieves all rejections recorded for a signature.
	GetBySignature(ctx context.Context, signature string) ([]*domain.EraseRecord, error)

	// CountByReason returns total rejections grouped by reason.
	CountByReason(ctx context.Context) (map[string]int64, error)
}
