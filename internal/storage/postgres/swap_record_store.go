package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"solana-swap-classifier/internal/domain"
	"solana-swap-classifier/internal/storage"
)

// SwapRecordStore implements storage.SwapRecordStore using PostgreSQL.
type SwapRecordStore struct {
	pool *Pool
}

// NewSwapRecordStore creates a new SwapRecordStore.
func NewSwapRecordStore(pool *Pool) *SwapRecordStore {
	return &SwapRecordStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SwapRecordStore = (*SwapRecordStore)(nil)

const insertSwapRecordQuery = `
	INSERT INTO swap_records (
		record_id, pair_id, signature, timestamp, swapper, protocol,
		side, quote_mint, base_mint, base_amount,
		quote_amount, wallet_total, total_fee_in_quote,
		identification_method, confidence, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
`

const selectSwapRecordColumns = `
	SELECT record_id, pair_id, signature, timestamp, swapper, protocol,
		side, quote_mint, base_mint, base_amount,
		quote_amount, wallet_total, total_fee_in_quote,
		identification_method, confidence, created_at
	FROM swap_records
`

// Insert adds a new record. Returns ErrDuplicateKey if record_id exists.
func (s *SwapRecordStore) Insert(ctx context.Context, r *domain.SwapRecord) error {
	if r == nil || r.RecordID == "" {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, insertSwapRecordQuery, insertSwapRecordArgs(r)...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert swap record: %w", err)
	}
	return nil
}

// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
func (s *SwapRecordStore) InsertBulk(ctx context.Context, records []*domain.SwapRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range records {
		if r == nil || r.RecordID == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, insertSwapRecordQuery, insertSwapRecordArgs(r)...)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert swap record in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByID retrieves a record by its deterministic ID.
func (s *SwapRecordStore) GetByID(ctx context.Context, recordID string) (*domain.SwapRecord, error) {
	query := selectSwapRecordColumns + ` WHERE record_id = $1`

	row := s.pool.QueryRow(ctx, query, recordID)

	r, err := scanSwapRecord(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get swap record by id: %w", err)
	}
	return r, nil
}

// GetBySignature retrieves all records for a transaction signature.
// A split pair yields two rows sharing pair_id.
func (s *SwapRecordStore) GetBySignature(ctx context.Context, signature string) ([]*domain.SwapRecord, error) {
	query := selectSwapRecordColumns + `
		WHERE signature = $1
		ORDER BY timestamp ASC, record_id ASC
	`

	rows, err := s.pool.Query(ctx, query, signature)
	if err != nil {
		return nil, fmt.Errorf("get swap records by signature: %w", err)
	}
	defer rows.Close()

	return scanSwapRecords(rows)
}

// GetBySwapper retrieves records for a wallet within [start, end] ms (inclusive).
func (s *SwapRecordStore) GetBySwapper(ctx context.Context, swapper string, start, end int64) ([]*domain.SwapRecord, error) {
	query := selectSwapRecordColumns + `
		WHERE swapper = $1 AND timestamp >= $2 AND timestamp <= $3
		ORDER BY timestamp ASC, record_id ASC
	`

	rows, err := s.pool.Query(ctx, query, swapper, start, end)
	if err != nil {
		return nil, fmt.Errorf("get swap records by swapper: %w", err)
	}
	defer rows.Close()

	return scanSwapRecords(rows)
}

func insertSwapRecordArgs(r *domain.SwapRecord) []any {
	return []any{
		r.RecordID,
		r.PairID,
		r.Signature,
		r.Timestamp,
		r.Swapper,
		r.Protocol,
		string(r.Side),
		r.QuoteMint,
		r.BaseMint,
		r.BaseAmount,
		r.QuoteAmount,
		r.WalletTotal,
		r.TotalFeeInQuote,
		string(r.IdentificationMethod),
		r.Confidence,
		r.CreatedAt,
	}
}

// scanSwapRecord scans a single row into a SwapRecord.
func scanSwapRecord(row pgx.Row) (*domain.SwapRecord, error) {
	var r domain.SwapRecord
	var side, method string

	err := row.Scan(
		&r.RecordID,
		&r.PairID,
		&r.Signature,
		&r.Timestamp,
		&r.Swapper,
		&r.Protocol,
		&side,
		&r.QuoteMint,
		&r.BaseMint,
		&r.BaseAmount,
		&r.QuoteAmount,
		&r.WalletTotal,
		&r.TotalFeeInQuote,
		&method,
		&r.Confidence,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Side = domain.Direction(side)
	r.IdentificationMethod = domain.IdentificationMethod(method)
	return &r, nil
}

// scanSwapRecords scans multiple rows into a slice of SwapRecord.
func scanSwapRecords(rows pgx.Rows) ([]*domain.SwapRecord, error) {
	var records []*domain.SwapRecord

	for rows.Next() {
		r, err := scanSwapRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan swap record row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate swap record rows: %w", err)
	}

	return records, nil
}
