package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"solana-swap-classifier/internal/domain"
	"solana-swap-classifier/internal/storage"
)

// EraseAuditStore implements storage.EraseAuditStore using ClickHouse.
// MergeTree does not enforce uniqueness and the audit log does not need it:
// reprocessing a signature simply appends another row.
type EraseAuditStore struct {
	conn *Conn
}

// NewEraseAuditStore creates a new EraseAuditStore.
func NewEraseAuditStore(conn *Conn) *EraseAuditStore {
	return &EraseAuditStore{conn: conn}
}

// Compile-time interface check.
var _ storage.EraseAuditStore = (*EraseAuditStore)(nil)

// Insert adds one rejection row.
func (s *EraseAuditStore) Insert(ctx context.Context, r *domain.EraseRecord) error {
	return s.InsertBulk(ctx, []*domain.EraseRecord{r})
}

// InsertBulk adds multiple rejection rows in one batch.
func (s *EraseAuditStore) InsertBulk(ctx context.Context, records []*domain.EraseRecord) error {
	if len(records) == 0 {
		return nil
	}
	for _, r := range records {
		if r == nil || r.Reason == "" {
			return storage.ErrInvalidInput
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO erase_audit (
			signature, timestamp, swapper, protocol, reason, detail, deltas_json, created_at
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range records {
		err = batch.Append(
			r.Signature, r.Timestamp, r.Swapper, r.Protocol,
			r.Reason, r.Detail, r.DeltasJSON, r.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetBySignature retrieves all rejections for a signature, ordered by timestamp ASC.
func (s *EraseAuditStore) GetBySignature(ctx context.Context, signature string) ([]*domain.EraseRecord, error) {
	query := `
		SELECT signature, timestamp, swapper, protocol, reason, detail, deltas_json, created_at
		FROM erase_audit
		WHERE signature = ?
		ORDER BY timestamp ASC
	`

	rows, err := s.conn.Query(ctx, query, signature)
	if err != nil {
		return nil, fmt.Errorf("query by signature: %w", err)
	}
	defer rows.Close()

	return scanEraseRecords(rows)
}

// CountByReason returns total rejections grouped by reason.
func (s *EraseAuditStore) CountByReason(ctx context.Context) (map[string]int64, error) {
	query := `
		SELECT reason, count(*) AS total
		FROM erase_audit
		GROUP BY reason
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query counts by reason: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var reason string
		var total uint64
		if err := rows.Scan(&reason, &total); err != nil {
			return nil, fmt.Errorf("scan reason count: %w", err)
		}
		counts[reason] = int64(total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reason counts: %w", err)
	}

	return counts, nil
}

// scanEraseRecords scans multiple rows into a slice of EraseRecord.
func scanEraseRecords(rows driver.Rows) ([]*domain.EraseRecord, error) {
	var records []*domain.EraseRecord

	for rows.Next() {
		var r domain.EraseRecord
		err := rows.Scan(
			&r.Signature, &r.Timestamp, &r.Swapper, &r.Protocol,
			&r.Reason, &r.Detail, &r.DeltasJSON, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan erase row: %w", err)
		}
		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate erase rows: %w", err)
	}

	return records, nil
}
