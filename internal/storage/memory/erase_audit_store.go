package memory

import (
	"context"
	"sort"
	"sync"

	"solana-swap-classifier/internal/domain"
	"solana-swap-classifier/internal/storage"
)

// EraseAuditStore is an in-memory implementation of storage.EraseAuditStore.
// It mirrors the analytical backend's semantics: appends never fail on
// duplicates.
type EraseAuditStore struct {
	mu   sync.RWMutex
	rows []*domain.EraseRecord
}

// NewEraseAuditStore creates a new in-memory erase audit store.
func NewEraseAuditStore() *EraseAuditStore {
	return &EraseAuditStore{}
}

// Compile-time interface check.
var _ storage.EraseAuditStore = (*EraseAuditStore)(nil)

// Insert appends one rejection row.
func (s *EraseAuditStore) Insert(_ context.Context, r *domain.EraseRecord) error {
	if r == nil || r.Reason == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *r
	s.rows = append(s.rows, &cp)
	return nil
}

// InsertBulk appends multiple rejection rows.
func (s *EraseAuditStore) InsertBulk(_ context.Context, records []*domain.EraseRecord) error {
	if len(records) == 0 {
		return nil
	}
	for _, r := range records {
		if r == nil || r.Reason == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		cp := *r
		s.rows = append(s.rows, &cp)
	}
	return nil
}

// GetBySignature retrieves all rejections recorded for a signature.
func (s *EraseAuditStore) GetBySignature(_ context.Context, signature string) ([]*domain.EraseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.EraseRecord
	for _, r := range s.rows {
		if r.Signature == signature {
			cp := *r
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp < result[j].Timestamp
	})
	return result, nil
}

// CountByReason returns total rejections grouped by reason.
func (s *EraseAuditStore) CountByReason(_ context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, r := range s.rows {
		counts[r.Reason]++
	}
	return counts, nil
}
