// Package memory provides an in-memory history store, used when no ledger
// path is configured and as a test double.
package memory

import (
	"context"
	"sync"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore keeps publish history in memory, newest first.
type HistoryStore struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
}

// NewHistoryStore creates an empty in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Record appends an entry.
func (s *HistoryStore) Record(_ context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.HistoryEntry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, s.entries[i])
	}
	return out, nil
}

// Close is a no-op.
func (s *HistoryStore) Close() error {
	return nil
}
