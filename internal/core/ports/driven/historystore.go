package driven

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// HistoryStore records a local ledger of remote actions (commits, creations,
// uploads, mirror publishes). Only metadata is stored, never page content.
// This is an optional service - when nil, nothing is recorded.
type HistoryStore interface {
	// Record appends an entry to the ledger.
	Record(ctx context.Context, entry domain.HistoryEntry) error

	// List returns the most recent entries, newest first.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Close releases resources.
	Close() error
}
