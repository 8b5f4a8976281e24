// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// DocumentStore is a typed client for the remote page-oriented document API.
//
// Implementations must surface the store's optimistic-concurrency semantics
// unchanged: Update sends expectedVersion+1 on the wire and fails with
// domain.ErrConflict when the stored version has advanced. Nothing is retried
// automatically.
type DocumentStore interface {
	// Fetch retrieves a page with its content and version.
	// Fails with domain.ErrNotFound when the page does not exist.
	Fetch(ctx context.Context, id string) (*domain.Document, error)

	// Create creates a new page under the configured space and parent.
	// Fails with domain.ErrValidation when the store rejects the payload.
	Create(ctx context.Context, title, content string) (domain.DocumentRef, error)

	// Update overwrites a page at expectedVersion, sending expectedVersion+1.
	// Fails with domain.ErrConflict when the stored version has moved on.
	Update(ctx context.Context, id, title, content string, expectedVersion int) (domain.DocumentRef, error)

	// Delete removes a page. Callers may treat failures as best-effort.
	Delete(ctx context.Context, id string) error

	// SearchByTitle finds pages with an exact title within the configured
	// space. An empty result is not an error.
	SearchByTitle(ctx context.Context, title string) ([]domain.DocumentRef, error)

	// ExtractID resolves a user-supplied reference (raw numeric id or page
	// URL) to a page id. Pure parsing, no network.
	ExtractID(reference string) (string, bool)

	// PageURL returns the canonical web URL for a page id.
	PageURL(id string) string
}
