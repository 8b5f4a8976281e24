// Package driving provides interfaces for application entry points
// (primary/inbound ports).
package driving

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// EditorService drives one AI-assisted edit session over a remote page.
//
// A session is created per editing workflow and lives entirely in memory.
// Operations are strictly sequential: a call made while another is in flight
// fails with domain.ErrSessionBusy. Terminal states reject all transitions
// with domain.ErrSessionClosed.
type EditorService interface {
	// Load resolves a page reference, fetches the original, and creates a
	// staging copy with identical content. Moves the session from empty to
	// loaded. Any failure leaves the session empty with no partial state.
	Load(ctx context.Context, reference string) (*domain.Document, error)

	// Apply runs one edit instruction through the rewriter and persists the
	// result to the staging copy. The in-memory content is authoritative: it
	// is kept even when the staging write fails, and only the error is
	// surfaced.
	Apply(ctx context.Context, instruction string) error

	// Commit re-fetches the original to obtain its current version, writes
	// the session content back to it, and deletes the staging copy
	// (best-effort). Returns the original page URL. On update failure the
	// session stays editable and staging is preserved as a recovery point.
	Commit(ctx context.Context) (string, error)

	// Abandon closes the session without committing. No network call is
	// made; the staging copy is left behind.
	Abandon() error

	// State returns the current lifecycle state.
	State() domain.SessionState

	// Content returns the latest accepted rewrite, or the original content
	// before any edit.
	Content() string

	// Instructions returns every instruction issued this session, oldest
	// first.
	Instructions() []string
}
