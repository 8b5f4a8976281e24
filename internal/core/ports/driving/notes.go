package driving

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/notes"
)

// NotesService drives the daily meeting notes workflow.
type NotesService interface {
	// Optimize asks the model to tidy the parsed sections. A reply that
	// cannot be parsed fails with domain.ErrUnparsableReply; the caller
	// decides whether to fall back to the unoptimised input.
	Optimize(ctx context.Context, sections notes.Sections) (notes.Sections, error)

	// Upload writes the rendered notes to the store: if a page with the
	// exact title already exists it is updated at its current version,
	// otherwise a new page is created. Reports whether an existing page was
	// updated, and returns the page URL.
	Upload(ctx context.Context, title, content string) (url string, updated bool, err error)

	// Mirror publishes a copy to the secondary note service.
	Mirror(ctx context.Context, title, content, originURL string) (string, error)
}
