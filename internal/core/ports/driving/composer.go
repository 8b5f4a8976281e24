package driving

import "context"

// ComposerService drives the new-document workflow: rewrite raw input into
// storage-format markup, create the page, and optionally mirror it.
type ComposerService interface {
	// Generate transforms raw content under an optional instruction. An
	// empty instruction falls back to a generic formatting prompt.
	Generate(ctx context.Context, instruction, content string) (string, error)

	// Upload creates the page in the document store and returns its URL.
	Upload(ctx context.Context, title, content string) (string, error)

	// Mirror publishes a copy to the secondary note service and returns the
	// mirror URL. Fails with domain.ErrMirrorNotConfigured when no mirror
	// credentials are set.
	Mirror(ctx context.Context, title, content, originURL string) (string, error)
}
