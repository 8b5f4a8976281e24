package driven

import "context"

// MirrorPublisher publishes a finished document to the secondary note
// service. Publishing is one-shot and independent of the edit session; it is
// only invoked after a successful upload to the primary store.
type MirrorPublisher interface {
	// Publish converts the storage-format content to plain paragraphs,
	// chunks it, and creates one mirror page carrying the title and an
	// optional link back to the origin page. Returns the mirror page URL.
	// Fails with domain.ErrPublishFailed; never retried.
	Publish(ctx context.Context, title, content, originURL string) (string, error)
}
