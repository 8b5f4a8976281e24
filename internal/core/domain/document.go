package domain

// DocumentRef identifies a stored wiki page together with its
// optimistic-concurrency version counter. The store supplies the version on
// every read; writers must send version+1 and re-fetch before a final commit.
type DocumentRef struct {
	// ID is the store-assigned page identifier.
	ID string

	// Title is the page title.
	Title string

	// Version is the optimistic-concurrency counter, starting at 1.
	Version int
}

// Document is a page reference plus its storage-format body.
// The body is opaque to the core; it is exchanged with the store and the
// rewriter as plain text.
type Document struct {
	DocumentRef

	// Content is the storage-format markup of the page.
	Content string
}
