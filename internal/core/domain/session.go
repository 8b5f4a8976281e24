package domain

import "time"

// SessionState is the lifecycle state of an edit session.
//
// Sessions move Empty -> Loaded -> Editing* -> Committed, with Abandoned
// reachable from Loaded or Editing. Committed and Abandoned are terminal.
type SessionState string

const (
	// SessionEmpty is the initial state, before a page has been loaded.
	SessionEmpty SessionState = "empty"

	// SessionLoaded means the original page was fetched and a staging copy
	// exists, but no edit has been applied yet.
	SessionLoaded SessionState = "loaded"

	// SessionEditing means at least one edit has been applied.
	SessionEditing SessionState = "editing"

	// SessionCommitted means the content was written back to the original
	// page. Terminal.
	SessionCommitted SessionState = "committed"

	// SessionAbandoned means the user walked away without committing.
	// The staging copy is left behind as an orphan. Terminal.
	SessionAbandoned SessionState = "abandoned"
)

// Terminal reports whether no further transitions are allowed.
func (s SessionState) Terminal() bool {
	return s == SessionCommitted || s == SessionAbandoned
}

// HistoryAction classifies a history ledger entry.
type HistoryAction string

const (
	// ActionCommit records an edit session committed back to its original page.
	ActionCommit HistoryAction = "commit"

	// ActionCreate records a newly created page.
	ActionCreate HistoryAction = "create"

	// ActionDaily records a daily meeting notes upload.
	ActionDaily HistoryAction = "daily"

	// ActionMirror records a copy published to the mirror note service.
	ActionMirror HistoryAction = "mirror"
)

// HistoryEntry is one row in the local activity ledger. Only metadata is
// recorded, never document content.
type HistoryEntry struct {
	// ID is a unique entry identifier.
	ID string

	// Action classifies what happened.
	Action HistoryAction

	// PageID is the affected remote page, when known.
	PageID string

	// Title is the page title at the time of the action.
	Title string

	// URL is the resulting page URL, when known.
	URL string

	// Instructions is the number of edit instructions applied (commits only).
	Instructions int

	// CreatedAt is when the entry was recorded.
	CreatedAt time.Time
}
