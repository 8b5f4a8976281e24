package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested page does not exist in the store.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference indicates a page reference could not be resolved
	// to an id (neither a numeric id nor a page URL).
	ErrInvalidReference = errors.New("invalid page reference")

	// ErrConflict indicates the store rejected a write because its stored
	// version advanced past what the caller expected. Never retried
	// automatically; merging is the user's problem.
	ErrConflict = errors.New("version conflict")

	// ErrValidation indicates the store rejected a page payload.
	ErrValidation = errors.New("payload rejected by store")

	// ErrEmptyCompletion indicates the rewrite service returned no usable
	// output (blocked, filtered, or an empty candidate).
	ErrEmptyCompletion = errors.New("empty completion")

	// ErrRetryExhausted indicates the raw-completion path gave up after the
	// caller-supplied maximum number of attempts.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrPublishFailed indicates the mirror note service rejected a page.
	ErrPublishFailed = errors.New("mirror publish failed")

	// ErrMirrorNotConfigured indicates no mirror service credentials are set.
	ErrMirrorNotConfigured = errors.New("mirror service not configured")

	// Edit-session errors.

	// ErrSessionBusy indicates another operation is in flight on the session.
	// Session fields are mutated without synchronisation, so concurrent
	// load/apply/commit calls are rejected rather than queued.
	ErrSessionBusy = errors.New("session operation already in flight")

	// ErrSessionClosed indicates the session reached a terminal state
	// (committed or abandoned) and accepts no further transitions.
	ErrSessionClosed = errors.New("session is closed")

	// ErrNotLoaded indicates an operation that requires a loaded page was
	// called on an empty session.
	ErrNotLoaded = errors.New("no page loaded")

	// ErrAlreadyLoaded indicates Load was called twice on one session.
	ErrAlreadyLoaded = errors.New("page already loaded")

	// ErrEmptyInstruction indicates an edit was requested with a blank
	// instruction.
	ErrEmptyInstruction = errors.New("empty edit instruction")

	// ErrUnparsableReply indicates the model's reply to a structured task
	// could not be parsed. The caller decides whether to fall back to the
	// unoptimised input.
	ErrUnparsableReply = errors.New("unparsable model reply")
)
