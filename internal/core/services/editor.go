package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// Ensure EditorService implements the interface.
var _ driving.EditorService = (*EditorService)(nil)

// StagingPrefix marks staging copies so they are recognisable in the store
// if one is ever orphaned.
const StagingPrefix = "[draft]"

// EditorService owns one edit session: the original page reference, the
// staging copy, the rolling conversation window, and the instruction log.
//
// The staging copy is a backup artifact, not the source of truth: between
// writes the in-memory content is authoritative, and a failed staging write
// does not roll back the accepted rewrite. Staging must outlive every failed
// commit attempt; it is deleted only after the commit write succeeds.
type EditorService struct {
	store    driven.DocumentStore
	rewriter driven.Rewriter
	history  driven.HistoryStore

	now func() time.Time

	// mu is the in-flight-operation guard: session fields are mutated
	// without further synchronisation, so a second concurrent operation is
	// rejected rather than queued.
	mu sync.Mutex

	sessionID    string
	state        domain.SessionState
	original     domain.Document
	staging      domain.DocumentRef
	content      string
	instructions []string
	window       []domain.Exchange
	windowSize   int
}

// NewEditorService creates a session in the empty state. The history store
// may be nil, in which case commits are not recorded locally.
func NewEditorService(store driven.DocumentStore, rewriter driven.Rewriter, history driven.HistoryStore) *EditorService {
	return &EditorService{
		store:      store,
		rewriter:   rewriter,
		history:    history,
		now:        time.Now,
		sessionID:  uuid.NewString(),
		state:      domain.SessionEmpty,
		windowSize: domain.DefaultWindowSize,
	}
}

// Load resolves reference, fetches the original page, and creates the staging
// copy. On any failure the session stays empty with no partial state.
func (s *EditorService) Load(ctx context.Context, reference string) (*domain.Document, error) {
	if !s.mu.TryLock() {
		return nil, domain.ErrSessionBusy
	}
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return nil, domain.ErrSessionClosed
	}
	if s.state != domain.SessionEmpty {
		return nil, domain.ErrAlreadyLoaded
	}

	id, ok := s.store.ExtractID(reference)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidReference, reference)
	}

	original, err := s.store.Fetch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch original: %w", err)
	}

	stagingTitle := fmt.Sprintf("%s %s - %s", StagingPrefix, original.Title, s.now().Format("2006-01-02 15:04"))
	staging, err := s.store.Create(ctx, stagingTitle, original.Content)
	if err != nil {
		return nil, fmt.Errorf("create staging copy: %w", err)
	}
	logger.Debug("session %s: staged page %s as %s (v%d)", s.sessionID, original.ID, staging.ID, staging.Version)

	s.original = *original
	s.staging = staging
	s.content = original.Content
	s.state = domain.SessionLoaded
	return original, nil
}

// Apply runs one instruction through the rewriter and persists the accepted
// result to the staging copy. The exchange is appended to the sliding window
// before the staging write, so in-memory state survives a failed write and
// the next attempt builds on it.
func (s *EditorService) Apply(ctx context.Context, instruction string) error {
	if !s.mu.TryLock() {
		return domain.ErrSessionBusy
	}
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return domain.ErrSessionClosed
	}
	if s.state != domain.SessionLoaded && s.state != domain.SessionEditing {
		return domain.ErrNotLoaded
	}
	if strings.TrimSpace(instruction) == "" {
		return domain.ErrEmptyInstruction
	}

	history := BuildContext(s.original.Content, s.instructions, s.window)
	rewritten, err := s.rewriter.RewriteWithHistory(ctx, instruction, s.content, history)
	if err != nil {
		return fmt.Errorf("rewrite: %w", err)
	}

	s.window = append(s.window, domain.NewExchange(instruction, s.content, rewritten))
	if len(s.window) > s.windowSize {
		s.window = s.window[len(s.window)-s.windowSize:]
	}
	s.instructions = append(s.instructions, instruction)
	s.content = rewritten
	s.state = domain.SessionEditing

	updated, err := s.store.Update(ctx, s.staging.ID, StagingPrefix+" "+s.original.Title, rewritten, s.staging.Version)
	if err != nil {
		// The rewrite was accepted; only the backup write failed.
		return fmt.Errorf("stage content: %w", err)
	}
	s.staging.Version = updated.Version
	return nil
}

// Commit writes the session content back to the original page and deletes
// the staging copy. The original's version is always re-fetched first: this
// is the sole conflict-detection point, and a version cached at load time is
// never trusted for the final write.
func (s *EditorService) Commit(ctx context.Context) (string, error) {
	if !s.mu.TryLock() {
		return "", domain.ErrSessionBusy
	}
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return "", domain.ErrSessionClosed
	}
	if s.state != domain.SessionLoaded && s.state != domain.SessionEditing {
		return "", domain.ErrNotLoaded
	}

	latest, err := s.store.Fetch(ctx, s.original.ID)
	if err != nil {
		return "", fmt.Errorf("refetch original: %w", err)
	}

	if _, err := s.store.Update(ctx, s.original.ID, s.original.Title, s.content, latest.Version); err != nil {
		return "", fmt.Errorf("update original: %w", err)
	}

	// Staging is only cleanup at this point; an orphan is acceptable and
	// must not fail the commit.
	if err := s.store.Delete(ctx, s.staging.ID); err != nil {
		logger.Warn("session %s: failed to delete staging page %s: %v", s.sessionID, s.staging.ID, err)
	}

	s.state = domain.SessionCommitted
	url := s.store.PageURL(s.original.ID)
	s.record(ctx, url)
	return url, nil
}

// Abandon closes the session without committing. The staging copy is left
// behind as an orphan; no network call is made.
func (s *EditorService) Abandon() error {
	if !s.mu.TryLock() {
		return domain.ErrSessionBusy
	}
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return domain.ErrSessionClosed
	}
	if s.state != domain.SessionLoaded && s.state != domain.SessionEditing {
		return domain.ErrNotLoaded
	}

	s.state = domain.SessionAbandoned
	logger.Debug("session %s: abandoned, staging page %s orphaned", s.sessionID, s.staging.ID)
	return nil
}

// Accessors take the guard mutex outright: unlike operations they are safe
// to run at any time, so they wait for an in-flight operation instead of
// rejecting.

// State returns the current lifecycle state.
func (s *EditorService) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Content returns the latest accepted rewrite, or the original content
// before any edit.
func (s *EditorService) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// Instructions returns every instruction issued this session, oldest first.
func (s *EditorService) Instructions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.instructions))
	copy(out, s.instructions)
	return out
}

// Window returns the exchanges currently kept verbatim.
func (s *EditorService) Window() []domain.Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Exchange, len(s.window))
	copy(out, s.window)
	return out
}

// Original returns the loaded page reference.
func (s *EditorService) Original() domain.DocumentRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original.DocumentRef
}

// Staging returns the staging copy reference.
func (s *EditorService) Staging() domain.DocumentRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staging
}

func (s *EditorService) record(ctx context.Context, url string) {
	if s.history == nil {
		return
	}
	entry := domain.HistoryEntry{
		ID:           uuid.NewString(),
		Action:       domain.ActionCommit,
		PageID:       s.original.ID,
		Title:        s.original.Title,
		URL:          url,
		Instructions: len(s.instructions),
		CreatedAt:    s.now(),
	}
	if err := s.history.Record(ctx, entry); err != nil {
		logger.Warn("session %s: failed to record history: %v", s.sessionID, err)
	}
}
