package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
	"github.com/inkwell-labs/inkwell-cli/internal/notes"
)

// Ensure NotesService implements the interface.
var _ driving.NotesService = (*NotesService)(nil)

// DefaultOptimizeRetries bounds the raw-completion retries for the optimize
// call.
const DefaultOptimizeRetries = 3

// jsonObjectPattern extracts the first JSON object from a model reply that
// may be wrapped in prose or fences.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// NotesService implements the daily meeting notes workflow.
type NotesService struct {
	store    driven.DocumentStore
	rewriter driven.Rewriter
	mirror   driven.MirrorPublisher
	history  driven.HistoryStore
	now      func() time.Time
	retries  int
}

// NewNotesService creates a new meeting notes service. The mirror publisher
// and history store may be nil.
func NewNotesService(
	store driven.DocumentStore,
	rewriter driven.Rewriter,
	mirror driven.MirrorPublisher,
	history driven.HistoryStore,
) *NotesService {
	return &NotesService{
		store:    store,
		rewriter: rewriter,
		mirror:   mirror,
		history:  history,
		now:      time.Now,
		retries:  DefaultOptimizeRetries,
	}
}

// Optimize asks the model to tidy the parsed sections into terse bullet
// items. The reply must be a JSON object keyed by section; a reply that
// cannot be parsed fails with domain.ErrUnparsableReply so the caller can
// decide to fall back to the unoptimised input.
func (s *NotesService) Optimize(ctx context.Context, sections notes.Sections) (notes.Sections, error) {
	prompt, err := buildOptimizePrompt(sections)
	if err != nil {
		return nil, err
	}

	reply, err := s.rewriter.Complete(ctx, prompt, s.retries)
	if err != nil {
		return nil, fmt.Errorf("optimize notes: %w", err)
	}

	match := jsonObjectPattern.FindString(reply)
	if match == "" {
		return nil, fmt.Errorf("%w: no JSON object in reply", domain.ErrUnparsableReply)
	}

	var optimised map[string][]string
	if err := json.Unmarshal([]byte(match), &optimised); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparsableReply, err)
	}

	// Merge only known sections; anything else the model invented is dropped.
	result := make(notes.Sections, len(notes.SectionKeys))
	for _, key := range notes.SectionKeys {
		if items, ok := optimised[key]; ok {
			result[key] = items
		} else {
			result[key] = sections[key]
		}
	}
	return result, nil
}

// Upload writes the rendered notes to the store, updating an existing page
// with the exact same title when one is found.
func (s *NotesService) Upload(ctx context.Context, title, content string) (string, bool, error) {
	existing, err := s.store.SearchByTitle(ctx, title)
	if err != nil {
		return "", false, fmt.Errorf("search notes page: %w", err)
	}

	var pageID string
	updated := false
	if len(existing) > 0 {
		page := existing[0]
		if _, err := s.store.Update(ctx, page.ID, title, content, page.Version); err != nil {
			return "", false, fmt.Errorf("update notes page: %w", err)
		}
		pageID = page.ID
		updated = true
	} else {
		ref, err := s.store.Create(ctx, title, content)
		if err != nil {
			return "", false, fmt.Errorf("create notes page: %w", err)
		}
		pageID = ref.ID
	}

	url := s.store.PageURL(pageID)
	s.record(ctx, domain.ActionDaily, pageID, title, url)
	return url, updated, nil
}

// Mirror publishes a copy to the secondary note service.
func (s *NotesService) Mirror(ctx context.Context, title, content, originURL string) (string, error) {
	if s.mirror == nil {
		return "", domain.ErrMirrorNotConfigured
	}
	url, err := s.mirror.Publish(ctx, title, content, originURL)
	if err != nil {
		return "", err
	}
	s.record(ctx, domain.ActionMirror, "", title, url)
	return url, nil
}

func buildOptimizePrompt(sections notes.Sections) (string, error) {
	payload, err := json.MarshalIndent(sections, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sections: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are a capable project manager. Tidy the meeting notes below into terse bullet items.\n")
	b.WriteString("Rules: noun-phrase style, one item per line, format `- **Topic:** detail`.\n")
	b.WriteString("Reply ONLY with a JSON object using exactly these keys:\n{")
	for i, key := range notes.SectionKeys {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%q:[]", key)
	}
	b.WriteString("}\n\nInput:\n")
	b.Write(payload)
	return b.String(), nil
}

func (s *NotesService) record(ctx context.Context, action domain.HistoryAction, pageID, title, url string) {
	if s.history == nil {
		return
	}
	entry := domain.HistoryEntry{
		ID:        uuid.NewString(),
		Action:    action,
		PageID:    pageID,
		Title:     title,
		URL:       url,
		CreatedAt: s.now(),
	}
	if err := s.history.Record(ctx, entry); err != nil {
		logger.Warn("failed to record history: %v", err)
	}
}
