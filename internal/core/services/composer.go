package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driving"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// Ensure ComposerService implements the interface.
var _ driving.ComposerService = (*ComposerService)(nil)

// defaultComposeInstruction is used when the user supplies no instruction.
const defaultComposeInstruction = "Format this document for the wiki."

// ComposerService implements the new-document workflow.
type ComposerService struct {
	store    driven.DocumentStore
	rewriter driven.Rewriter
	mirror   driven.MirrorPublisher
	history  driven.HistoryStore
	now      func() time.Time
}

// NewComposerService creates a new composer service. The mirror publisher and
// history store may be nil; the corresponding features degrade gracefully.
func NewComposerService(
	store driven.DocumentStore,
	rewriter driven.Rewriter,
	mirror driven.MirrorPublisher,
	history driven.HistoryStore,
) *ComposerService {
	return &ComposerService{
		store:    store,
		rewriter: rewriter,
		mirror:   mirror,
		history:  history,
		now:      time.Now,
	}
}

// Generate transforms raw content under an optional instruction.
func (s *ComposerService) Generate(ctx context.Context, instruction, content string) (string, error) {
	if instruction == "" {
		instruction = defaultComposeInstruction
	}
	result, err := s.rewriter.Rewrite(ctx, instruction, content)
	if err != nil {
		return "", fmt.Errorf("generate document: %w", err)
	}
	return result, nil
}

// Upload creates the page and returns its URL.
func (s *ComposerService) Upload(ctx context.Context, title, content string) (string, error) {
	ref, err := s.store.Create(ctx, title, content)
	if err != nil {
		return "", fmt.Errorf("create page: %w", err)
	}
	url := s.store.PageURL(ref.ID)
	s.record(ctx, domain.ActionCreate, ref.ID, title, url)
	return url, nil
}

// Mirror publishes a copy to the secondary note service.
func (s *ComposerService) Mirror(ctx context.Context, title, content, originURL string) (string, error) {
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

func (s *ComposerService) record(ctx context.Context, action domain.HistoryAction, pageID, title, url string) {
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
