// Package notion mirrors published documents into a Notion database.
package notion

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jomei/notionapi"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// Ensure Publisher implements the interface.
var _ driven.MirrorPublisher = (*Publisher)(nil)

// maxBlocksPerCreate is the API limit on children in a single page create.
const maxBlocksPerCreate = 100

// Config holds configuration for the mirror publisher.
type Config struct {
	// APIKey is the integration token (required).
	APIKey string

	// DatabaseID is the target database new pages are created in (required).
	DatabaseID string

	// RelationID is an optional related page linked from every mirror entry
	// via the Resource property.
	RelationID string

	// HTTPClient overrides the transport. Useful for tests.
	HTTPClient *http.Client
}

// Publisher creates database entries that mirror published wiki pages.
type Publisher struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
	relationID string
}

// NewPublisher creates a new mirror publisher.
func NewPublisher(cfg Config) (*Publisher, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("notion: API key is required")
	}
	if cfg.DatabaseID == "" {
		return nil, fmt.Errorf("notion: database ID is required")
	}

	opts := []notionapi.ClientOption{}
	if cfg.HTTPClient != nil {
		opts = append(opts, notionapi.WithHTTPClient(cfg.HTTPClient))
	}

	return &Publisher{
		client:     notionapi.NewClient(notionapi.Token(cfg.APIKey), opts...),
		databaseID: notionapi.DatabaseID(cfg.DatabaseID),
		relationID: cfg.RelationID,
	}, nil
}

// Publish creates a database entry holding the flattened document text.
// originURL, when set, is stored on the entry as a backlink to the wiki
// page. Returns the created entry's URL.
func (p *Publisher) Publish(ctx context.Context, title, content, originURL string) (string, error) {
	properties := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: []notionapi.RichText{{Text: &notionapi.Text{Content: title}}},
		},
		"Status": notionapi.StatusProperty{
			Status: notionapi.Option{Name: "Published"},
		},
	}
	if originURL != "" {
		properties["URL"] = notionapi.URLProperty{URL: originURL}
	}
	if p.relationID != "" {
		properties["Resource"] = notionapi.RelationProperty{
			Relation: []notionapi.Relation{{ID: notionapi.PageID(p.relationID)}},
		}
	}

	chunks := ChunkText(FlattenHTML(content))
	if len(chunks) > maxBlocksPerCreate {
		logger.Warn("notion: truncating mirror body from %d to %d blocks", len(chunks), maxBlocksPerCreate)
		chunks = chunks[:maxBlocksPerCreate]
	}

	children := make([]notionapi.Block, 0, len(chunks))
	for _, chunk := range chunks {
		children = append(children, notionapi.ParagraphBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeParagraph,
			},
			Paragraph: notionapi.Paragraph{
				RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: chunk}}},
			},
		})
	}

	page, err := p.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: p.databaseID,
		},
		Properties: properties,
		Children:   children,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPublishFailed, err)
	}

	logger.Debug("notion: created mirror entry %s", page.ID)
	return page.URL, nil
}
