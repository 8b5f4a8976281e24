// Package confluence provides a typed client for the wiki's page-oriented
// content REST API.
package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.DocumentStore = (*Client)(nil)

// Default configuration values.
const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// contentPath is the content collection endpoint.
	contentPath = "/wiki/rest/api/content"

	// storageRepresentation is the wire name of the storage body format.
	storageRepresentation = "storage"
)

// Config holds configuration for the Confluence client.
type Config struct {
	// BaseURL is the site base URL, e.g. https://example.atlassian.net (required).
	BaseURL string

	// Email is the account email for basic auth (required unless a proxy
	// transport injects credentials).
	Email string

	// APIToken is the API token paired with Email.
	APIToken string

	// SpaceKey scopes creation and search to one space (required).
	SpaceKey string

	// ParentID is the container page new pages are created under (required).
	ParentID string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// HTTPClient overrides the transport. Useful for tests and for
	// deployments that route through a credential-injecting proxy.
	HTTPClient *http.Client
}

// Client is a typed wrapper around the content REST API.
type Client struct {
	hc       *http.Client
	baseURL  string
	email    string
	apiToken string
	spaceKey string
	parentID string
	limiter  *RateLimiter
}

// NewClient creates a new Confluence client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("confluence: base URL is required")
	}
	if cfg.SpaceKey == "" {
		return nil, fmt.Errorf("confluence: space key is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		hc:       hc,
		baseURL:  cfg.BaseURL,
		email:    cfg.Email,
		apiToken: cfg.APIToken,
		spaceKey: cfg.SpaceKey,
		parentID: cfg.ParentID,
		limiter:  NewRateLimiter(),
	}, nil
}

// page is the content API page representation.
type page struct {
	ID        string       `json:"id,omitempty"`
	Type      string       `json:"type,omitempty"`
	Title     string       `json:"title"`
	Version   *pageVersion `json:"version,omitempty"`
	Body      *pageBody    `json:"body,omitempty"`
	Space     *spaceRef    `json:"space,omitempty"`
	Ancestors []ancestor   `json:"ancestors,omitempty"`
}

type pageVersion struct {
	Number int `json:"number"`
}

type pageBody struct {
	Storage *storageBody `json:"storage,omitempty"`
}

type storageBody struct {
	Value          string `json:"value"`
	Representation string `json:"representation,omitempty"`
}

type spaceRef struct {
	Key string `json:"key"`
}

type ancestor struct {
	ID string `json:"id"`
}

// searchResponse is the content listing envelope.
type searchResponse struct {
	Results []page `json:"results"`
}

// errorResponse is the store's error envelope.
type errorResponse struct {
	Message string `json:"message"`
}

// Fetch retrieves a page with its storage body and version.
func (c *Client) Fetch(ctx context.Context, id string) (*domain.Document, error) {
	endpoint := fmt.Sprintf("%s%s/%s?expand=body.storage,version", c.baseURL, contentPath, url.PathEscape(id))

	var p page
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &p); err != nil {
		return nil, fmt.Errorf("fetch page %s: %w", id, err)
	}

	doc := &domain.Document{DocumentRef: toRef(p)}
	if p.Body != nil && p.Body.Storage != nil {
		doc.Content = p.Body.Storage.Value
	}
	return doc, nil
}

// Create creates a page under the configured space and parent container.
func (c *Client) Create(ctx context.Context, title, content string) (domain.DocumentRef, error) {
	payload := page{
		Type:      "page",
		Title:     title,
		Space:     &spaceRef{Key: c.spaceKey},
		Ancestors: []ancestor{{ID: c.parentID}},
		Body:      &pageBody{Storage: &storageBody{Value: content, Representation: storageRepresentation}},
	}

	var p page
	if err := c.do(ctx, http.MethodPost, c.baseURL+contentPath, &payload, &p); err != nil {
		return domain.DocumentRef{}, fmt.Errorf("create page %q: %w", title, err)
	}
	return toRef(p), nil
}

// Update overwrites a page. The request always sends expectedVersion+1; the
// store rejects the write when its stored version has advanced past
// expectedVersion.
func (c *Client) Update(ctx context.Context, id, title, content string, expectedVersion int) (domain.DocumentRef, error) {
	payload := page{
		Type:    "page",
		Title:   title,
		Version: &pageVersion{Number: expectedVersion + 1},
		Body:    &pageBody{Storage: &storageBody{Value: content, Representation: storageRepresentation}},
	}

	endpoint := fmt.Sprintf("%s%s/%s", c.baseURL, contentPath, url.PathEscape(id))
	var p page
	if err := c.do(ctx, http.MethodPut, endpoint, &payload, &p); err != nil {
		return domain.DocumentRef{}, fmt.Errorf("update page %s: %w", id, err)
	}
	return toRef(p), nil
}

// Delete removes a page.
func (c *Client) Delete(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("%s%s/%s", c.baseURL, contentPath, url.PathEscape(id))
	if err := c.do(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("delete page %s: %w", id, err)
	}
	return nil
}

// SearchByTitle finds pages with an exact title in the configured space.
func (c *Client) SearchByTitle(ctx context.Context, title string) ([]domain.DocumentRef, error) {
	endpoint := fmt.Sprintf("%s%s?title=%s&spaceKey=%s&expand=version",
		c.baseURL, contentPath, url.QueryEscape(title), url.QueryEscape(c.spaceKey))

	var resp searchResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", title, err)
	}

	refs := make([]domain.DocumentRef, 0, len(resp.Results))
	for _, p := range resp.Results {
		refs = append(refs, toRef(p))
	}
	return refs, nil
}

// do sends one request and decodes the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, endpoint string, payload, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var body io.Reader = http.NoBody
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.email != "" {
		req.SetBasicAuth(c.email, c.apiToken)
	}

	logger.Debug("confluence: %s %s", method, endpoint)
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.RecordRateLimitError(retryAfterSeconds(resp))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.wrapStatus(resp.StatusCode, endpoint, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// wrapStatus maps store status codes to domain errors, falling back to a
// typed APIError for everything else.
func (c *Client) wrapStatus(status int, endpoint string, raw []byte) error {
	var envelope errorResponse
	_ = json.Unmarshal(raw, &envelope)
	message := envelope.Message
	if message == "" {
		message = http.StatusText(status)
	}

	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrConflict, message)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrValidation, message)
	default:
		return &APIError{StatusCode: status, Message: message, URL: endpoint}
	}
}

func retryAfterSeconds(resp *http.Response) int {
	var seconds int
	_, _ = fmt.Sscanf(resp.Header.Get("Retry-After"), "%d", &seconds)
	return seconds
}

func toRef(p page) domain.DocumentRef {
	ref := domain.DocumentRef{ID: p.ID, Title: p.Title, Version: 1}
	if p.Version != nil {
		ref.Version = p.Version.Number
	}
	return ref
}
