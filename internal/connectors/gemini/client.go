// Package gemini provides a typed client for the generative-text service's
// generateContent endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Rewriter = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel      = "gemini-2.5-flash"
	DefaultTimeout    = 120 * time.Second
	DefaultRetryDelay = time.Second
)

// systemPreamble fixes the required output shape for document rewrites:
// structural markup only, no enclosing code fence.
const systemPreamble = "You are a helpful assistant for wiki documentation.\n" +
	"OUTPUT FORMAT: Return ONLY standard HTML suitable for the wiki storage format. " +
	"Do not include markdown code blocks. Use headings, tables, bold, and lists where appropriate."

// Config holds configuration for the rewrite client.
type Config struct {
	// APIKey is the service API key (required unless a proxy transport
	// injects credentials).
	APIKey string

	// BaseURL is the API base URL (default: the public endpoint).
	BaseURL string

	// Model is the generation model (default: gemini-2.5-flash).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// RetryDelay is the base backoff delay for the raw-completion path
	// (default: 1s). The actual delay is RetryDelay * 2^attempt.
	RetryDelay time.Duration

	// HTTPClient overrides the transport. Useful for tests and proxies.
	HTTPClient *http.Client
}

// Client is a typed wrapper around the generateContent endpoint.
type Client struct {
	hc         *http.Client
	baseURL    string
	apiKey     string
	model      string
	retryDelay time.Duration
}

// NewClient creates a new rewrite client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		hc:         hc,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// generateRequest is the generateContent request format.
type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
}

// content is one conversational turn.
type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the generateContent response format.
type generateResponse struct {
	Candidates     []candidate     `json:"candidates"`
	PromptFeedback *promptFeedback `json:"promptFeedback,omitempty"`
}

type candidate struct {
	Content      *content `json:"content,omitempty"`
	FinishReason string   `json:"finishReason,omitempty"`
}

type promptFeedback struct {
	BlockReason string `json:"blockReason,omitempty"`
}

// Rewrite transforms content under a single instruction. With no prior
// turns the preamble is inlined into the one user turn.
func (c *Client) Rewrite(ctx context.Context, instruction, doc string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nCONTEXT:\n%s\n\nINSTRUCTION:\n%s", systemPreamble, doc, instruction)
	req := generateRequest{
		Contents: []content{{Role: roleUser, Parts: []part{{Text: prompt}}}},
	}

	text, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}
	return StripFence(text), nil
}

// RewriteWithHistory transforms content under an instruction with the
// supplied turns replayed verbatim. The history already establishes context,
// so the preamble travels in the separate system-instruction field instead
// of being inlined.
func (c *Client) RewriteWithHistory(ctx context.Context, instruction, doc string, history []domain.Turn) (string, error) {
	contents := make([]content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, content{Role: toRole(turn.Speaker), Parts: []part{{Text: turn.Text}}})
	}
	contents = append(contents, content{
		Role:  roleUser,
		Parts: []part{{Text: domain.EditPrompt(doc, instruction)}},
	})

	req := generateRequest{
		Contents:          contents,
		SystemInstruction: &content{Parts: []part{{Text: systemPreamble}}},
	}

	text, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}
	return StripFence(text), nil
}

// Complete runs a raw prompt, retrying transient failures (429, 500, 503)
// with exponential backoff up to maxRetries attempts.
func (c *Client) Complete(ctx context.Context, prompt string, maxRetries int) (string, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		text, status, err := c.send(ctx, req)
		if err != nil {
			return "", err
		}
		if status == http.StatusOK {
			if text == "" {
				return "", fmt.Errorf("gemini: %w", domain.ErrEmptyCompletion)
			}
			return text, nil
		}

		if !retryable(status) {
			return "", &APIError{StatusCode: status}
		}
		if attempt == maxRetries-1 {
			break
		}

		delay := c.retryDelay * (1 << attempt)
		logger.Debug("gemini: status %d, retrying in %s (attempt %d/%d)", status, delay, attempt+1, maxRetries)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	return "", fmt.Errorf("gemini: %w after %d attempts", domain.ErrRetryExhausted, maxRetries)
}

// generate sends one request and fails on any non-OK status or empty output.
func (c *Client) generate(ctx context.Context, req generateRequest) (string, error) {
	text, status, err := c.sendParsed(ctx, req)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &APIError{StatusCode: status}
	}
	return text.usableText()
}

// parsedReply carries the decoded response for empty-output classification.
type parsedReply struct {
	resp generateResponse
}

// usableText extracts candidates[0].content.parts[0].text, mapping missing
// output to domain.ErrEmptyCompletion with the service's stated reason.
func (r parsedReply) usableText() (string, error) {
	if len(r.resp.Candidates) > 0 {
		cand := r.resp.Candidates[0]
		if cand.Content != nil && len(cand.Content.Parts) > 0 && cand.Content.Parts[0].Text != "" {
			return cand.Content.Parts[0].Text, nil
		}
	}
	return "", fmt.Errorf("gemini: %w (reason: %s)", domain.ErrEmptyCompletion, r.blockReason())
}

func (r parsedReply) blockReason() string {
	if len(r.resp.Candidates) > 0 && r.resp.Candidates[0].FinishReason != "" {
		return r.resp.Candidates[0].FinishReason
	}
	if r.resp.PromptFeedback != nil && r.resp.PromptFeedback.BlockReason != "" {
		return r.resp.PromptFeedback.BlockReason
	}
	return "unknown"
}

// send posts the request and returns the first candidate text with the
// response status. Transport and decode failures are returned as errors;
// HTTP-level failures are left to the caller via status.
func (c *Client) send(ctx context.Context, req generateRequest) (string, int, error) {
	reply, status, err := c.sendParsed(ctx, req)
	if err != nil {
		return "", 0, err
	}
	if status != http.StatusOK {
		return "", status, nil
	}
	if len(reply.resp.Candidates) > 0 {
		cand := reply.resp.Candidates[0]
		if cand.Content != nil && len(cand.Content.Parts) > 0 {
			return cand.Content.Parts[0].Text, status, nil
		}
	}
	return "", status, nil
}

func (c *Client) sendParsed(ctx context.Context, req generateRequest) (parsedReply, int, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return parsedReply{}, 0, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return parsedReply{}, 0, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json; charset=utf-8")

	logger.Debug("gemini: POST %s (%d turns)", c.model, len(req.Contents))
	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return parsedReply{}, 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return parsedReply{}, 0, fmt.Errorf("read response: %w", err)
	}

	var reply parsedReply
	if resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(raw, &reply.resp); err != nil {
			return parsedReply{}, 0, fmt.Errorf("decode response: %w", err)
		}
	}
	return reply, resp.StatusCode, nil
}

// retryable reports whether a status code marks a transient failure.
func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusServiceUnavailable:
		return true
	}
	return false
}

// Role names on the wire.
const (
	roleUser  = "user"
	roleModel = "model"
)

func toRole(speaker domain.Speaker) string {
	if speaker == domain.SpeakerAssistant {
		return roleModel
	}
	return roleUser
}

// StripFence removes a leading ```html (or bare ```) fence and a trailing
// ``` fence wrapping the model output. The content between is returned
// unchanged.
func StripFence(s string) string {
	out := strings.TrimSpace(s)
	for _, prefix := range []string{"```html", "```"} {
		if strings.HasPrefix(out, prefix) {
			out = strings.TrimPrefix(out, prefix)
			break
		}
	}
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}
