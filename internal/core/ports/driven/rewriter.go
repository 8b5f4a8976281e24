package driven

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// Rewriter wraps the generative-text service used to transform documents.
//
// All methods return the model output as storage-format markup with any
// enclosing code fences already stripped.
type Rewriter interface {
	// Rewrite transforms content under a single instruction with no prior
	// context. Fails with domain.ErrEmptyCompletion when the service returns
	// no usable output.
	Rewrite(ctx context.Context, instruction, content string) (string, error)

	// RewriteWithHistory transforms content under an instruction, replaying
	// the supplied turns verbatim as conversational context. The new user
	// turn is built from the current content and instruction via
	// domain.EditPrompt. Same failure modes as Rewrite.
	RewriteWithHistory(ctx context.Context, instruction, content string, history []domain.Turn) (string, error)

	// Complete runs a raw, non-document prompt. Transient failures
	// (rate-limited, server error, unavailable) are retried with exponential
	// backoff up to maxRetries attempts; exhaustion fails with
	// domain.ErrRetryExhausted.
	Complete(ctx context.Context, prompt string, maxRetries int) (string, error)
}
