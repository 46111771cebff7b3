// Package completion defines the text-completion collaborator: one prompt
// in, one full response out. No streaming, no retries; timeouts belong to
// the concrete service, not here.
package completion

import (
	"context"
	"errors"
)

// ErrNotConfigured reports a missing credential. Every call checks it before
// any network attempt, since the credential can disappear mid-session.
var ErrNotConfigured = errors.New("completion service not configured: missing API key")

// ErrService collapses network, auth, and rate-limit failures into one kind;
// the underlying cause stays attached via wrapping.
var ErrService = errors.New("completion service error")

// Client produces a completion for a prompt.
type Client interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Func adapts a plain function to the Client interface.
type Func func(ctx context.Context, prompt string, maxTokens int) (string, error)

func (f Func) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return f(ctx, prompt, maxTokens)
}
