// Package llm is the narrow interface the recommender uses to talk to a
// language model, plus the shared breaker wrapper.
package llm

import (
	"context"
	"errors"
)

// Client completes a single user prompt and returns the model's text reply.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM not configured")

// PlaceholderClient stands in when no provider is configured; callers fall
// back to deterministic ranking.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}
