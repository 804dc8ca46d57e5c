package llm

import (
	"context"
	"errors"
)

var (
	// ErrMissingAPIKey means the provider was never configured. Surfaced to the
	// user immediately, never retried.
	ErrMissingAPIKey = errors.New("AI provider API key is missing")

	ErrEmptyCompletion = errors.New("AI provider returned an empty completion")
)

// Client issues a single completion request against a generative text
// provider. Implementations do not retry; callers decide fallback policy.
type Client interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Unconfigured stands in for a provider with no API key. Every call fails
// with ErrMissingAPIKey so the error surfaces per-request instead of at boot.
type Unconfigured struct{}

func (Unconfigured) Complete(context.Context, string, string) (string, error) {
	return "", ErrMissingAPIKey
}
