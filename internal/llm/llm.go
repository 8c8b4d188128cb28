package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for resume text suggestions.
type Client interface {
	Rephrase(ctx context.Context, input RephraseInput) (string, error)
}

// RephraseInput captures the text to rewrite and optional context about where
// it appears in the resume.
type RephraseInput struct {
	Text    string
	Section string
}

var (
	// ErrProvider wraps every failure caused by the upstream provider.
	ErrProvider = errors.New("llm provider error")
	// ErrNotImplemented is returned by the placeholder client.
	ErrNotImplemented = errors.New("LLM not implemented")
)

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// Rephrase returns ErrNotImplemented wrapped as a provider error.
func (PlaceholderClient) Rephrase(ctx context.Context, input RephraseInput) (string, error) {
	return "", errors.Join(ErrProvider, ErrNotImplemented)
}
