package rephrase

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/validation"
)

const defaultMaxChars = 2000

var (
	ErrEmptyText = errors.New("text is required")
	ErrTooLong   = errors.New("text is too long")
)

// Service turns resume text into an AI suggestion.
type Service struct {
	LLM      llm.Client
	MaxChars int

	now func() time.Time
}

// NewService constructs a Service; maxChars <= 0 uses the default bound.
func NewService(client llm.Client, maxChars int) *Service {
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}
	return &Service{LLM: client, MaxChars: maxChars}
}

// Rephrase sanitizes text and asks the provider for a rewrite.
func (s *Service) Rephrase(ctx context.Context, userID, text, section string) (string, error) {
	clean := validation.SanitizeText(text)
	if clean == "" {
		metrics.ObserveRephrase("rejected", 0)
		return "", ErrEmptyText
	}
	if utf8.RuneCountInString(clean) > s.maxChars() {
		metrics.ObserveRephrase("rejected", 0)
		return "", fmt.Errorf("%w: limit is %d characters", ErrTooLong, s.maxChars())
	}

	client := s.LLM
	if client == nil {
		client = llm.PlaceholderClient{}
	}

	start := s.clock()
	suggestion, err := client.Rephrase(ctx, llm.RephraseInput{Text: clean, Section: validation.SanitizeText(section)})
	elapsed := s.clock().Sub(start)
	if err != nil {
		metrics.ObserveRephrase("provider_error", elapsed)
		telemetry.Warn("rephrase.failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		if !errors.Is(err, llm.ErrProvider) {
			err = fmt.Errorf("%w: %v", llm.ErrProvider, err)
		}
		return "", err
	}

	metrics.ObserveRephrase("ok", elapsed)
	telemetry.Info("rephrase.completed", map[string]any{
		"user_id":     userID,
		"input_chars": utf8.RuneCountInString(clean),
		"duration_ms": elapsed.Milliseconds(),
	})
	return suggestion, nil
}

func (s *Service) maxChars() int {
	if s.MaxChars <= 0 {
		return defaultMaxChars
	}
	return s.MaxChars
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
