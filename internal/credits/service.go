package credits

import (
	"context"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

type store interface {
	Balance(ctx context.Context, userID string) (int, error)
	Add(ctx context.Context, userID string, n int) (int, error)
	Deduct(ctx context.Context, userID string, n int, clamp bool) (int, error)
}

// Service manages per-user credit balances via an underlying store.
type Service struct {
	store store
}

// NewService constructs a Service with in-memory store.
func NewService() *Service {
	return &Service{store: newMemoryStore()}
}

// NewPostgresService constructs a Service backed by Postgres.
func NewPostgresService(pgStore store) *Service {
	return &Service{store: pgStore}
}

// Balance returns the user's current credits.
func (s *Service) Balance(ctx context.Context, userID string) (int, error) {
	return s.store.Balance(ctx, userID)
}

// Add grants n credits and returns the new balance.
func (s *Service) Add(ctx context.Context, userID string, n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidAmount
	}
	return s.store.Add(ctx, userID, n)
}

// Deduct consumes n credits, failing with ErrInsufficientCredits when the
// balance is short. The balance is unchanged on failure.
func (s *Service) Deduct(ctx context.Context, userID string, n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidAmount
	}
	balance, err := s.store.Deduct(ctx, userID, n, false)
	if err != nil {
		return balance, err
	}
	metrics.AddCreditsDeducted(n)
	telemetry.Info("credits.deducted", map[string]any{"user_id": userID, "amount": n, "balance": balance})
	return balance, nil
}

// DeductClamped removes up to n credits, never driving the balance below zero.
func (s *Service) DeductClamped(ctx context.Context, userID string, n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidAmount
	}
	return s.store.Deduct(ctx, userID, n, true)
}
