package resumes

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("resume not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Repo persists resumes. Every lookup is scoped to the owner so that other
// users' records behave as missing.
type Repo interface {
	Create(ctx context.Context, r Resume) error
	Get(ctx context.Context, userID, id string) (Resume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
	Update(ctx context.Context, r Resume) error
	Delete(ctx context.Context, userID, id string) error
}
