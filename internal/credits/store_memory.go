package credits

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu       sync.Mutex
	balances map[string]int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{balances: make(map[string]int)}
}

func (s *memoryStore) Balance(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[userID], nil
}

func (s *memoryStore) Add(ctx context.Context, userID string, n int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[userID] += n
	return s.balances[userID], nil
}

func (s *memoryStore) Deduct(ctx context.Context, userID string, n int, clamp bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := deducted(s.balances[userID], n, clamp)
	if err != nil {
		return s.balances[userID], err
	}
	s.balances[userID] = next
	return next, nil
}

func deducted(balance, n int, clamp bool) (int, error) {
	if balance >= n {
		return balance - n, nil
	}
	if clamp {
		return 0, nil
	}
	return balance, ErrInsufficientCredits
}
