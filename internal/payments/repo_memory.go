package payments

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu       sync.Mutex
	payments map[string]Payment
	byTxID   map[string]string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		payments: make(map[string]Payment),
		byTxID:   make(map[string]string),
	}
}

func (r *MemoryRepo) Insert(ctx context.Context, p Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byTxID[p.TransactionID]; dup {
		return ErrDuplicateTransaction
	}
	r.payments[p.ID] = p
	r.byTxID[p.TransactionID] = p.ID
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (Payment, error) {
	if err := ctx.Err(); err != nil {
		return Payment{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return Payment{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) List(ctx context.Context, status Status) ([]Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Payment, 0, len(r.payments))
	for _, p := range r.payments {
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Transition(ctx context.Context, id string, to Status) (Payment, bool, error) {
	if err := ctx.Err(); err != nil {
		return Payment{}, false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return Payment{}, false, ErrNotFound
	}
	next, changed, err := applyTransition(p, to)
	if err != nil {
		return p, false, err
	}
	r.payments[id] = next
	return next, changed, nil
}
