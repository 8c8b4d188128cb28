package payments

import "context"

type Repo interface {
	Insert(ctx context.Context, p Payment) error
	Get(ctx context.Context, id string) (Payment, error)
	List(ctx context.Context, status Status) ([]Payment, error)
	// Transition applies applyTransition atomically and returns the payment
	// after the call and whether it changed.
	Transition(ctx context.Context, id string, to Status) (Payment, bool, error)
}
