package payments

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/credits"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/validation"
)

// Ledger is the credit operations payments need.
type Ledger interface {
	Add(ctx context.Context, userID string, n int) (int, error)
	DeductClamped(ctx context.Context, userID string, n int) (int, error)
}

type Service struct {
	Repo    Repo
	Credits Ledger
	now     func() time.Time
}

func NewService(repo Repo, ledger Ledger) *Service {
	return &Service{Repo: repo, Credits: ledger, now: time.Now}
}

// Record stores a pending manual payment and grants its credits right away.
// Reviewers may later revoke it, which takes the credits back.
func (s *Service) Record(ctx context.Context, userID string, in RecordInput) (Payment, int, error) {
	in.TransactionID = strings.TrimSpace(in.TransactionID)
	if err := validation.Struct(in); err != nil {
		return Payment{}, 0, err
	}
	if strings.TrimSpace(userID) == "" {
		return Payment{}, 0, errors.New("user id is required")
	}
	p := Payment{
		ID:            uuid.NewString(),
		UserID:        userID,
		TransactionID: in.TransactionID,
		Amount:        in.Amount,
		Status:        StatusPending,
		CreatedAt:     s.clock(),
	}
	p.UpdatedAt = p.CreatedAt

	var balance int
	var err error
	if pg, ok := s.Repo.(*PGRepo); ok && pg != nil && pg.DB != nil {
		balance, err = recordWithTx(ctx, pg.DB, p)
	} else {
		balance, err = s.recordSequential(ctx, p)
	}
	if err != nil {
		if errors.Is(err, ErrDuplicateTransaction) {
			metrics.IncPayment("duplicate")
		}
		return Payment{}, 0, err
	}
	metrics.IncPayment("recorded")
	telemetry.Info("payment.recorded", map[string]any{
		"payment_id": p.ID,
		"user_id":    userID,
		"amount":     p.Amount,
	})
	return p, balance, nil
}

// List returns payments newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status Status) ([]Payment, error) {
	return s.Repo.List(ctx, status)
}

// Confirm marks a payment as reviewed. Credits were already granted.
func (s *Service) Confirm(ctx context.Context, id string) (Payment, error) {
	p, changed, err := s.Repo.Transition(ctx, id, StatusConfirmed)
	if err != nil {
		return Payment{}, err
	}
	if changed {
		metrics.IncPayment("confirmed")
		telemetry.Info("payment.confirmed", map[string]any{"payment_id": id, "user_id": p.UserID})
	}
	return p, nil
}

// Revoke rejects a payment and deducts its amount from the owner, clamping
// the balance at zero. Revoking twice deducts once.
func (s *Service) Revoke(ctx context.Context, id string) (Payment, error) {
	var p Payment
	var changed bool
	var err error
	if pg, ok := s.Repo.(*PGRepo); ok && pg != nil && pg.DB != nil {
		p, changed, err = revokeWithTx(ctx, pg.DB, id)
	} else {
		p, changed, err = s.Repo.Transition(ctx, id, StatusRevoked)
		if err == nil && changed {
			_, err = s.Credits.DeductClamped(ctx, p.UserID, p.Amount)
		}
	}
	if err != nil {
		return Payment{}, err
	}
	if changed {
		metrics.IncPayment("revoked")
		telemetry.Info("payment.revoked", map[string]any{
			"payment_id": id,
			"user_id":    p.UserID,
			"amount":     p.Amount,
		})
	}
	return p, nil
}

func (s *Service) recordSequential(ctx context.Context, p Payment) (int, error) {
	if err := s.Repo.Insert(ctx, p); err != nil {
		return 0, err
	}
	return s.Credits.Add(ctx, p.UserID, p.Amount)
}

func recordWithTx(ctx context.Context, db *sql.DB, p Payment) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := insertPayment(ctx, tx, p); err != nil {
		return 0, err
	}
	balance, err := credits.AddTx(ctx, tx, p.UserID, p.Amount)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return balance, nil
}

func revokeWithTx(ctx context.Context, db *sql.DB, id string) (Payment, bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Payment{}, false, err
	}
	defer tx.Rollback()

	p, changed, err := transitionTx(ctx, tx, id, StatusRevoked)
	if err != nil || !changed {
		return p, false, err
	}
	if _, err := credits.DeductTx(ctx, tx, p.UserID, p.Amount, true); err != nil {
		return Payment{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return Payment{}, false, err
	}
	return p, true, nil
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}
