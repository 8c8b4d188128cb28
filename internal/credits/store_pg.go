package credits

import (
	"context"
	"database/sql"
	"errors"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a ledger backed by the users.credits column.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Balance(ctx context.Context, userID string) (int, error) {
	var balance int
	err := s.DB.QueryRowContext(ctx, `SELECT credits FROM users WHERE id = $1`, userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUnknownUser
	}
	return balance, err
}

func (s *pgStore) Add(ctx context.Context, userID string, n int) (int, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	balance, err := AddTx(ctx, tx, userID, n)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return balance, nil
}

func (s *pgStore) Deduct(ctx context.Context, userID string, n int, clamp bool) (int, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	balance, err := DeductTx(ctx, tx, userID, n, clamp)
	if err != nil {
		return balance, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return balance, nil
}

// AddTx grants n credits inside the caller's transaction.
func AddTx(ctx context.Context, tx *sql.Tx, userID string, n int) (int, error) {
	var balance int
	err := tx.QueryRowContext(ctx, `
UPDATE users SET credits = credits + $2, updated_at = now() WHERE id = $1 RETURNING credits`, userID, n).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUnknownUser
	}
	return balance, err
}

// DeductTx removes n credits inside the caller's transaction. With clamp the
// balance floors at zero; without it a short balance is ErrInsufficientCredits.
func DeductTx(ctx context.Context, tx *sql.Tx, userID string, n int, clamp bool) (int, error) {
	var balance int
	err := tx.QueryRowContext(ctx, `SELECT credits FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUnknownUser
		}
		return 0, err
	}
	next, err := deducted(balance, n, clamp)
	if err != nil {
		return balance, err
	}
	if _, err := tx.ExecContext(ctx, `
UPDATE users SET credits = $2, updated_at = now() WHERE id = $1`, userID, next); err != nil {
		return 0, err
	}
	return next, nil
}
