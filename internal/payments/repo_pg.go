package payments

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PGRepo struct {
	DB *sql.DB
}

const paymentColumns = `id, user_id, transaction_id, amount, status, created_at, updated_at`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) Insert(ctx context.Context, p Payment) error {
	return insertPayment(ctx, r.DB, p)
}

func insertPayment(ctx context.Context, db execer, p Payment) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO payments (id, user_id, transaction_id, amount, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		p.ID, p.UserID, p.TransactionID, p.Amount, string(p.Status), p.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateTransaction
	}
	return err
}

func (r *PGRepo) Get(ctx context.Context, id string) (Payment, error) {
	return scanPayment(r.DB.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
}

func (r *PGRepo) List(ctx context.Context, status Status) ([]Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Transition(ctx context.Context, id string, to Status) (Payment, bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return Payment{}, false, err
	}
	defer tx.Rollback()

	p, changed, err := transitionTx(ctx, tx, id, to)
	if err != nil || !changed {
		return p, false, err
	}
	if err := tx.Commit(); err != nil {
		return Payment{}, false, err
	}
	return p, true, nil
}

func transitionTx(ctx context.Context, tx *sql.Tx, id string, to Status) (Payment, bool, error) {
	p, err := scanPayment(tx.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return Payment{}, false, err
	}
	next, changed, err := applyTransition(p, to)
	if err != nil || !changed {
		return p, false, err
	}
	if _, err := tx.ExecContext(ctx, `
UPDATE payments SET status = $2, updated_at = $3 WHERE id = $1`, id, string(next.Status), next.UpdatedAt); err != nil {
		return Payment{}, false, err
	}
	return next, true, nil
}

func scanPayment(row rowScanner) (Payment, error) {
	var p Payment
	var status string
	err := row.Scan(&p.ID, &p.UserID, &p.TransactionID, &p.Amount, &status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Payment{}, ErrNotFound
		}
		return Payment{}, err
	}
	p.Status = Status(status)
	return p, nil
}
