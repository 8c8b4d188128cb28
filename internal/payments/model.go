package payments

import (
	"errors"
	"time"
)

// Status is the review state of a manual payment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRevoked   Status = "revoked"
)

var (
	ErrNotFound             = errors.New("payment not found")
	ErrDuplicateTransaction = errors.New("transaction id already recorded")
	ErrInvalidTransition    = errors.New("invalid payment status transition")
)

type Payment struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	TransactionID string    `json:"transactionId"`
	Amount        int       `json:"amount"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// RecordInput is the body of POST /manual-payment-confirm.
type RecordInput struct {
	TransactionID string `json:"transaction_id" validate:"required,max=128"`
	Amount        int    `json:"amount" validate:"gt=0"`
}

// applyTransition moves p to the target status. Repeating the current status
// is a no-op; revoked is terminal.
func applyTransition(p Payment, to Status) (Payment, bool, error) {
	if p.Status == to {
		return p, false, nil
	}
	switch {
	case p.Status == StatusPending && (to == StatusConfirmed || to == StatusRevoked):
	case p.Status == StatusConfirmed && to == StatusRevoked:
	default:
		return p, false, ErrInvalidTransition
	}
	p.Status = to
	p.UpdatedAt = time.Now().UTC()
	return p, true, nil
}

// ValidStatus reports whether s names a known status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRevoked:
		return true
	}
	return false
}
