package credits

import "errors"

var (
	// ErrInsufficientCredits indicates the balance cannot cover a deduction.
	ErrInsufficientCredits = errors.New("insufficient credits")
	// ErrInvalidAmount indicates a non-positive credit amount.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrUnknownUser indicates the ledger has no row for the user.
	ErrUnknownUser = errors.New("unknown user")
)
