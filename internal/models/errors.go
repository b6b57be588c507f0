package models

import "errors"

// Domain errors. Every failed operation is rejected atomically with no
// partial state change; the transport layer maps these to status codes and
// user-facing messages.
var (
	// ErrInvalidAmount rejects postings with a non-positive amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds rejects a withdrawal exceeding the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidRate rejects interest rates outside the open interval (0, 100).
	ErrInvalidRate = errors.New("rate must be between 0 and 100")

	// ErrNoApplicableRate means no rule is in effect on the queried date.
	ErrNoApplicableRate = errors.New("no applicable interest rate")

	// ErrAccountNotFound means the account has no postings.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidMonth rejects statement months outside 1..12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
)
