package models

import "errors"

// Domain errors reported by ledger operations. The ledger wraps them with
// per-call context; callers match with errors.Is.
var (
	// ErrValidation rejects a malformed account creation: empty owner or
	// negative starting balance.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount rejects a non-positive deposit, withdrawal or
	// transfer amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidArgument rejects a self-transfer or a non-positive k.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAccountNotFound means the referenced account id is absent.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds means the operation would drive the balance
	// negative; the account is left untouched.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
