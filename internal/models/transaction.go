package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind classifies a balance-affecting event.
type TransactionKind string

const (
	KindCreation   TransactionKind = "creation"
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
	KindTransfer   TransactionKind = "transfer"
)

// Transaction is one immutable record in an account's log.
// Amount is signed: positive for inflows (creation, deposit, transfer in),
// negative for outflows (withdrawal, transfer out). Log order is creation
// order; records are never reordered or truncated.
type Transaction struct {
	ID           string // unique identifier
	Kind         TransactionKind
	Amount       decimal.Decimal // signed amount
	BalanceAfter decimal.Decimal // account balance once this record applied
	CreatedAt    time.Time       // UTC timestamp
}

// NewTransaction builds a record for an event that left the account at
// balanceAfter, stamped with the current time.
func NewTransaction(kind TransactionKind, amount, balanceAfter decimal.Decimal) Transaction {
	return NewTransactionAt(kind, amount, balanceAfter, time.Now().UTC())
}

// NewTransactionAt is NewTransaction with an explicit timestamp, so the two
// legs of a transfer can share one instant.
func NewTransactionAt(kind TransactionKind, amount, balanceAfter decimal.Decimal, at time.Time) Transaction {
	return Transaction{
		ID:           uuid.New().String(),
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		CreatedAt:    at,
	}
}
