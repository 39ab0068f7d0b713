package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountCreated is published once a new account is installed in the store.
type AccountCreated struct {
	AccountID       int64           `json:"account_id"`
	Owner           string          `json:"owner"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// AccountDeleted is published once an account has been removed. Its id is
// never reused.
type AccountDeleted struct {
	AccountID  int64     `json:"account_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TransactionRecorded is published for every committed balance mutation,
// one per affected account, so a transfer emits two.
type TransactionRecorded struct {
	AccountID    int64           `json:"account_id"`
	Kind         string          `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	OccurredAt   time.Time       `json:"occurred_at"`
}
