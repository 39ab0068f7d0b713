package models

import "github.com/shopspring/decimal"

// Account holds one owner's balance and its append-only transaction log.
// Whenever no operation is in flight on the account, Balance equals the
// BalanceAfter of the last log record and is never negative.
type Account struct {
	ID      int64
	Owner   string
	Balance decimal.Decimal
	Log     []Transaction
}

// Clone returns a deep snapshot of the account. The log slice is copied so
// callers never alias store-owned state.
func (a *Account) Clone() Account {
	cp := *a
	cp.Log = make([]Transaction, len(a.Log))
	copy(cp.Log, a.Log)
	return cp
}
