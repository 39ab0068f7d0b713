package analytics

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/bankcore/ledger/internal/interfaces"
	"github.com/bankcore/ledger/internal/models"
)

// AccountTotal pairs an account id with an aggregated amount.
type AccountTotal struct {
	AccountID int64
	Total     decimal.Decimal
}

// Analytics aggregates over account logs without mutating them. It
// tolerates concurrent mutation of the accounts it scans; each account's
// contribution reflects one consistent snapshot.
type Analytics struct {
	accounts interfaces.AccountReader
}

func New(accounts interfaces.AccountReader) *Analytics {
	return &Analytics{accounts: accounts}
}

// TopKByVolume ranks accounts by total transaction volume, the sum of
// absolute amounts over the whole log, descending. Ties keep creation
// order. The result is truncated to k entries.
func (a *Analytics) TopKByVolume(k int) ([]AccountTotal, error) {
	return a.topK(k, func(models.Transaction) bool { return true })
}

// TopKByOutgoing ranks accounts by total outgoing money: withdrawals and
// transfers out. Ordering and truncation follow TopKByVolume.
func (a *Analytics) TopKByOutgoing(k int) ([]AccountTotal, error) {
	return a.topK(k, func(rec models.Transaction) bool {
		return rec.Amount.IsNegative() &&
			(rec.Kind == models.KindWithdrawal || rec.Kind == models.KindTransfer)
	})
}

func (a *Analytics) topK(k int, include func(models.Transaction) bool) ([]AccountTotal, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", models.ErrInvalidArgument, k)
	}
	accts, err := a.accounts.ListAccounts()
	if err != nil {
		return nil, err
	}

	totals := make([]AccountTotal, 0, len(accts))
	for _, acct := range accts {
		total := decimal.Zero
		for _, rec := range acct.Log {
			if include(rec) {
				total = total.Add(rec.Amount.Abs())
			}
		}
		totals = append(totals, AccountTotal{AccountID: acct.ID, Total: total})
	}

	// Stable sort: ListAccounts enumerates in ascending id order, which is
	// creation order, so ties resolve to the earlier account.
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	if len(totals) > k {
		totals = totals[:k]
	}
	return totals, nil
}
