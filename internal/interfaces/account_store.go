package interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bankcore/ledger/internal/models"
)

// AccountReader is the read-only view of the store used by analytics and
// reporting code.
type AccountReader interface {
	// GetAccount returns a consistent point-in-time snapshot of one
	// account, never a partially-mutated view.
	GetAccount(id int64) (models.Account, error)

	// ListAccounts returns per-account snapshots in ascending id order.
	// No cross-account atomicity is guaranteed.
	ListAccounts() ([]models.Account, error)
}

// AccountStore owns the id-to-account mapping, assigns ids, and provides
// the locking discipline every ledger operation goes through. Accounts are
// borrowed for the duration of a single operation and never retained.
type AccountStore interface {
	AccountReader

	// CreateAccount allocates the next id (monotonic, never reused) and
	// installs an account holding a single creation record.
	CreateAccount(ctx context.Context, owner string, startingBalance decimal.Decimal) (models.Account, error)

	// DeleteAccount removes the account; its id stays retired forever.
	DeleteAccount(ctx context.Context, id int64) error

	// UpdateAccount runs fn with exclusive access to the account. fn must
	// either complete its mutation or leave the account untouched.
	UpdateAccount(ctx context.Context, id int64, fn func(acct *models.Account) error) error

	// UpdateAccountPair runs fn with exclusive access to both accounts,
	// acquired in ascending id order regardless of argument order.
	UpdateAccountPair(ctx context.Context, fromID, toID int64, fn func(from, to *models.Account) error) error
}
