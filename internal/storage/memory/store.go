package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/bankcore/ledger/internal/interfaces"
	"github.com/bankcore/ledger/internal/models"
)

// AccountStore is the in-memory implementation of interfaces.AccountStore.
//
// Locking discipline: mu is the structural-change barrier. CreateAccount
// and DeleteAccount hold it exclusively; every other operation holds it
// shared for its whole critical section and additionally takes the
// per-account mutex from locks. A structural change can therefore never
// observe, or be observed by, a half-done account mutation, while
// independent accounts stay fully concurrent.
type AccountStore struct {
	mu       sync.RWMutex
	nextID   int64
	accounts map[int64]*models.Account
	locks    map[int64]*sync.Mutex
	order    []int64 // ids in creation order; ascending, never reused
}

// NewAccountStore returns an empty store. Ids start at 0 and increment by
// one per created account regardless of deletions.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[int64]*models.Account),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// CreateAccount validates the input, allocates the next id and installs an
// account whose log holds a single creation record.
func (s *AccountStore) CreateAccount(ctx context.Context, owner string, startingBalance decimal.Decimal) (models.Account, error) {
	if owner == "" {
		return models.Account{}, fmt.Errorf("%w: owner must not be empty", models.ErrValidation)
	}
	if startingBalance.IsNegative() {
		return models.Account{}, fmt.Errorf("%w: starting balance %s is negative", models.ErrValidation, startingBalance)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	acct := &models.Account{
		ID:      id,
		Owner:   owner,
		Balance: startingBalance,
		Log: []models.Transaction{
			models.NewTransaction(models.KindCreation, startingBalance, startingBalance),
		},
	}
	s.accounts[id] = acct
	s.locks[id] = &sync.Mutex{}
	s.order = append(s.order, id)

	return acct.Clone(), nil
}

// GetAccount returns a deep snapshot of one account. The account lock is
// held while copying so the snapshot is never torn.
func (s *AccountStore) GetAccount(id int64) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, lk, err := s.lookup(id)
	if err != nil {
		return models.Account{}, err
	}
	lk.Lock()
	defer lk.Unlock()
	return acct.Clone(), nil
}

// ListAccounts snapshots every account in ascending id order. Each snapshot
// is internally consistent; accounts mutated between two copies may differ.
func (s *AccountStore) ListAccounts() ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Account, 0, len(s.order))
	for _, id := range s.order {
		lk := s.locks[id]
		lk.Lock()
		out = append(out, s.accounts[id].Clone())
		lk.Unlock()
	}
	return out, nil
}

// DeleteAccount removes the account and retires its lock. The id is never
// handed out again, so no lock-recycling hazard exists.
func (s *AccountStore) DeleteAccount(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return fmt.Errorf("%w: id %d", models.ErrAccountNotFound, id)
	}
	delete(s.accounts, id)
	delete(s.locks, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// UpdateAccount runs fn with exclusive access to the account.
func (s *AccountStore) UpdateAccount(ctx context.Context, id int64, fn func(acct *models.Account) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, lk, err := s.lookup(id)
	if err != nil {
		return err
	}
	lk.Lock()
	defer lk.Unlock()
	return fn(acct)
}

// UpdateAccountPair runs fn with exclusive access to both accounts. Locks
// are taken lower id first, so opposite-direction pair updates can never
// deadlock each other.
func (s *AccountStore) UpdateAccountPair(ctx context.Context, fromID, toID int64, fn func(from, to *models.Account) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	from, fromLk, err := s.lookup(fromID)
	if err != nil {
		return err
	}
	to, toLk, err := s.lookup(toID)
	if err != nil {
		return err
	}

	first, second := fromLk, toLk
	if toID < fromID {
		first, second = toLk, fromLk
	}
	first.Lock()
	defer first.Unlock()
	second.Lock()
	defer second.Unlock()

	return fn(from, to)
}

// lookup resolves an account and its lock. Callers must hold mu.
func (s *AccountStore) lookup(id int64) (*models.Account, *sync.Mutex, error) {
	acct, ok := s.accounts[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: id %d", models.ErrAccountNotFound, id)
	}
	return acct, s.locks[id], nil
}

// Compile-time check: AccountStore implements the store interface.
var _ interfaces.AccountStore = (*AccountStore)(nil)
