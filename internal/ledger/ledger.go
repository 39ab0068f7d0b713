package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/bankcore/ledger/internal/interfaces"
	"github.com/bankcore/ledger/internal/models"
	"github.com/bankcore/ledger/internal/models/events"
)

// Topics ledger events are published on.
const (
	TopicAccounts     = "account_lifecycle"
	TopicTransactions = "transaction_recorded"
)

// Ledger exposes the ledger operations over an AccountStore. The publisher
// and logger are optional side channels: a nil publisher disables events
// and a nil logger falls back to the logrus standard logger. Every failure
// is a typed error and leaves no partial state behind.
type Ledger struct {
	store  interfaces.AccountStore
	events interfaces.EventPublisher
	log    logrus.FieldLogger
}

// NewLedger wires a ledger over the given store.
func NewLedger(store interfaces.AccountStore, publisher interfaces.EventPublisher, logger logrus.FieldLogger) *Ledger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Ledger{store: store, events: publisher, log: logger}
}

// CreateAccount opens an account for owner with the given starting balance.
func (l *Ledger) CreateAccount(ctx context.Context, owner string, startingBalance decimal.Decimal) (models.Account, error) {
	acct, err := l.store.CreateAccount(ctx, owner, startingBalance)
	if err != nil {
		return models.Account{}, err
	}

	l.log.WithFields(logrus.Fields{
		"account_id": acct.ID,
		"owner":      acct.Owner,
		"balance":    acct.Balance,
	}).Info("account created")
	l.publish(TopicAccounts, events.AccountCreated{
		AccountID:       acct.ID,
		Owner:           acct.Owner,
		StartingBalance: acct.Balance,
		OccurredAt:      acct.Log[0].CreatedAt,
	})
	return acct, nil
}

// ReadAccount returns a consistent snapshot of one account.
func (l *Ledger) ReadAccount(id int64) (models.Account, error) {
	return l.store.GetAccount(id)
}

// ReadAllAccounts returns per-account snapshots in ascending id order.
func (l *Ledger) ReadAllAccounts() ([]models.Account, error) {
	return l.store.ListAccounts()
}

// Deposit adds a positive amount to the account and returns the new
// balance.
func (l *Ledger) Deposit(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: deposit of %s", models.ErrInvalidAmount, amount)
	}

	var rec models.Transaction
	err := l.store.UpdateAccount(ctx, id, func(acct *models.Account) error {
		acct.Balance = acct.Balance.Add(amount)
		rec = models.NewTransaction(models.KindDeposit, amount, acct.Balance)
		acct.Log = append(acct.Log, rec)
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	l.log.WithFields(logrus.Fields{
		"account_id": id,
		"amount":     amount,
		"balance":    rec.BalanceAfter,
	}).Info("deposit")
	l.publishRecord(id, rec)
	return rec.BalanceAfter, nil
}

// Withdraw subtracts a positive amount from the account and returns the
// new balance. A withdrawal that would overdraw leaves balance and log
// untouched.
func (l *Ledger) Withdraw(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: withdrawal of %s", models.ErrInvalidAmount, amount)
	}

	var rec models.Transaction
	err := l.store.UpdateAccount(ctx, id, func(acct *models.Account) error {
		if acct.Balance.LessThan(amount) {
			return fmt.Errorf("%w: balance %s short of %s on account %d",
				models.ErrInsufficientFunds, acct.Balance, amount, acct.ID)
		}
		acct.Balance = acct.Balance.Sub(amount)
		rec = models.NewTransaction(models.KindWithdrawal, amount.Neg(), acct.Balance)
		acct.Log = append(acct.Log, rec)
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	l.log.WithFields(logrus.Fields{
		"account_id": id,
		"amount":     amount,
		"balance":    rec.BalanceAfter,
	}).Info("withdrawal")
	l.publishRecord(id, rec)
	return rec.BalanceAfter, nil
}

// Transfer moves amount between two distinct accounts and returns both new
// balances. Debit, credit and both log appends happen under exclusive
// access to both accounts, so no observer can see money in flight. Both
// records share one timestamp.
func (l *Ledger) Transfer(ctx context.Context, fromID, toID int64, amount decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if fromID == toID {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: cannot transfer from account %d to itself",
			models.ErrInvalidArgument, fromID)
	}
	if !amount.IsPositive() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: transfer of %s", models.ErrInvalidAmount, amount)
	}

	var debit, credit models.Transaction
	err := l.store.UpdateAccountPair(ctx, fromID, toID, func(from, to *models.Account) error {
		if from.Balance.LessThan(amount) {
			return fmt.Errorf("%w: balance %s short of %s on account %d",
				models.ErrInsufficientFunds, from.Balance, amount, from.ID)
		}
		from.Balance = from.Balance.Sub(amount)
		to.Balance = to.Balance.Add(amount)

		now := time.Now().UTC()
		debit = models.NewTransactionAt(models.KindTransfer, amount.Neg(), from.Balance, now)
		credit = models.NewTransactionAt(models.KindTransfer, amount, to.Balance, now)
		from.Log = append(from.Log, debit)
		to.Log = append(to.Log, credit)
		return nil
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	l.log.WithFields(logrus.Fields{
		"from_account": fromID,
		"to_account":   toID,
		"amount":       amount,
		"from_balance": debit.BalanceAfter,
		"to_balance":   credit.BalanceAfter,
	}).Info("transfer")
	l.publishRecord(fromID, debit)
	l.publishRecord(toID, credit)
	return debit.BalanceAfter, credit.BalanceAfter, nil
}

// DeleteAccount removes the account. Any later operation on the same id
// fails with ErrAccountNotFound; the id is never reused.
func (l *Ledger) DeleteAccount(ctx context.Context, id int64) error {
	if err := l.store.DeleteAccount(ctx, id); err != nil {
		return err
	}

	l.log.WithField("account_id", id).Info("account deleted")
	l.publish(TopicAccounts, events.AccountDeleted{
		AccountID:  id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// publish runs after the mutation has committed and outside every lock, so
// a slow broker never stalls the ledger. Failures are logged, not returned:
// the mutation already happened.
func (l *Ledger) publish(topic string, event any) {
	if l.events == nil {
		return
	}
	if err := l.events.Publish(topic, event); err != nil {
		l.log.WithError(err).WithField("topic", topic).Warn("event publish failed")
	}
}

func (l *Ledger) publishRecord(accountID int64, rec models.Transaction) {
	l.publish(TopicTransactions, events.TransactionRecorded{
		AccountID:    accountID,
		Kind:         string(rec.Kind),
		Amount:       rec.Amount,
		BalanceAfter: rec.BalanceAfter,
		OccurredAt:   rec.CreatedAt,
	})
}
