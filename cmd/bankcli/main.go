package main

import (
	"context"
	"fmt"

	"github.com/docopt/docopt-go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/bankcore/ledger/internal/analytics"
	"github.com/bankcore/ledger/internal/config"
	"github.com/bankcore/ledger/internal/events/kafka"
	"github.com/bankcore/ledger/internal/interfaces"
	"github.com/bankcore/ledger/internal/ledger"
	"github.com/bankcore/ledger/internal/storage/memory"
)

// bankcli is thin glue around the ledger engine: it wires the store, the
// optional Kafka publisher and a logger, then drives a demonstration
// scenario. No engine logic lives here.

const usage = `bankcli - exercise the in-memory bank ledger engine.

Usage:
  bankcli demo [--env-file=<path>] [--verbose]
  bankcli -h | --help

Options:
  --env-file=<path>  Environment file to load before reading the env.
  --verbose          Log at debug level.
  -h --help          Show this screen.
`

func main() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		logrus.Fatal(err)
	}

	envFile, _ := opts.String("--env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		logrus.Fatal(err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose, _ := opts.Bool("--verbose"); verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var publisher interfaces.EventPublisher
	if len(cfg.Brokers) > 0 {
		kp := kafka.NewPublisher(cfg.Brokers)
		defer kp.Close()
		publisher = kp
		logrus.WithField("brokers", cfg.Brokers).Info("publishing events to kafka")
	}

	store := memory.NewAccountStore()
	eng := ledger.NewLedger(store, publisher, logrus.StandardLogger())
	stats := analytics.New(store)

	if err := runDemo(context.Background(), eng, stats); err != nil {
		logrus.Fatal(err)
	}
}

func runDemo(ctx context.Context, eng *ledger.Ledger, stats *analytics.Analytics) error {
	alice, err := eng.CreateAccount(ctx, "alice", decimal.NewFromInt(1000))
	if err != nil {
		return err
	}
	bob, err := eng.CreateAccount(ctx, "bob", decimal.NewFromInt(500))
	if err != nil {
		return err
	}

	if _, err := eng.Deposit(ctx, alice.ID, decimal.NewFromInt(250)); err != nil {
		return err
	}
	if _, err := eng.Withdraw(ctx, bob.ID, decimal.NewFromInt(100)); err != nil {
		return err
	}

	fromBal, toBal, err := eng.Transfer(ctx, alice.ID, bob.ID, decimal.NewFromInt(300))
	if err != nil {
		return err
	}
	fmt.Printf("transfer complete: alice=%s bob=%s\n", fromBal, toBal)

	// An overdraft attempt must fail and change nothing.
	if _, err := eng.Withdraw(ctx, bob.ID, decimal.NewFromInt(100000)); err != nil {
		logrus.WithError(err).Info("overdraft rejected")
	}

	accounts, err := eng.ReadAllAccounts()
	if err != nil {
		return err
	}
	for _, acct := range accounts {
		fmt.Printf("account %d (%s): balance=%s records=%d\n",
			acct.ID, acct.Owner, acct.Balance, len(acct.Log))
	}

	byVolume, err := stats.TopKByVolume(2)
	if err != nil {
		return err
	}
	for i, at := range byVolume {
		fmt.Printf("top volume #%d: account %d total=%s\n", i+1, at.AccountID, at.Total)
	}

	byOutgoing, err := stats.TopKByOutgoing(2)
	if err != nil {
		return err
	}
	for i, at := range byOutgoing {
		fmt.Printf("top outgoing #%d: account %d total=%s\n", i+1, at.AccountID, at.Total)
	}
	return nil
}
