package analytics

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/bankcore/ledger/internal/ledger"
	"github.com/bankcore/ledger/internal/models"
	"github.com/bankcore/ledger/internal/storage/memory"
)

func newFixture() (*ledger.Ledger, *Analytics) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := memory.NewAccountStore()
	return ledger.NewLedger(store, nil, logger), New(store)
}

func TestTopKByVolume(t *testing.T) {
	l, a := newFixture()
	ctx := context.Background()

	// Creation records give the accounts volumes 50, 300 and 120.
	for _, bal := range []int64{50, 300, 120} {
		if _, err := l.CreateAccount(ctx, "owner", decimal.NewFromInt(bal)); err != nil {
			t.Fatal(err)
		}
	}

	top, err := a.TopKByVolume(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].AccountID != 1 || !top[0].Total.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("top-1 = %+v, want account 1 with 300", top)
	}

	// k beyond the population returns everything, descending.
	all, err := a.TopKByVolume(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	wantIDs := []int64{1, 2, 0}
	wantTotals := []int64{300, 120, 50}
	for i := range all {
		if all[i].AccountID != wantIDs[i] || !all[i].Total.Equal(decimal.NewFromInt(wantTotals[i])) {
			t.Fatalf("rank %d = %+v, want account %d with %d", i, all[i], wantIDs[i], wantTotals[i])
		}
	}
}

func TestTopKByVolumeCountsAllRecords(t *testing.T) {
	l, a := newFixture()
	ctx := context.Background()

	acct, _ := l.CreateAccount(ctx, "owner", decimal.NewFromInt(100))
	if _, err := l.Deposit(ctx, acct.ID, decimal.NewFromInt(40)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Withdraw(ctx, acct.ID, decimal.NewFromInt(30)); err != nil {
		t.Fatal(err)
	}

	// Volume sums absolute amounts: 100 + 40 + |-30|.
	top, err := a.TopKByVolume(1)
	if err != nil {
		t.Fatal(err)
	}
	if !top[0].Total.Equal(decimal.NewFromInt(170)) {
		t.Fatalf("volume = %s, want 170", top[0].Total)
	}
}

func TestTopKByVolumeTiesKeepCreationOrder(t *testing.T) {
	l, a := newFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := l.CreateAccount(ctx, "owner", decimal.NewFromInt(100)); err != nil {
			t.Fatal(err)
		}
	}

	top, err := a.TopKByVolume(3)
	if err != nil {
		t.Fatal(err)
	}
	for i, at := range top {
		if at.AccountID != int64(i) {
			t.Fatalf("tie order broken: rank %d is account %d", i, at.AccountID)
		}
	}
}

func TestTopKByOutgoing(t *testing.T) {
	l, a := newFixture()
	ctx := context.Background()

	quiet, _ := l.CreateAccount(ctx, "quiet", decimal.NewFromInt(100))
	busy, _ := l.CreateAccount(ctx, "busy", decimal.NewFromInt(100))
	sink, _ := l.CreateAccount(ctx, "sink", decimal.NewFromInt(100))

	// quiet only receives money; its outgoing total stays 0.
	if _, err := l.Deposit(ctx, quiet.ID, decimal.NewFromInt(50)); err != nil {
		t.Fatal(err)
	}
	// busy: withdrawal 40 + transfer out 60 -> outgoing 100.
	if _, err := l.Withdraw(ctx, busy.ID, decimal.NewFromInt(40)); err != nil {
		t.Fatal(err)
	}
	if _, _, err := l.Transfer(ctx, busy.ID, sink.ID, decimal.NewFromInt(60)); err != nil {
		t.Fatal(err)
	}
	// sink: the transfer in must not count; one withdrawal of 10 does.
	if _, err := l.Withdraw(ctx, sink.ID, decimal.NewFromInt(10)); err != nil {
		t.Fatal(err)
	}

	top, err := a.TopKByOutgoing(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 3 {
		t.Fatalf("len = %d, want 3", len(top))
	}
	if top[0].AccountID != busy.ID || !top[0].Total.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("rank 0 = %+v, want busy with 100", top[0])
	}
	if top[1].AccountID != sink.ID || !top[1].Total.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("rank 1 = %+v, want sink with 10", top[1])
	}
	if top[2].AccountID != quiet.ID || !top[2].Total.IsZero() {
		t.Fatalf("rank 2 = %+v, want quiet with 0", top[2])
	}
}

func TestTopKRejectsNonPositiveK(t *testing.T) {
	_, a := newFixture()

	for _, k := range []int{0, -1} {
		if _, err := a.TopKByVolume(k); !errors.Is(err, models.ErrInvalidArgument) {
			t.Fatalf("volume k=%d: want ErrInvalidArgument, got %v", k, err)
		}
		if _, err := a.TopKByOutgoing(k); !errors.Is(err, models.ErrInvalidArgument) {
			t.Fatalf("outgoing k=%d: want ErrInvalidArgument, got %v", k, err)
		}
	}
}

func TestTopKEmptyStore(t *testing.T) {
	_, a := newFixture()

	top, err := a.TopKByVolume(5)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 0 {
		t.Fatalf("empty store produced %+v", top)
	}
}
