package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"futurebank/internal/core"
)

func TestStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.Create(ctx, "owner-1", "savings", decimal.NewFromInt(500))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created account has no id")
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Balance().Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected balance 500, got %s", got.Balance())
	}

	t.Run("ids are unique", func(t *testing.T) {
		other, err := store.Create(ctx, "owner-2", "checking", decimal.Zero)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if other.ID == created.ID {
			t.Error("two accounts share an id")
		}
	})

	t.Run("negative initial balance clamped", func(t *testing.T) {
		a, err := store.Create(ctx, "owner-3", "savings", decimal.NewFromInt(-10))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if !a.Balance().IsZero() {
			t.Errorf("expected zero balance, got %s", a.Balance())
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if _, err := store.Get(ctx, "missing"); !errors.Is(err, core.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestStoreUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	a, _ := store.Create(ctx, "owner-1", "savings", decimal.NewFromInt(100))

	replacement := core.RestoreAccount("ignored", "owner-1", "checking", decimal.NewFromInt(250))
	updated, err := store.Update(ctx, a.ID, replacement)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != a.ID {
		t.Errorf("update changed the id: %s", updated.ID)
	}
	if updated.AccountType != "checking" {
		t.Errorf("expected type checking, got %s", updated.AccountType)
	}
	if !updated.Balance().Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected balance 250, got %s", updated.Balance())
	}

	if _, err := store.Update(ctx, "missing", replacement); !errors.Is(err, core.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	a, _ := store.Create(ctx, "owner-1", "savings", decimal.Zero)

	existed, err := store.Delete(ctx, a.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !existed {
		t.Error("delete reported no record for an existing account")
	}

	existed, err = store.Delete(ctx, a.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if existed {
		t.Error("second delete reported a record")
	}
}

func TestStoreDepositWithdraw(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	a, _ := store.Create(ctx, "owner-1", "savings", decimal.NewFromInt(100))

	if err := store.Deposit(ctx, a.ID, decimal.NewFromInt(50)); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := store.Withdraw(ctx, a.ID, decimal.NewFromInt(120)); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	got, _ := store.Get(ctx, a.ID)
	if !got.Balance().Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected balance 30, got %s", got.Balance())
	}

	t.Run("overdraw rejected without mutation", func(t *testing.T) {
		if err := store.Withdraw(ctx, a.ID, decimal.NewFromInt(1000)); !errors.Is(err, core.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
		got, _ := store.Get(ctx, a.ID)
		if !got.Balance().Equal(decimal.NewFromInt(30)) {
			t.Errorf("balance mutated on rejected withdrawal: %s", got.Balance())
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		if err := store.Deposit(ctx, "missing", decimal.NewFromInt(1)); !errors.Is(err, core.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func appendTx(t *testing.T, l *Ledger, from, to string, amount int64, cat core.Category, at time.Time) core.Transaction {
	t.Helper()
	tx := core.NewTransaction(from, to, decimal.NewFromInt(amount), cat)
	tx.CreatedAt = at
	if _, err := l.Append(context.Background(), tx); err != nil {
		t.Fatalf("append: %v", err)
	}
	return tx
}

func TestLedgerFindByAccount(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

	appendTx(t, ledger, "a", "b", 10, core.CategoryGroceries, now)
	appendTx(t, ledger, "c", "a", 20, core.CategoryRent, now)
	appendTx(t, ledger, "b", "c", 30, core.CategoryDining, now)

	got, err := ledger.FindByAccount(ctx, "a")
	if err != nil {
		t.Fatalf("find by account: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 transactions for either party, got %d", len(got))
	}
}

func TestLedgerFindByCategory(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	now := time.Now().UTC()

	appendTx(t, ledger, "a", "b", 10, core.CategoryGroceries, now)
	appendTx(t, ledger, "a", "b", 20, core.CategoryGroceries, now)
	appendTx(t, ledger, "a", "b", 30, core.CategoryRent, now)

	got, err := ledger.FindByCategory(ctx, core.CategoryGroceries)
	if err != nil {
		t.Fatalf("find by category: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 groceries transactions, got %d", len(got))
	}
}

func TestLedgerDateRangeInclusiveBounds(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)

	appendTx(t, ledger, "a", "b", 1, core.CategoryOther, start)
	appendTx(t, ledger, "a", "b", 2, core.CategoryOther, end)
	appendTx(t, ledger, "a", "b", 3, core.CategoryOther, start.Add(-time.Second))
	appendTx(t, ledger, "a", "b", 4, core.CategoryOther, end.Add(time.Second))
	appendTx(t, ledger, "c", "d", 5, core.CategoryOther, start.Add(time.Hour))

	got, err := ledger.FindByDateRange(ctx, start, end)
	if err != nil {
		t.Fatalf("find by date range: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 transactions inside inclusive range, got %d", len(got))
	}

	scoped, err := ledger.FindByAccountAndDateRange(ctx, "a", start, end)
	if err != nil {
		t.Fatalf("find by account and date range: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("expected 2 transactions for account a, got %d", len(scoped))
	}
}

func TestLedgerRepeatedReadsAreStable(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger()
	now := time.Now().UTC()
	appendTx(t, ledger, "a", "b", 10, core.CategoryGroceries, now)

	first, _ := ledger.FindByAccount(ctx, "a")
	second, _ := ledger.FindByAccount(ctx, "a")
	if len(first) != len(second) {
		t.Fatalf("repeated query returned different sizes: %d vs %d", len(first), len(second))
	}
	if first[0].ID != second[0].ID || !first[0].Amount.Equal(second[0].Amount) {
		t.Error("repeated query returned different records")
	}
}
