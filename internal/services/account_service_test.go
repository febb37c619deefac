package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"futurebank/internal/bank"
	"futurebank/internal/bank/memory"
	"futurebank/internal/core"
)

func newAccountFixture() (*memory.Store, *AccountService) {
	store := memory.NewStore()
	return store, NewAccountService(store, bank.NewAccountLocks())
}

func TestAccountServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("default initial balance", func(t *testing.T) {
		_, svc := newAccountFixture()
		a, err := svc.Create(ctx, "owner-1", "savings", nil)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if !a.Balance().Equal(DefaultInitialBalance) {
			t.Errorf("expected default balance %s, got %s", DefaultInitialBalance, a.Balance())
		}
	})

	t.Run("explicit initial balance", func(t *testing.T) {
		_, svc := newAccountFixture()
		opening := decimal.NewFromInt(42)
		a, err := svc.Create(ctx, "owner-1", "savings", &opening)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if !a.Balance().Equal(opening) {
			t.Errorf("expected balance 42, got %s", a.Balance())
		}
	})

	t.Run("negative initial balance clamped", func(t *testing.T) {
		_, svc := newAccountFixture()
		opening := decimal.NewFromInt(-42)
		a, err := svc.Create(ctx, "owner-1", "savings", &opening)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if !a.Balance().IsZero() {
			t.Errorf("expected zero balance, got %s", a.Balance())
		}
	})
}

func TestAccountServiceUpdateReplacesRecord(t *testing.T) {
	ctx := context.Background()
	_, svc := newAccountFixture()
	a, _ := svc.Create(ctx, "owner-1", "savings", nil)

	updated, err := svc.Update(ctx, a.ID, core.RestoreAccount(a.ID, "owner-1", "checking", decimal.NewFromInt(77)))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.AccountType != "checking" || !updated.Balance().Equal(decimal.NewFromInt(77)) {
		t.Errorf("record not replaced: %+v balance=%s", updated, updated.Balance())
	}
}

func TestAccountServiceDelete(t *testing.T) {
	ctx := context.Background()
	_, svc := newAccountFixture()
	a, _ := svc.Create(ctx, "owner-1", "savings", nil)

	existed, err := svc.Delete(ctx, a.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !existed {
		t.Error("delete reported no record")
	}

	if _, err := svc.Get(ctx, a.ID); !errors.Is(err, core.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound after delete, got %v", err)
	}

	existed, _ = svc.Delete(ctx, a.ID)
	if existed {
		t.Error("second delete reported a record")
	}
}

func TestAccountServiceDepositWithdraw(t *testing.T) {
	ctx := context.Background()
	_, svc := newAccountFixture()
	opening := decimal.NewFromInt(100)
	a, _ := svc.Create(ctx, "owner-1", "savings", &opening)

	if err := svc.Deposit(ctx, a.ID, decimal.NewFromInt(20)); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := svc.Withdraw(ctx, a.ID, decimal.NewFromInt(200)); !errors.Is(err, core.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	got, _ := svc.Get(ctx, a.ID)
	if !got.Balance().Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected balance 120, got %s", got.Balance())
	}
}
