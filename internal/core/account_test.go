package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewAccountClampsNegativeBalance(t *testing.T) {
	a := NewAccount("acc-1", "owner-1", "savings", decimal.NewFromInt(-50))
	if !a.Balance().IsZero() {
		t.Errorf("expected negative initial balance clamped to zero, got %s", a.Balance())
	}
}

func TestAccountDeposit(t *testing.T) {
	t.Run("positive amount increases balance", func(t *testing.T) {
		a := NewAccount("acc-1", "owner-1", "savings", decimal.NewFromInt(100))
		if err := a.Deposit(decimal.NewFromInt(25)); err != nil {
			t.Fatalf("deposit failed: %v", err)
		}
		if !a.Balance().Equal(decimal.NewFromInt(125)) {
			t.Errorf("expected balance 125, got %s", a.Balance())
		}
	})

	t.Run("zero amount rejected without mutation", func(t *testing.T) {
		a := NewAccount("acc-1", "owner-1", "savings", decimal.NewFromInt(100))
		if err := a.Deposit(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
		if !a.Balance().Equal(decimal.NewFromInt(100)) {
			t.Errorf("balance mutated on rejected deposit: %s", a.Balance())
		}
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		a := NewAccount("acc-1", "owner-1", "savings", decimal.NewFromInt(100))
		if err := a.Deposit(decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestAccountWithdraw(t *testing.T) {
	t.Run("sufficient funds", func(t *testing.T) {
		a := NewAccount("acc-1", "owner-1", "savings", decimal.NewFromInt(100))
		if err := a.Withdraw(decimal.NewFromInt(40)); err != nil {
			t.Fatalf("withdraw failed: %v", err)
		}
		if !a.Balance().Equal(decimal.NewFromInt(60)) {
			t.Errorf("expected balance 60, got %s", a.Balance())
		}
	})

	t.Run("insufficient funds rejected without mutation", func(t *testing.T) {
		a := NewAccount("acc-1", "owner-1", "savings", decimal.NewFromInt(50))
		if err := a.Withdraw(decimal.NewFromInt(100)); !errors.Is(err, ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
		if !a.Balance().Equal(decimal.NewFromInt(50)) {
			t.Errorf("balance mutated on rejected withdrawal: %s", a.Balance())
		}
	})

	t.Run("withdrawing exact balance leaves zero", func(t *testing.T) {
		a := NewAccount("acc-1", "owner-1", "savings", decimal.NewFromInt(50))
		if err := a.Withdraw(decimal.NewFromInt(50)); err != nil {
			t.Fatalf("withdraw failed: %v", err)
		}
		if !a.Balance().IsZero() {
			t.Errorf("expected zero balance, got %s", a.Balance())
		}
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		a := NewAccount("acc-1", "owner-1", "savings", decimal.NewFromInt(50))
		if err := a.Withdraw(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestRestoreAccountKeepsBalance(t *testing.T) {
	a := RestoreAccount("acc-1", "owner-1", "checking", decimal.RequireFromString("12.3456"))
	if !a.Balance().Equal(decimal.RequireFromString("12.3456")) {
		t.Errorf("restored balance mismatch: %s", a.Balance())
	}
}
