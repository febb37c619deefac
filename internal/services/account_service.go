package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"futurebank/internal/bank"
	"futurebank/internal/core"
)

// DefaultInitialBalance is credited to accounts created without an
// explicit opening balance.
var DefaultInitialBalance = decimal.NewFromInt(10000)

// AccountService exposes account lifecycle operations. Balance-mutating
// paths share the per-account lock table with the transfer engine.
type AccountService struct {
	accounts bank.AccountStore
	locks    *bank.AccountLocks
}

func NewAccountService(accounts bank.AccountStore, locks *bank.AccountLocks) *AccountService {
	return &AccountService{accounts: accounts, locks: locks}
}

// Create opens an account. When initialBalance is nil the service
// default applies; a negative balance is clamped to zero by the store.
func (s *AccountService) Create(ctx context.Context, ownerID, accountType string, initialBalance *decimal.Decimal) (core.Account, error) {
	balance := DefaultInitialBalance
	if initialBalance != nil {
		balance = *initialBalance
	}
	a, err := s.accounts.Create(ctx, ownerID, accountType, balance)
	if err != nil {
		return core.Account{}, fmt.Errorf("create account: %w", err)
	}
	slog.InfoContext(ctx, "Account created",
		"account_id", a.ID,
		"owner_id", ownerID,
		"account_type", accountType,
		"balance", a.Balance().String())
	return a, nil
}

func (s *AccountService) Get(ctx context.Context, id string) (core.Account, error) {
	return s.accounts.Get(ctx, id)
}

func (s *AccountService) List(ctx context.Context) ([]core.Account, error) {
	return s.accounts.List(ctx)
}

// Update replaces the stored record wholesale, under the account lock
// so it cannot interleave with an in-flight transfer.
func (s *AccountService) Update(ctx context.Context, id string, account core.Account) (core.Account, error) {
	release := s.locks.Acquire(id)
	defer release()
	return s.accounts.Update(ctx, id, account)
}

// Delete removes the account record. Ledger history referencing the id
// is intentionally left untouched.
func (s *AccountService) Delete(ctx context.Context, id string) (bool, error) {
	release := s.locks.Acquire(id)
	defer release()
	existed, err := s.accounts.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	if existed {
		slog.InfoContext(ctx, "Account deleted", "account_id", id)
	}
	return existed, nil
}

func (s *AccountService) Deposit(ctx context.Context, id string, amount decimal.Decimal) error {
	release := s.locks.Acquire(id)
	defer release()
	return s.accounts.Deposit(ctx, id, amount)
}

func (s *AccountService) Withdraw(ctx context.Context, id string, amount decimal.Decimal) error {
	release := s.locks.Acquire(id)
	defer release()
	return s.accounts.Withdraw(ctx, id, amount)
}
