// Package services orchestrates the account, transfer, query and
// expenditure operations on top of the bank ports.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"futurebank/internal/amqp"
	"futurebank/internal/bank"
	"futurebank/internal/core"
)

// TransferService executes atomic two-account transfers. All balance
// mutation flows through here under per-account locks, so concurrent
// transfers touching the same account are linearized and the
// non-negative balance invariant holds at all observable times.
type TransferService struct {
	accounts   bank.AccountStore
	ledger     bank.TransactionLedger
	amqpClient *amqp.Client
	locks      *bank.AccountLocks
}

func NewTransferService(accounts bank.AccountStore, ledger bank.TransactionLedger, locks *bank.AccountLocks, amqpClient *amqp.Client) *TransferService {
	return &TransferService{
		accounts:   accounts,
		ledger:     ledger,
		amqpClient: amqpClient,
		locks:      locks,
	}
}

// Transfer moves amount from one account to the other and appends one
// ledger record, atomically. Validation failures abort before any
// mutation; a failure after the withdrawal rolls it back so no money is
// ever left in flight.
func (s *TransferService) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, category core.Category) (core.Transaction, error) {
	if !amount.IsPositive() {
		return core.Transaction{}, fmt.Errorf("transfer amount must be positive: %w", core.ErrInvalidAmount)
	}
	amount = amount.Round(core.AmountPrecision)
	if !amount.IsPositive() {
		return core.Transaction{}, fmt.Errorf("transfer amount must be positive: %w", core.ErrInvalidAmount)
	}

	release := s.locks.Acquire(fromID, toID)
	defer release()

	from, err := s.accounts.Get(ctx, fromID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("from account: %w", err)
	}
	if _, err := s.accounts.Get(ctx, toID); err != nil {
		return core.Transaction{}, fmt.Errorf("to account: %w", err)
	}
	if from.Balance().LessThan(amount) {
		return core.Transaction{}, fmt.Errorf("account %s holds %s: %w", fromID, from.Balance(), core.ErrInsufficientFunds)
	}

	if err := s.accounts.Withdraw(ctx, fromID, amount); err != nil {
		return core.Transaction{}, fmt.Errorf("withdraw from %s: %w", fromID, err)
	}
	if err := s.accounts.Deposit(ctx, toID, amount); err != nil {
		s.rollbackWithdrawal(ctx, fromID, amount)
		return core.Transaction{}, fmt.Errorf("deposit to %s: %w", toID, err)
	}

	tx := core.NewTransaction(fromID, toID, amount, category)
	if _, err := s.ledger.Append(ctx, tx); err != nil {
		// Unwind both mutations; the transfer never happened.
		if werr := s.accounts.Withdraw(ctx, toID, amount); werr != nil {
			slog.ErrorContext(ctx, "Rollback withdrawal from recipient failed",
				"account_id", toID, "amount", amount.String(), "error", werr)
		}
		s.rollbackWithdrawal(ctx, fromID, amount)
		return core.Transaction{}, fmt.Errorf("append ledger record: %w", err)
	}

	s.publishTransferCompleted(ctx, tx)

	slog.InfoContext(ctx, "Transfer completed",
		"transaction_id", tx.ID,
		"from_account_id", fromID,
		"to_account_id", toID,
		"amount", amount.String(),
		"category", category.String())

	return tx, nil
}

// TransferFromText is the loosely-typed entry point. Amount and
// category arrive as text and are validated before delegating to the
// canonical path.
func (s *TransferService) TransferFromText(ctx context.Context, fromID, toID, amountText, categoryText string) (core.Transaction, error) {
	amount, err := core.ParseAmount(amountText)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", amountText, err)
	}
	category, err := core.ParseCategory(categoryText)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse category %q: %w", categoryText, err)
	}
	return s.Transfer(ctx, fromID, toID, amount, category)
}

func (s *TransferService) rollbackWithdrawal(ctx context.Context, accountID string, amount decimal.Decimal) {
	if err := s.accounts.Deposit(ctx, accountID, amount); err != nil {
		// A failed rollback is an invariant violation, not a business
		// error. Surface it loudly.
		slog.ErrorContext(ctx, "Rollback deposit failed, balance inconsistent",
			"account_id", accountID, "amount", amount.String(), "error", err)
	}
}

func (s *TransferService) publishTransferCompleted(ctx context.Context, tx core.Transaction) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishTransferCompleted(ctx, tx); err != nil {
		// Event delivery is best-effort; the transfer already settled.
		slog.ErrorContext(ctx, "Failed to publish transfer completed event",
			"transaction_id", tx.ID, "error", err)
	}
}
