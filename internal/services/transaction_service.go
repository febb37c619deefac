package services

import (
	"context"
	"fmt"
	"time"

	"futurebank/internal/bank"
	"futurebank/internal/core"
)

const dateLayout = "2006-01-02"

// HistoryQuery carries the optional filters of a transaction-history
// request. Year/month take precedence over the date literals.
type HistoryQuery struct {
	Year      *int
	Month     *int
	StartDate string
	EndDate   string
}

// TransactionService resolves history queries against the ledger and
// records new transactions. Direct creation routes through the transfer
// engine so it cannot bypass balance mutation.
type TransactionService struct {
	accounts  bank.AccountStore
	ledger    bank.TransactionLedger
	transfers *TransferService
}

func NewTransactionService(accounts bank.AccountStore, ledger bank.TransactionLedger, transfers *TransferService) *TransactionService {
	return &TransactionService{
		accounts:  accounts,
		ledger:    ledger,
		transfers: transfers,
	}
}

// Create records a transaction between two accounts. It is
// balance-affecting: the amount moves exactly as in a transfer.
func (s *TransactionService) Create(ctx context.Context, fromID, toID, amountText, categoryText string) (core.Transaction, error) {
	return s.transfers.TransferFromText(ctx, fromID, toID, amountText, categoryText)
}

// ByCategory returns all transactions with the given category.
func (s *TransactionService) ByCategory(ctx context.Context, category core.Category) ([]core.Transaction, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("category %q: %w", category, core.ErrInvalidCategory)
	}
	return s.ledger.FindByCategory(ctx, category)
}

// History resolves a transaction-history request. Precedence, first
// match wins:
//  1. year and month both supplied: that calendar month.
//  2. startDate and endDate both supplied: start-of-day through
//     end-of-day, parsed as yyyy-MM-dd. A malformed literal fails with
//     ErrInvalidDateFormat and does not fall through.
//  3. otherwise: all transactions for the account.
func (s *TransactionService) History(ctx context.Context, accountID string, q HistoryQuery) ([]core.Transaction, error) {
	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		return nil, fmt.Errorf("history for account: %w", err)
	}

	switch {
	case q.Year != nil && q.Month != nil:
		start, end, err := monthRange(*q.Year, *q.Month)
		if err != nil {
			return nil, err
		}
		return s.ledger.FindByAccountAndDateRange(ctx, accountID, start, end)

	case q.StartDate != "" && q.EndDate != "":
		start, err := time.ParseInLocation(dateLayout, q.StartDate, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("start date %q: %w", q.StartDate, core.ErrInvalidDateFormat)
		}
		end, err := time.ParseInLocation(dateLayout, q.EndDate, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("end date %q: %w", q.EndDate, core.ErrInvalidDateFormat)
		}
		return s.ledger.FindByAccountAndDateRange(ctx, accountID, start, endOfDay(end))

	default:
		return s.ledger.FindByAccount(ctx, accountID)
	}
}

// monthRange spans 00:00:00 of the first day through 23:59:59 of the
// last day of the given month.
func monthRange(year, month int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("month %d: %w", month, core.ErrInvalidDateFormat)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end, nil
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
