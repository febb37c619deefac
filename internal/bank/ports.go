// Package bank defines the ports between the transfer/query engines and
// their storage backends. Implementations live in bank/memory and in
// storage (sqlite).
package bank

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"futurebank/internal/core"
)

// Ports for outbound adapters.
type (
	// AccountStore owns account records and is the sole authority for
	// balance mutation. Get, List and Update return value copies; the
	// store never hands out shared state.
	AccountStore interface {
		// Create persists a fresh account. A negative initial balance
		// is clamped to zero.
		Create(ctx context.Context, ownerID, accountType string, initialBalance decimal.Decimal) (core.Account, error)
		Get(ctx context.Context, id string) (core.Account, error)
		List(ctx context.Context) ([]core.Account, error)
		// Update replaces the stored record wholesale. Callers must
		// re-read first or risk discarding concurrent balance changes.
		Update(ctx context.Context, id string, account core.Account) (core.Account, error)
		// Delete reports whether a record existed and was removed.
		// Ledger entries referencing the account are left in place.
		Delete(ctx context.Context, id string) (bool, error)
		Deposit(ctx context.Context, id string, amount decimal.Decimal) error
		Withdraw(ctx context.Context, id string, amount decimal.Decimal) error
	}

	// TransactionLedger is the append-only store of completed
	// transactions. Stored records are never mutated; query results are
	// unordered and consumers re-sort as needed.
	TransactionLedger interface {
		Append(ctx context.Context, tx core.Transaction) (id string, err error)
		// FindByAccount matches transactions where the account is
		// either party.
		FindByAccount(ctx context.Context, accountID string) ([]core.Transaction, error)
		FindByCategory(ctx context.Context, category core.Category) ([]core.Transaction, error)
		// Date ranges are inclusive on both ends; callers supply the
		// exact instants (e.g. end-of-day for a date-only bound).
		FindByDateRange(ctx context.Context, start, end time.Time) ([]core.Transaction, error)
		FindByAccountAndDateRange(ctx context.Context, accountID string, start, end time.Time) ([]core.Transaction, error)
	}
)
