package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is an immutable record of funds moved between two
// accounts. The parties are referenced by id; deleting an account does
// not rewrite its ledger history.
type Transaction struct {
	ID            string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Category      Category
	CreatedAt     time.Time
}

// NewTransaction builds a transaction with a fresh id and the current
// clock. Amounts are normalized to AmountPrecision fractional digits.
func NewTransaction(fromAccountID, toAccountID string, amount decimal.Decimal, category Category) Transaction {
	return Transaction{
		ID:            uuid.NewString(),
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount.Round(AmountPrecision),
		Category:      category,
		CreatedAt:     time.Now().UTC(),
	}
}

func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !t.Category.Valid() {
		return ErrInvalidCategory
	}
	if t.FromAccountID == "" || t.ToAccountID == "" {
		return ErrAccountNotFound
	}
	return nil
}
