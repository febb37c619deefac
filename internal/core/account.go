// Package core holds the banking domain types: accounts, transactions,
// categories and monetary amounts. Balances change only through the
// Deposit and Withdraw methods so the non-negative invariant cannot be
// bypassed by callers holding an Account value.
package core

import "github.com/shopspring/decimal"

// Account is a balance-holding entity. The balance field is unexported;
// it is mutated exclusively through Deposit and Withdraw.
type Account struct {
	ID          string
	OwnerID     string
	AccountType string
	balance     decimal.Decimal
}

// NewAccount builds a fresh account. A negative initial balance is
// clamped to zero.
func NewAccount(id, ownerID, accountType string, initialBalance decimal.Decimal) Account {
	if initialBalance.IsNegative() {
		initialBalance = decimal.Zero
	}
	return Account{
		ID:          id,
		OwnerID:     ownerID,
		AccountType: accountType,
		balance:     initialBalance,
	}
}

// RestoreAccount rebuilds an account from a trusted record, typically a
// storage row. It does not clamp the balance; persisted balances are
// expected to already satisfy the invariant.
func RestoreAccount(id, ownerID, accountType string, balance decimal.Decimal) Account {
	return Account{
		ID:          id,
		OwnerID:     ownerID,
		AccountType: accountType,
		balance:     balance,
	}
}

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// Deposit increases the balance. The amount must be strictly positive.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.balance = a.balance.Add(amount)
	return nil
}

// Withdraw decreases the balance. It fails without mutation when the
// amount is not strictly positive or exceeds the balance. Insufficient
// funds is an expected business outcome, not a systemic fault.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if a.balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	return nil
}
