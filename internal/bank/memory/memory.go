// Package memory provides in-process implementations of the bank ports.
// Each structure is guarded by its own mutex and hands out value copies,
// so readers always observe a consistent snapshot and never share state
// with the store.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"futurebank/internal/core"
)

// Store is the in-memory AccountStore.
type Store struct {
	mu    sync.Mutex
	accts map[string]core.Account
}

func NewStore() *Store {
	return &Store{accts: make(map[string]core.Account)}
}

func (s *Store) Create(_ context.Context, ownerID, accountType string, initialBalance decimal.Decimal) (core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := core.NewAccount(uuid.NewString(), ownerID, accountType, initialBalance)
	s.accts[a.ID] = a
	return a, nil
}

func (s *Store) Get(_ context.Context, id string) (core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accts[id]
	if !ok {
		return core.Account{}, fmt.Errorf("account %s: %w", id, core.ErrAccountNotFound)
	}
	return a, nil
}

func (s *Store) List(_ context.Context) ([]core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Account, 0, len(s.accts))
	for _, a := range s.accts {
		out = append(out, a)
	}
	return out, nil
}

func (s *Store) Update(_ context.Context, id string, account core.Account) (core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accts[id]; !ok {
		return core.Account{}, fmt.Errorf("account %s: %w", id, core.ErrAccountNotFound)
	}
	account.ID = id
	s.accts[id] = account
	return account, nil
}

func (s *Store) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accts[id]; !ok {
		return false, nil
	}
	delete(s.accts, id)
	return true, nil
}

func (s *Store) Deposit(_ context.Context, id string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accts[id]
	if !ok {
		return fmt.Errorf("account %s: %w", id, core.ErrAccountNotFound)
	}
	if err := a.Deposit(amount); err != nil {
		return err
	}
	s.accts[id] = a
	return nil
}

func (s *Store) Withdraw(_ context.Context, id string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accts[id]
	if !ok {
		return fmt.Errorf("account %s: %w", id, core.ErrAccountNotFound)
	}
	if err := a.Withdraw(amount); err != nil {
		return err
	}
	s.accts[id] = a
	return nil
}

// Ledger is the in-memory TransactionLedger.
type Ledger struct {
	mu  sync.Mutex
	txs []core.Transaction
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Append(_ context.Context, tx core.Transaction) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.txs = append(l.txs, tx)
	return tx.ID, nil
}

func (l *Ledger) FindByAccount(_ context.Context, accountID string) ([]core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []core.Transaction
	for _, tx := range l.txs {
		if tx.FromAccountID == accountID || tx.ToAccountID == accountID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (l *Ledger) FindByCategory(_ context.Context, category core.Category) ([]core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []core.Transaction
	for _, tx := range l.txs {
		if tx.Category == category {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (l *Ledger) FindByDateRange(_ context.Context, start, end time.Time) ([]core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []core.Transaction
	for _, tx := range l.txs {
		if inRange(tx.CreatedAt, start, end) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (l *Ledger) FindByAccountAndDateRange(_ context.Context, accountID string, start, end time.Time) ([]core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []core.Transaction
	for _, tx := range l.txs {
		if (tx.FromAccountID == accountID || tx.ToAccountID == accountID) && inRange(tx.CreatedAt, start, end) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// inRange is inclusive on both bounds.
func inRange(ts, start, end time.Time) bool {
	return !ts.Before(start) && !ts.After(end)
}
