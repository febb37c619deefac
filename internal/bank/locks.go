package bank

import (
	"sort"
	"sync"
)

// AccountLocks serializes balance mutation per account id. Every
// balance-mutating path (transfers, direct deposits and withdrawals,
// full-record updates) acquires the account's lock first, so concurrent
// operations on the same account are linearized. Locks for multiple
// accounts are always taken in ascending id order, which prevents two
// transfers moving funds in opposite directions between the same pair
// from deadlocking. Duplicate ids (self-transfer) collapse to one lock.
type AccountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewAccountLocks() *AccountLocks {
	return &AccountLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *AccountLocks) get(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

// Acquire locks the given account ids in ascending order and returns a
// release function that unlocks them in reverse order.
func (l *AccountLocks) Acquire(ids ...string) func() {
	ordered := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, id)
	}
	sort.Strings(ordered)

	held := make([]*sync.Mutex, 0, len(ordered))
	for _, id := range ordered {
		m := l.get(id)
		m.Lock()
		held = append(held, m)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
