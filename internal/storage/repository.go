// Package storage is the SQLite-backed implementation of the bank
// ports. Accounts and transactions live in two tables; transaction rows
// are written once and never updated. Monetary values are persisted as
// their decimal string representation so no precision is lost, and
// timestamps as UTC unix nanoseconds so range scans are exact.
//
// Deposit and Withdraw are read-modify-write; callers serialize them
// per account through the shared lock table, the same discipline the
// in-memory backend relies on.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"futurebank/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Create(ctx context.Context, ownerID, accountType string, initialBalance decimal.Decimal) (core.Account, error) {
	a := core.NewAccount(uuid.NewString(), ownerID, accountType, initialBalance)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, owner_id, account_type, balance) VALUES (?, ?, ?, ?)`,
		a.ID, a.OwnerID, a.AccountType, a.Balance().String())
	if err != nil {
		return core.Account{}, fmt.Errorf("insert account: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (core.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, account_type, balance FROM accounts WHERE id = ?`, id)
	return scanAccount(row, id)
}

func (r *SQLiteRepository) List(ctx context.Context) ([]core.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, account_type, balance FROM accounts`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		var id, ownerID, accountType, balance string
		if err := rows.Scan(&id, &ownerID, &accountType, &balance); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a, err := restoreAccount(id, ownerID, accountType, balance)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, account core.Account) (core.Account, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET owner_id = ?, account_type = ?, balance = ? WHERE id = ?`,
		account.OwnerID, account.AccountType, account.Balance().String(), id)
	if err != nil {
		return core.Account{}, fmt.Errorf("update account: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.Account{}, fmt.Errorf("update account rows affected: %w", err)
	}
	if affected == 0 {
		return core.Account{}, fmt.Errorf("account %s: %w", id, core.ErrAccountNotFound)
	}
	return core.RestoreAccount(id, account.OwnerID, account.AccountType, account.Balance()), nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete account: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete account rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *SQLiteRepository) Deposit(ctx context.Context, id string, amount decimal.Decimal) error {
	a, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := a.Deposit(amount); err != nil {
		return err
	}
	return r.writeBalance(ctx, id, a.Balance())
}

func (r *SQLiteRepository) Withdraw(ctx context.Context, id string, amount decimal.Decimal) error {
	a, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := a.Withdraw(amount); err != nil {
		return err
	}
	return r.writeBalance(ctx, id, a.Balance())
}

func (r *SQLiteRepository) writeBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET balance = ? WHERE id = ?`, balance.String(), id)
	if err != nil {
		return fmt.Errorf("write balance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write balance rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("account %s: %w", id, core.ErrAccountNotFound)
	}
	return nil
}

func (r *SQLiteRepository) Append(ctx context.Context, tx core.Transaction) (string, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, from_account_id, to_account_id, amount, category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.FromAccountID, tx.ToAccountID, tx.Amount.String(), tx.Category.String(), tx.CreatedAt.UTC().UnixNano())
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}
	return tx.ID, nil
}

func (r *SQLiteRepository) FindByAccount(ctx context.Context, accountID string) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT id, from_account_id, to_account_id, amount, category, created_at
		 FROM transactions WHERE from_account_id = ? OR to_account_id = ?`,
		accountID, accountID)
}

func (r *SQLiteRepository) FindByCategory(ctx context.Context, category core.Category) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT id, from_account_id, to_account_id, amount, category, created_at
		 FROM transactions WHERE category = ?`,
		category.String())
}

func (r *SQLiteRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT id, from_account_id, to_account_id, amount, category, created_at
		 FROM transactions WHERE created_at BETWEEN ? AND ?`,
		start.UTC().UnixNano(), end.UTC().UnixNano())
}

func (r *SQLiteRepository) FindByAccountAndDateRange(ctx context.Context, accountID string, start, end time.Time) ([]core.Transaction, error) {
	return r.queryTransactions(ctx,
		`SELECT id, from_account_id, to_account_id, amount, category, created_at
		 FROM transactions
		 WHERE (from_account_id = ? OR to_account_id = ?) AND created_at BETWEEN ? AND ?`,
		accountID, accountID, start.UTC().UnixNano(), end.UTC().UnixNano())
}

func (r *SQLiteRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			id, fromID, toID, amount, category string
			createdAt                          int64
		)
		if err := rows.Scan(&id, &fromID, &toID, &amount, &category, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse stored amount %q: %w", amount, err)
		}
		out = append(out, core.Transaction{
			ID:            id,
			FromAccountID: fromID,
			ToAccountID:   toID,
			Amount:        amt,
			Category:      core.Category(category),
			CreatedAt:     time.Unix(0, createdAt).UTC(),
		})
	}
	return out, rows.Err()
}

func scanAccount(row *sql.Row, id string) (core.Account, error) {
	var accID, ownerID, accountType, balance string
	if err := row.Scan(&accID, &ownerID, &accountType, &balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Account{}, fmt.Errorf("account %s: %w", id, core.ErrAccountNotFound)
		}
		return core.Account{}, fmt.Errorf("scan account: %w", err)
	}
	return restoreAccount(accID, ownerID, accountType, balance)
}

func restoreAccount(id, ownerID, accountType, balance string) (core.Account, error) {
	b, err := decimal.NewFromString(balance)
	if err != nil {
		return core.Account{}, fmt.Errorf("parse stored balance %q: %w", balance, err)
	}
	return core.RestoreAccount(id, ownerID, accountType, b), nil
}
