// Package storage persists the cash book to a single SQLite table. The
// table is created via embedded migrations on startup; every recorded
// transaction is a single durable INSERT and the balance is recomputed by
// aggregation on each read, never cached.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"kasbot/internal/core"

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

// Record appends a transaction dated today and returns its id.
func (r *SQLiteRepository) Record(ctx context.Context, kind core.Kind, amount int64, note string) (int64, error) {
	tx := core.Transaction{Date: core.Today(), Kind: kind, Amount: amount, Note: note}
	if err := tx.Validate(); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (recorded_on, kind, amount, note) VALUES (?, ?, ?, ?)`,
		tx.Date, string(tx.Kind), tx.Amount, tx.Note)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"kind", tx.Kind,
		"amount", tx.Amount,
		"note", tx.Note)

	return id, nil
}

// Balance returns the signed sum over all transactions, 0 when the table
// is empty.
func (r *SQLiteRepository) Balance(ctx context.Context) (int64, error) {
	var balance sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT SUM(CASE WHEN kind = 'MASUK' THEN amount ELSE -amount END) FROM transactions`,
	).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("sum transactions: %w", err)
	}
	if !balance.Valid {
		return 0, nil
	}
	return balance.Int64, nil
}

// History returns every transaction in id order.
func (r *SQLiteRepository) History(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, recorded_on, kind, amount, note FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var tx core.Transaction
		var kind string
		if err := rows.Scan(&tx.ID, &tx.Date, &kind, &tx.Amount, &tx.Note); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Kind = core.Kind(kind)
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return txs, nil
}

// GetTransaction retrieves a single transaction by id.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	var tx core.Transaction
	var kind string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, recorded_on, kind, amount, note FROM transactions WHERE id = ?`, id,
	).Scan(&tx.ID, &tx.Date, &kind, &tx.Amount, &tx.Note)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	tx.Kind = core.Kind(kind)
	return tx, nil
}

// PendingSyncTransaction is the minimal row state the mirror worker needs.
type PendingSyncTransaction struct {
	ID        int64
	CreatedAt time.Time
}

// PendingSync returns up to limit transactions not yet mirrored, oldest
// first.
func (r *SQLiteRepository) PendingSync(ctx context.Context, limit int) ([]PendingSyncTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at FROM transactions WHERE sync_state = 'pending' ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending transactions: %w", err)
	}
	defer rows.Close()

	var pending []PendingSyncTransaction
	for rows.Next() {
		var p PendingSyncTransaction
		if err := rows.Scan(&p.ID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending transaction: %w", err)
		}
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending transactions: %w", err)
	}

	return pending, nil
}

// MarkSynced marks a transaction as successfully mirrored.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_state = 'synced' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	slog.InfoContext(ctx, "Transaction marked as synced", "id", id)
	return nil
}

// MarkSyncError marks a transaction as having failed to mirror.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_state = 'error' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with sync error", "id", id)
	return nil
}
