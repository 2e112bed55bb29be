// Package storage persists expense records in SQLite. It is the
// "fetch expenses for a user in a date range" collaborator the
// analytics core consumes; the core itself never touches it.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"gastos/internal/core"

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

// ListExpenses returns a user's expense records with date in
// [from, to], both YYYY-MM-DD inclusive. An empty bound is open.
// Rows come back ordered by date so downstream output is stable.
func (r *SQLiteRepository) ListExpenses(ctx context.Context, userID, from, to string) ([]core.ExpenseRecord, error) {
	query := `SELECT date, category_id, amount, currency FROM expenses WHERE user_id = ?`
	args := []any{userID}
	if from != "" {
		query += ` AND date >= ?`
		args = append(args, from)
	}
	if to != "" {
		query += ` AND date <= ?`
		args = append(args, to)
	}
	query += ` ORDER BY date, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var records []core.ExpenseRecord
	for rows.Next() {
		var rec core.ExpenseRecord
		if err := rows.Scan(&rec.Date, &rec.CategoryID, &rec.Amount, &rec.Currency); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return records, nil
}

// InsertExpense stores one record for a user and returns its id.
// The record must have passed core validation already.
func (r *SQLiteRepository) InsertExpense(ctx context.Context, userID string, rec core.ExpenseRecord) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, fmt.Errorf("validate expense: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (user_id, date, category_id, amount, currency) VALUES (?, ?, ?, ?, ?)`,
		userID, rec.Date, rec.CategoryID, rec.Amount, rec.Currency)
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// DeleteExpense removes a record by id. Deleting a missing id is not
// an error; the mutation stream may replay.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}
