package storage

import (
	"context"
	"path/filepath"
	"testing"

	"gastos/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "gastos.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestInsertAndListExpenses(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	records := []core.ExpenseRecord{
		{Date: "2025-01-05", CategoryID: "food", Amount: 100, Currency: "EUR"},
		{Date: "2025-02-10", CategoryID: "transport", Amount: 200, Currency: "EUR"},
		{Date: "2025-03-01", CategoryID: "food", Amount: 50, Currency: "EUR"},
	}
	for _, rec := range records {
		if _, err := repo.InsertExpense(ctx, "u1", rec); err != nil {
			t.Fatalf("InsertExpense: %v", err)
		}
	}
	if _, err := repo.InsertExpense(ctx, "u2", records[0]); err != nil {
		t.Fatalf("InsertExpense other user: %v", err)
	}

	t.Run("scoped to user", func(t *testing.T) {
		got, err := repo.ListExpenses(ctx, "u1", "", "")
		if err != nil {
			t.Fatalf("ListExpenses: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("got %d records, want 3", len(got))
		}
		if got[0].Date != "2025-01-05" || got[2].Date != "2025-03-01" {
			t.Errorf("not ordered by date: %+v", got)
		}
	})

	t.Run("date range bounds", func(t *testing.T) {
		got, err := repo.ListExpenses(ctx, "u1", "2025-02-01", "2025-02-28")
		if err != nil {
			t.Fatalf("ListExpenses: %v", err)
		}
		if len(got) != 1 || got[0].CategoryID != "transport" {
			t.Errorf("got %+v, want just february", got)
		}
	})

	t.Run("open lower bound", func(t *testing.T) {
		got, err := repo.ListExpenses(ctx, "u1", "", "2025-01-31")
		if err != nil {
			t.Fatalf("ListExpenses: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("got %d records, want 1", len(got))
		}
	})

	t.Run("unknown user yields empty", func(t *testing.T) {
		got, err := repo.ListExpenses(ctx, "nobody", "", "")
		if err != nil {
			t.Fatalf("ListExpenses: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("got %+v, want none", got)
		}
	})
}

func TestInsertExpense_RejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.InsertExpense(context.Background(), "u1", core.ExpenseRecord{Date: "not-a-date", Amount: 10})
	if err == nil {
		t.Fatal("invalid record was accepted")
	}
}

func TestDeleteExpense(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.InsertExpense(ctx, "u1", core.ExpenseRecord{Date: "2025-01-05", CategoryID: "food", Amount: 100})
	if err != nil {
		t.Fatalf("InsertExpense: %v", err)
	}
	if err := repo.DeleteExpense(ctx, id); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	got, err := repo.ListExpenses(ctx, "u1", "", "")
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("record still present after delete: %+v", got)
	}

	// Replayed deletes are harmless.
	if err := repo.DeleteExpense(ctx, id); err != nil {
		t.Errorf("repeat delete errored: %v", err)
	}
}
