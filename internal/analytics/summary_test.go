package analytics

import (
	"math"
	"testing"

	"gastos/internal/core"
)

func TestBuildMonthSummary_RankingAndShares(t *testing.T) {
	records := []core.ExpenseRecord{
		rec("2025-05-02", "food", 300),
		rec("2025-05-04", "transport", 100),
		rec("2025-05-10", "food", 100),
		rec("2025-05-12", "leisure", 500),
		rec("2025-06-01", "food", 999), // other month
		rec("bad", "food", 10),         // dropped
	}

	s := BuildMonthSummary(records, "2025-05")
	if s == nil {
		t.Fatal("BuildMonthSummary returned nil")
	}
	if s.Total != 1000 || s.Count != 4 {
		t.Fatalf("Total/Count = %v/%d, want 1000/4", s.Total, s.Count)
	}

	if len(s.Categories) != 3 {
		t.Fatalf("Categories = %v, want 3 entries", s.Categories)
	}
	if s.Categories[0].CategoryID != "leisure" || s.Categories[1].CategoryID != "food" || s.Categories[2].CategoryID != "transport" {
		t.Errorf("ranking wrong: %+v", s.Categories)
	}
	if math.Abs(s.Categories[0].Pct-0.5) > 1e-9 || math.Abs(s.Categories[1].Pct-0.4) > 1e-9 {
		t.Errorf("shares wrong: %+v", s.Categories)
	}
}

func TestBuildMonthSummary_StableTies(t *testing.T) {
	records := []core.ExpenseRecord{
		rec("2025-05-02", "b-first", 100),
		rec("2025-05-03", "a-second", 100),
	}
	s := BuildMonthSummary(records, "2025-05")
	if s.Categories[0].CategoryID != "b-first" {
		t.Errorf("equal amounts must keep first-seen order, got %+v", s.Categories)
	}
}

func TestBuildMonthSummary_Empty(t *testing.T) {
	s := BuildMonthSummary(nil, "2025-05")
	if s == nil || s.Count != 0 || s.Total != 0 || len(s.Categories) != 0 {
		t.Errorf("empty month summary = %+v", s)
	}
}

func TestBuildMonthSummary_InvalidKey(t *testing.T) {
	if s := BuildMonthSummary(nil, "mayo"); s != nil {
		t.Errorf("invalid key should yield nil, got %+v", s)
	}
}
