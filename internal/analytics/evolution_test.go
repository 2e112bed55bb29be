package analytics

import (
	"math"
	"reflect"
	"testing"
	"time"

	"golang.org/x/text/language"

	"gastos/internal/core"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func rec(date, cat string, amount float64) core.ExpenseRecord {
	return core.ExpenseRecord{Date: date, CategoryID: cat, Amount: amount}
}

func TestBuildMonthlyEvolution_SeriesAndHeadline(t *testing.T) {
	records := []core.ExpenseRecord{
		rec("2025-01-05", "food", 100),
		rec("2025-02-10", "food", 200),
	}
	today := day(2025, 3, 1)

	ev := BuildMonthlyEvolution(records, core.PeriodLast6Months, core.CategoryAll, today, language.Spanish)
	if ev == nil {
		t.Fatal("BuildMonthlyEvolution returned nil")
	}

	wantKeys := []string{"2024-10", "2024-11", "2024-12", "2025-01", "2025-02", "2025-03"}
	if !reflect.DeepEqual(ev.MonthKeys, wantKeys) {
		t.Fatalf("MonthKeys = %v, want %v", ev.MonthKeys, wantKeys)
	}
	if ev.InProgressMonthKey != "2025-03" {
		t.Errorf("InProgressMonthKey = %q, want 2025-03", ev.InProgressMonthKey)
	}

	totals := map[string]float64{}
	for _, p := range ev.Series {
		totals[p.MonthKey] = p.Total
	}
	if totals["2025-01"] != 100 || totals["2025-02"] != 200 {
		t.Errorf("series totals wrong: %v", totals)
	}
	for _, empty := range []string{"2024-10", "2024-11", "2024-12", "2025-03"} {
		if got, present := totals[empty]; !present || got != 0 {
			t.Errorf("month %s should appear with total 0, got (%v, %v)", empty, got, present)
		}
	}

	hc := ev.HeadlineComparison
	if hc == nil {
		t.Fatal("HeadlineComparison is nil")
	}
	if hc.Current.MonthKey != "2025-02" || hc.Previous.MonthKey != "2025-01" {
		t.Errorf("compares %s vs %s, want 2025-02 vs 2025-01", hc.Current.MonthKey, hc.Previous.MonthKey)
	}
	if hc.DeltaAmount != 100 {
		t.Errorf("DeltaAmount = %v, want 100", hc.DeltaAmount)
	}
	if hc.DeltaPct == nil || *hc.DeltaPct != 100 {
		t.Errorf("DeltaPct = %v, want 100", hc.DeltaPct)
	}
}

func TestBuildMonthlyEvolution_CategoryFilter(t *testing.T) {
	records := []core.ExpenseRecord{
		rec("2025-01-05", "food", 100),
		rec("2025-01-06", "transport", 40),
	}
	ev := BuildMonthlyEvolution(records, core.PeriodLast6Months, "transport", day(2025, 2, 1), language.Spanish)
	for _, p := range ev.Series {
		if p.MonthKey == "2025-01" && p.Total != 40 {
			t.Errorf("filtered total = %v, want 40", p.Total)
		}
	}
}

func TestBuildMonthlyEvolution_DropsBadRecords(t *testing.T) {
	records := []core.ExpenseRecord{
		rec("2025-01-05", "food", 100),
		rec("bad-date", "food", 50),
		rec("2025-01-07", "food", math.NaN()),
	}
	ev := BuildMonthlyEvolution(records, core.PeriodLast6Months, core.CategoryAll, day(2025, 2, 1), language.Spanish)
	for _, p := range ev.Series {
		if p.MonthKey == "2025-01" && p.Total != 100 {
			t.Errorf("total with bad records = %v, want 100", p.Total)
		}
	}
}

func TestBuildMonthlyEvolution_HeadlineNilCases(t *testing.T) {
	t.Run("january year to date has no closed months", func(t *testing.T) {
		ev := BuildMonthlyEvolution(nil, core.PeriodYearToDate, core.CategoryAll, day(2025, 1, 15), language.Spanish)
		if len(ev.MonthKeys) != 1 {
			t.Fatalf("MonthKeys = %v, want just january", ev.MonthKeys)
		}
		if ev.HeadlineComparison != nil {
			t.Error("HeadlineComparison should be nil with <2 closed months")
		}
	})

	t.Run("delta pct nil when previous total zero", func(t *testing.T) {
		records := []core.ExpenseRecord{rec("2025-02-10", "food", 200)}
		ev := BuildMonthlyEvolution(records, core.PeriodLast6Months, core.CategoryAll, day(2025, 3, 1), language.Spanish)
		hc := ev.HeadlineComparison
		if hc == nil {
			t.Fatal("HeadlineComparison is nil")
		}
		if hc.DeltaAmount != 200 {
			t.Errorf("DeltaAmount = %v, want 200", hc.DeltaAmount)
		}
		if hc.DeltaPct != nil {
			t.Errorf("DeltaPct = %v, want nil when previous total is 0", *hc.DeltaPct)
		}
	})
}

func TestBuildMonthlyEvolution_MoMDeltaMap(t *testing.T) {
	records := []core.ExpenseRecord{
		rec("2024-12-05", "food", 100),
		rec("2025-01-05", "food", 150),
		rec("2025-02-10", "food", 75),
	}
	ev := BuildMonthlyEvolution(records, core.PeriodLast6Months, core.CategoryAll, day(2025, 2, 20), language.Spanish)

	if len(ev.MoMDeltaPct) != len(ev.MonthKeys) {
		t.Fatalf("delta map has %d entries, want one per month key", len(ev.MoMDeltaPct))
	}
	if d := ev.MoMDeltaPct["2025-01"]; d == nil || *d != 50 {
		t.Errorf("delta for 2025-01 = %v, want 50", d)
	}
	// In-progress month never gets a delta.
	if d := ev.MoMDeltaPct["2025-02"]; d != nil {
		t.Errorf("delta for in-progress month = %v, want nil", *d)
	}
	// First month has no predecessor in the series.
	if d := ev.MoMDeltaPct["2024-09"]; d != nil {
		t.Errorf("delta for first month = %v, want nil", *d)
	}
	// Zero-base predecessor yields nil.
	if d := ev.MoMDeltaPct["2024-12"]; d != nil {
		t.Errorf("delta after empty month = %v, want nil", *d)
	}
}

func TestBuildMonthlyEvolution_UnknownPeriod(t *testing.T) {
	if ev := BuildMonthlyEvolution(nil, core.Period("weekly"), core.CategoryAll, day(2025, 1, 1), language.Spanish); ev != nil {
		t.Errorf("unknown period should yield nil, got %+v", ev)
	}
}

func TestBuildMonthlyEvolution_Idempotent(t *testing.T) {
	records := []core.ExpenseRecord{
		rec("2025-01-05", "food", 100),
		rec("2025-02-10", "transport", 200),
	}
	today := day(2025, 3, 1)
	a := BuildMonthlyEvolution(records, core.PeriodLast12Months, core.CategoryAll, today, language.Spanish)
	b := BuildMonthlyEvolution(records, core.PeriodLast12Months, core.CategoryAll, today, language.Spanish)
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated invocation with identical inputs differs")
	}
}
