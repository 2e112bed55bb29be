package insights

import (
	"strings"
	"testing"

	"golang.org/x/text/language"

	"gastos/internal/analytics"
)

func summaryWith(categories []analytics.CategoryShare, count int) *analytics.MonthSummary {
	total := 0.0
	for _, c := range categories {
		total += c.Amount
	}
	return &analytics.MonthSummary{MonthKey: "2025-05", Total: total, Categories: categories, Count: count}
}

func TestMonthSummaryInsight_NoExpenses(t *testing.T) {
	for _, s := range []*analytics.MonthSummary{nil, summaryWith(nil, 0)} {
		got := MonthSummaryInsight(s, language.Spanish)
		if got.Kind != KindNoExpenses || got.Confidence != ConfidenceLow {
			t.Errorf("got %+v, want no-expenses kind with low confidence", got)
		}
		if !strings.Contains(got.Message, "Aún no hay gastos") {
			t.Errorf("message = %q", got.Message)
		}
	}
}

func TestMonthSummaryInsight_TopCategories(t *testing.T) {
	s := summaryWith([]analytics.CategoryShare{
		{CategoryID: "leisure", Amount: 500, Pct: 0.5},
		{CategoryID: "food", Amount: 400, Pct: 0.4},
		{CategoryID: "transport", Amount: 100, Pct: 0.1},
	}, 7)

	got := MonthSummaryInsight(s, language.Spanish)
	if got.Kind != KindSummary || got.Confidence != ConfidenceHigh {
		t.Fatalf("got %+v", got)
	}
	for _, want := range []string{"leisure (50%)", "food (40%)", "transport (10%)"} {
		if !strings.Contains(got.Message, want) {
			t.Errorf("message %q missing %q", got.Message, want)
		}
	}
	// Only 3 categories: no aggregate share line.
	if strings.Contains(got.Message, "concentran") {
		t.Errorf("message %q should not carry the top-3 share line", got.Message)
	}
}

func TestMonthSummaryInsight_TopShareLineWithManyCategories(t *testing.T) {
	s := summaryWith([]analytics.CategoryShare{
		{CategoryID: "a", Amount: 400, Pct: 0.4},
		{CategoryID: "b", Amount: 300, Pct: 0.3},
		{CategoryID: "c", Amount: 150, Pct: 0.15},
		{CategoryID: "d", Amount: 100, Pct: 0.1},
		{CategoryID: "e", Amount: 50, Pct: 0.05},
	}, 9)

	got := MonthSummaryInsight(s, language.Spanish)
	if !strings.Contains(got.Message, "Las 3 principales concentran el 85%") {
		t.Errorf("message = %q, want top-3 share line", got.Message)
	}
	// Only the top 3 categories are named.
	if strings.Contains(got.Message, "d (") || strings.Contains(got.Message, "e (") {
		t.Errorf("message %q names more than 3 categories", got.Message)
	}
}

func TestMonthSummaryInsight_ConfidenceLevels(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{count: 1, want: ConfidenceLow},
		{count: 2, want: ConfidenceMedium},
		{count: 4, want: ConfidenceMedium},
		{count: 5, want: ConfidenceHigh},
	}

	cats := []analytics.CategoryShare{{CategoryID: "food", Amount: 100, Pct: 1}}
	for _, tt := range tests {
		got := MonthSummaryInsight(summaryWith(cats, tt.count), language.Spanish)
		if got.Confidence != tt.want {
			t.Errorf("count %d: confidence = %q, want %q", tt.count, got.Confidence, tt.want)
		}
	}
}

func TestMonthSummaryInsight_English(t *testing.T) {
	s := summaryWith([]analytics.CategoryShare{{CategoryID: "", Amount: 100, Pct: 1}}, 1)
	got := MonthSummaryInsight(s, language.English)
	if !strings.Contains(got.Message, "uncategorized (100%)") {
		t.Errorf("message = %q", got.Message)
	}
}
