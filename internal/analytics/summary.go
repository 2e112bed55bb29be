package analytics

import (
	"sort"

	"gastos/internal/calendar"
	"gastos/internal/core"
)

// CategoryShare is one category's slice of a month's spend. Pct is a
// fraction of the month total in 0..1, 0 when the total is 0.
type CategoryShare struct {
	CategoryID string  `json:"categoryId"`
	Amount     float64 `json:"amount"`
	Pct        float64 `json:"pct"`
}

// MonthSummary is the per-month roll-up feeding the summary insight:
// total to date, categories ranked by amount, and the record count.
type MonthSummary struct {
	MonthKey   string          `json:"monthKey"`
	Total      float64         `json:"total"`
	Categories []CategoryShare `json:"categories"`
	Count      int             `json:"count"`
}

// BuildMonthSummary aggregates one month's records by category.
// Returns nil for an invalid month key. Ranking is stable: categories
// with equal amounts keep their first-seen order.
func BuildMonthSummary(records []core.ExpenseRecord, monthKey string) *MonthSummary {
	if !calendar.ValidMonthKey(monthKey) {
		return nil
	}

	s := &MonthSummary{MonthKey: monthKey}
	totals := make(map[string]float64)
	var order []string
	for _, rec := range records {
		if rec.Validate() != nil {
			continue
		}
		key, ok := calendar.MonthKeyFromDate(rec.Date)
		if !ok || key != monthKey {
			continue
		}
		if _, seen := totals[rec.CategoryID]; !seen {
			order = append(order, rec.CategoryID)
		}
		totals[rec.CategoryID] += rec.Amount
		s.Total += rec.Amount
		s.Count++
	}

	s.Categories = make([]CategoryShare, 0, len(order))
	for _, cat := range order {
		share := CategoryShare{CategoryID: cat, Amount: totals[cat]}
		if s.Total > 0 {
			share.Pct = share.Amount / s.Total
		}
		s.Categories = append(s.Categories, share)
	}
	sort.SliceStable(s.Categories, func(i, j int) bool {
		return s.Categories[i].Amount > s.Categories[j].Amount
	})
	return s
}
