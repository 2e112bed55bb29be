// Package analytics implements the spending-analytics core: pure,
// stateless builders that transform a flat list of expense records
// into derived metrics. Builders never perform I/O and never fail on
// bad data; malformed records are skipped and unresolvable inputs
// yield nil results.
package analytics

import (
	"time"

	"golang.org/x/text/language"

	"gastos/internal/calendar"
	"gastos/internal/core"
)

// MonthlyPoint is one point in a continuous month-by-month series.
// Total is 0 for months with no matching records; the series has no
// gaps.
type MonthlyPoint struct {
	MonthKey string  `json:"monthKey"`
	Label    string  `json:"label"`
	Total    float64 `json:"total"`
}

// MonthToMonthComparison pairs the two most recent closed months.
// DeltaPct is nil when the previous total is 0.
type MonthToMonthComparison struct {
	Current     MonthlyPoint `json:"current"`
	Previous    MonthlyPoint `json:"previous"`
	DeltaAmount float64      `json:"deltaAmount"`
	DeltaPct    *float64     `json:"deltaPct"`
}

// MonthlyEvolution is the evolution builder's output.
type MonthlyEvolution struct {
	MonthKeys          []string                `json:"monthKeys"`
	Series             []MonthlyPoint          `json:"series"`
	InProgressMonthKey string                  `json:"inProgressMonthKey"`
	HeadlineComparison *MonthToMonthComparison `json:"headlineComparison"`
	// MoMDeltaPct maps each month key to its month-over-month delta
	// percentage, nil wherever either side is in progress, missing,
	// or the earlier total is 0.
	MoMDeltaPct map[string]*float64 `json:"momDeltaPct"`
}

// periodKeys resolves a period selector into the ordered month keys it
// covers, anchored at today's month inclusive.
func periodKeys(period core.Period, anchor string) []string {
	switch period {
	case core.PeriodLast6Months:
		return calendar.LastNMonthKeys(anchor, 6)
	case core.PeriodLast12Months:
		return calendar.LastNMonthKeys(anchor, 12)
	case core.PeriodYearToDate:
		return calendar.YearToDateKeys(anchor)
	}
	return nil
}

// BuildMonthlyEvolution produces the continuous monthly series for the
// requested period and category filter, anchored at today's month.
// Returns nil for an unknown period. The in-progress month (today's)
// appears in the series but is excluded from every percentage
// comparison because it is incomplete.
func BuildMonthlyEvolution(records []core.ExpenseRecord, period core.Period, category string, today time.Time, lang language.Tag) *MonthlyEvolution {
	anchor := calendar.MonthKeyOf(today)
	keys := periodKeys(period, anchor)
	if keys == nil {
		return nil
	}

	totals := make(map[string]float64, len(keys))
	for _, rec := range records {
		if rec.Validate() != nil || !rec.MatchesCategory(category) {
			continue
		}
		key, ok := calendar.MonthKeyFromDate(rec.Date)
		if !ok {
			continue
		}
		totals[key] += rec.Amount
	}

	series := make([]MonthlyPoint, 0, len(keys))
	for _, key := range keys {
		series = append(series, MonthlyPoint{
			MonthKey: key,
			Label:    calendar.MonthLabel(key, lang),
			Total:    totals[key],
		})
	}

	ev := &MonthlyEvolution{
		MonthKeys:          keys,
		Series:             series,
		InProgressMonthKey: anchor,
		MoMDeltaPct:        momDeltas(series, anchor),
	}
	ev.HeadlineComparison = headlineComparison(series, anchor)
	return ev
}

// headlineComparison pairs the two most recent closed months, or nil
// when fewer than two exist in the series.
func headlineComparison(series []MonthlyPoint, inProgress string) *MonthToMonthComparison {
	closed := make([]MonthlyPoint, 0, len(series))
	for _, p := range series {
		if p.MonthKey != inProgress {
			closed = append(closed, p)
		}
	}
	if len(closed) < 2 {
		return nil
	}

	current := closed[len(closed)-1]
	previous := closed[len(closed)-2]
	cmp := &MonthToMonthComparison{
		Current:     current,
		Previous:    previous,
		DeltaAmount: current.Total - previous.Total,
	}
	if previous.Total != 0 {
		pct := (current.Total - previous.Total) / previous.Total * 100
		cmp.DeltaPct = &pct
	}
	return cmp
}

// momDeltas computes the per-month-key delta map used for tooltips.
// A delta exists only between two closed adjacent months present in
// the series with a non-zero earlier total.
func momDeltas(series []MonthlyPoint, inProgress string) map[string]*float64 {
	deltas := make(map[string]*float64, len(series))
	for i, p := range series {
		deltas[p.MonthKey] = nil
		if i == 0 || p.MonthKey == inProgress {
			continue
		}
		prev := series[i-1]
		if prev.MonthKey == inProgress || prev.Total == 0 {
			continue
		}
		pct := (p.Total - prev.Total) / prev.Total * 100
		deltas[p.MonthKey] = &pct
	}
	return deltas
}
