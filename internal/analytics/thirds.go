package analytics

import (
	"gastos/internal/calendar"
	"gastos/internal/core"
)

// ThirdRange is one of the three contiguous day-ranges partitioning a
// month. Pct is the range's fraction of the month total, in 0..1, and
// 0 when the month has no spend.
type ThirdRange struct {
	StartDay int     `json:"startDay"`
	EndDay   int     `json:"endDay"`
	Amount   float64 `json:"amount"`
	Pct      float64 `json:"pct"`
}

// MonthThirdsMetrics describes how one month's spend distributes over
// its first, second and third third.
type MonthThirdsMetrics struct {
	MonthKey   string     `json:"monthKey"`
	T1         ThirdRange `json:"t1"`
	T2         ThirdRange `json:"t2"`
	T3         ThirdRange `json:"t3"`
	ActiveDays int        `json:"activeDays"`
	TotalMonth float64    `json:"totalMonth"`
}

// BuildMonthThirds partitions the month's days into three near-equal
// contiguous ranges and sums matching records per range. Returns nil
// for an invalid month key. A TotalMonth of 0 means the month has no
// data; fractions are then 0, never NaN.
func BuildMonthThirds(records []core.ExpenseRecord, monthKey string) *MonthThirdsMetrics {
	days, ok := calendar.DaysInMonth(monthKey)
	if !ok {
		return nil
	}

	// T1 = days 1..ceil(D/3), T2 the next third, T3 the remainder.
	t1End := (days + 2) / 3
	t2End := (2*days + 2) / 3

	byDay := make(map[int]float64)
	for _, rec := range records {
		if rec.Validate() != nil {
			continue
		}
		key, ok := calendar.MonthKeyFromDate(rec.Date)
		if !ok || key != monthKey {
			continue
		}
		day, _ := calendar.DayOfMonth(rec.Date)
		byDay[day] += rec.Amount
	}

	m := &MonthThirdsMetrics{
		MonthKey: monthKey,
		T1:       ThirdRange{StartDay: 1, EndDay: t1End},
		T2:       ThirdRange{StartDay: t1End + 1, EndDay: t2End},
		T3:       ThirdRange{StartDay: t2End + 1, EndDay: days},
	}

	for day, amount := range byDay {
		switch {
		case day <= t1End:
			m.T1.Amount += amount
		case day <= t2End:
			m.T2.Amount += amount
		default:
			m.T3.Amount += amount
		}
	}
	m.ActiveDays = len(byDay)
	m.TotalMonth = m.T1.Amount + m.T2.Amount + m.T3.Amount

	if m.TotalMonth > 0 {
		m.T1.Pct = m.T1.Amount / m.TotalMonth
		m.T2.Pct = m.T2.Amount / m.TotalMonth
		m.T3.Pct = m.T3.Amount / m.TotalMonth
	}
	return m
}
