package analytics

import (
	"sort"

	"gastos/internal/calendar"
	"gastos/internal/core"
)

// PaceStatus classifies the pace ratio R against the configured
// thresholds.
type PaceStatus string

const (
	StatusContenido PaceStatus = "contenido"
	StatusNormal    PaceStatus = "normal"
	StatusAcelerado PaceStatus = "acelerado"
)

// PaceConfidence expresses how many prior months qualified as
// baseline.
type PaceConfidence string

const (
	ConfidenceSinReferencia PaceConfidence = "sin_referencia"
	ConfidencePreliminar    PaceConfidence = "preliminar"
	ConfidenceSolida        PaceConfidence = "solida"
)

// MonthPaceConfig holds the externally tunable knobs of the pace
// builder. All other analytics thresholds are fixed constants.
type MonthPaceConfig struct {
	MinActiveDays      int     `json:"minActiveDays"`
	MaxFirstExpenseDay int     `json:"maxFirstExpenseDay"`
	ThresholdContenido float64 `json:"thresholdContenido"`
	ThresholdAcelerado float64 `json:"thresholdAcelerado"`
	MaxBaselineMonths  int     `json:"maxBaselineMonths"`
}

// DefaultMonthPaceConfig returns the stock configuration.
func DefaultMonthPaceConfig() MonthPaceConfig {
	return MonthPaceConfig{
		MinActiveDays:      8,
		MaxFirstExpenseDay: 15,
		ThresholdContenido: 0.9,
		ThresholdAcelerado: 1.1,
		MaxBaselineMonths:  3,
	}
}

// normalized clamps out-of-range knobs back to usable values so the
// builder stays total even on a careless config.
func (c MonthPaceConfig) normalized() MonthPaceConfig {
	if c.MinActiveDays < 1 {
		c.MinActiveDays = 1
	}
	if c.MaxFirstExpenseDay < 1 {
		c.MaxFirstExpenseDay = 1
	} else if c.MaxFirstExpenseDay > 31 {
		c.MaxFirstExpenseDay = 31
	}
	if c.MaxBaselineMonths < 1 {
		c.MaxBaselineMonths = 1
	} else if c.MaxBaselineMonths > 3 {
		c.MaxBaselineMonths = 3
	}
	return c
}

// PacePoint is one day of the pace chart. Baseline is nil when no
// prior month qualified.
type PacePoint struct {
	Day      int      `json:"day"`
	Actual   float64  `json:"actual"`
	Baseline *float64 `json:"baseline,omitempty"`
}

// BaselineExclusion records why a prior month was disqualified from
// the baseline. Diagnostic only, never a failure.
type BaselineExclusion struct {
	MonthKey string `json:"monthKey"`
	Reason   string `json:"reason"`
}

// MonthPaceResult compares the selected month's cumulative spend
// against the median cumulative spend of qualifying prior months.
type MonthPaceResult struct {
	SelectedMonthKey   string              `json:"selectedMonthKey"`
	DayLimit           int                 `json:"dayLimit"`
	ActualToDay        float64             `json:"actualToDay"`
	BaselineToDay      *float64            `json:"baselineToDay"`
	AvgDailyActual     float64             `json:"avgDailyActual"`
	R                  *float64            `json:"r"`
	DeltaPct           *float64            `json:"deltaPct"`
	Status             *PaceStatus         `json:"status"`
	Confidence         PaceConfidence      `json:"confidence"`
	BaselineMonthsUsed []string            `json:"baselineMonthsUsed"`
	Excluded           []BaselineExclusion `json:"excluded,omitempty"`
	Chart              []PacePoint         `json:"chart"`
}

// monthCumulative is the per-day cumulative spend of one month.
type monthCumulative struct {
	key        string
	days       int
	activeDays int
	firstDay   int       // first day with a record, 0 when none
	cumulative []float64 // index d-1 holds total through day d
}

// buildMonthCumulative aggregates one month's records into daily and
// cumulative totals. Records outside the month are ignored.
func buildMonthCumulative(records []core.ExpenseRecord, monthKey string) monthCumulative {
	days, _ := calendar.DaysInMonth(monthKey)
	mc := monthCumulative{key: monthKey, days: days, cumulative: make([]float64, days)}

	daily := make([]float64, days+1)
	seen := make(map[int]bool)
	for _, rec := range records {
		if rec.Validate() != nil {
			continue
		}
		key, ok := calendar.MonthKeyFromDate(rec.Date)
		if !ok || key != monthKey {
			continue
		}
		day, _ := calendar.DayOfMonth(rec.Date)
		daily[day] += rec.Amount
		seen[day] = true
		if mc.firstDay == 0 || day < mc.firstDay {
			mc.firstDay = day
		}
	}

	running := 0.0
	for d := 1; d <= days; d++ {
		running += daily[d]
		mc.cumulative[d-1] = running
	}
	mc.activeDays = len(seen)
	return mc
}

// at returns the cumulative total at the given day, looked up at
// min(day, daysInMonth) to tolerate shorter months.
func (mc monthCumulative) at(day int) float64 {
	if day > mc.days {
		day = mc.days
	}
	return mc.cumulative[day-1]
}

// median of a small sample; values are copied before sorting.
func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// BuildMonthPace computes cumulative spend through dayLimit for the
// selected month against a baseline made of up to cfg.MaxBaselineMonths
// qualifying prior months. Returns nil when selectedMonthKey is not a
// valid month key. With no qualifying months, R, DeltaPct and Status
// are all nil and Confidence is "sin_referencia".
func BuildMonthPace(records []core.ExpenseRecord, selectedMonthKey string, dayLimit int, cfg MonthPaceConfig) *MonthPaceResult {
	days, ok := calendar.DaysInMonth(selectedMonthKey)
	if !ok {
		return nil
	}
	cfg = cfg.normalized()

	if dayLimit < 1 {
		dayLimit = 1
	} else if dayLimit > days {
		dayLimit = days
	}

	selected := buildMonthCumulative(records, selectedMonthKey)

	result := &MonthPaceResult{
		SelectedMonthKey:   selectedMonthKey,
		DayLimit:           dayLimit,
		ActualToDay:        selected.at(dayLimit),
		BaselineMonthsUsed: []string{},
	}
	result.AvgDailyActual = result.ActualToDay / float64(dayLimit)

	var baseline []monthCumulative
	for i := 1; i <= cfg.MaxBaselineMonths; i++ {
		key, _ := calendar.ShiftMonthKey(selectedMonthKey, -i)
		mc := buildMonthCumulative(records, key)
		switch {
		case mc.firstDay == 0:
			result.Excluded = append(result.Excluded, BaselineExclusion{MonthKey: key, Reason: "sin_movimientos"})
		case mc.activeDays < cfg.MinActiveDays:
			result.Excluded = append(result.Excluded, BaselineExclusion{MonthKey: key, Reason: "pocos_dias_activos"})
		case mc.firstDay > cfg.MaxFirstExpenseDay:
			result.Excluded = append(result.Excluded, BaselineExclusion{MonthKey: key, Reason: "primer_gasto_tardio"})
		default:
			baseline = append(baseline, mc)
			result.BaselineMonthsUsed = append(result.BaselineMonthsUsed, key)
		}
	}

	switch len(baseline) {
	case 0:
		result.Confidence = ConfidenceSinReferencia
	case 1:
		result.Confidence = ConfidencePreliminar
	default:
		result.Confidence = ConfidenceSolida
	}

	result.Chart = make([]PacePoint, 0, dayLimit)
	sample := make([]float64, len(baseline))
	for d := 1; d <= dayLimit; d++ {
		point := PacePoint{Day: d, Actual: selected.at(d)}
		if len(baseline) > 0 {
			for i, mc := range baseline {
				sample[i] = mc.at(d)
			}
			b := median(sample)
			point.Baseline = &b
		}
		result.Chart = append(result.Chart, point)
	}

	if len(baseline) > 0 {
		last := result.Chart[dayLimit-1].Baseline
		result.BaselineToDay = last
		if *last > 0 {
			r := result.ActualToDay / *last
			delta := (r - 1) * 100
			status := StatusNormal
			if r < cfg.ThresholdContenido {
				status = StatusContenido
			} else if r > cfg.ThresholdAcelerado {
				status = StatusAcelerado
			}
			result.R = &r
			result.DeltaPct = &delta
			result.Status = &status
		}
	}
	return result
}
