package insights

import (
	"math"
	"sort"

	"golang.org/x/text/language"

	"gastos/internal/analytics"
)

// Fixed classification thresholds, in integer percentage points.
// These are deliberately not configuration.
const (
	bimodalSpreadPts  = 22 // top-low needed for a two-peak reading
	bimodalTopMidPts  = 8  // top and mid must be this close
	bimodalVsLowPts   = 10 // both peaks must clear the low third by this
	dominancePts      = 10 // top-mid needed for a single-peak reading
	evenSpreadPts     = 12 // top-low at or under this reads as spread out
	minDaysForPattern = 3  // fewer active days is insufficient data
)

// rankedThird is one third with its share converted to points.
type rankedThird struct {
	index int // 1..3
	pts   int
}

// thirdsFacts is everything the rules look at.
type thirdsFacts struct {
	hasData    bool
	activeDays int
	top        rankedThird
	mid        rankedThird
	low        rankedThird
}

// thirdsRules is the ordered decision table. Bimodal is evaluated
// strictly before dominance; their preconditions overlap and the
// earlier rule wins.
var thirdsRules = []struct {
	name   string
	match  func(thirdsFacts) bool
	render func(locale, PeriodTag, thirdsFacts) Insight
}{
	{
		name:   "sin_datos",
		match:  func(f thirdsFacts) bool { return !f.hasData },
		render: func(l locale, p PeriodTag, _ thirdsFacts) Insight { return thirdsNoData(l, p) },
	},
	{
		name:   "datos_insuficientes",
		match:  func(f thirdsFacts) bool { return f.activeDays < minDaysForPattern },
		render: func(l locale, p PeriodTag, f thirdsFacts) Insight { return thirdsInsufficient(l, p, f.activeDays) },
	},
	{
		name: "bimodal",
		match: func(f thirdsFacts) bool {
			return f.top.pts-f.low.pts >= bimodalSpreadPts &&
				f.top.pts-f.mid.pts <= bimodalTopMidPts &&
				f.top.pts-f.low.pts >= bimodalVsLowPts &&
				f.mid.pts-f.low.pts >= bimodalVsLowPts
		},
		render: func(l locale, p PeriodTag, f thirdsFacts) Insight { return thirdsBimodal(l, p, f.low.index) },
	},
	{
		name:   "concentrado",
		match:  func(f thirdsFacts) bool { return f.top.pts-f.mid.pts >= dominancePts },
		render: func(l locale, p PeriodTag, f thirdsFacts) Insight { return thirdsConcentrated(l, p, f.top.index) },
	},
	{
		name:   "repartido",
		match:  func(f thirdsFacts) bool { return f.top.pts-f.low.pts <= evenSpreadPts },
		render: func(l locale, p PeriodTag, _ thirdsFacts) Insight { return thirdsEven(l, p) },
	},
	{
		name:   "inclinacion_leve",
		match:  func(thirdsFacts) bool { return true },
		render: func(l locale, p PeriodTag, f thirdsFacts) Insight { return thirdsLean(l, p, f.top.index) },
	},
}

// ThirdsInsight classifies a month's thirds distribution. A nil
// metrics value or a month with no spend yields the neutral headline.
func ThirdsInsight(m *analytics.MonthThirdsMetrics, period PeriodTag, lang language.Tag) Insight {
	l := newLocale(lang)
	f := rankThirds(m)
	for _, rule := range thirdsRules {
		if rule.match(f) {
			return rule.render(l, period, f)
		}
	}
	// The last rule always matches.
	return thirdsLean(l, period, f.top.index)
}

// rankThirds orders the thirds by share descending. The sort is
// stable, so on equal shares the earlier range wins.
func rankThirds(m *analytics.MonthThirdsMetrics) thirdsFacts {
	if m == nil || m.TotalMonth <= 0 {
		return thirdsFacts{}
	}
	ranked := []rankedThird{
		{index: 1, pts: toPts(m.T1.Pct)},
		{index: 2, pts: toPts(m.T2.Pct)},
		{index: 3, pts: toPts(m.T3.Pct)},
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].pts > ranked[j].pts })
	return thirdsFacts{
		hasData:    true,
		activeDays: m.ActiveDays,
		top:        ranked[0],
		mid:        ranked[1],
		low:        ranked[2],
	}
}

func toPts(fraction float64) int {
	return int(math.Round(fraction * 100))
}

// thirdName renders a single third as a phrase.
func thirdName(l locale, index int) string {
	switch index {
	case 1:
		return l.pick("el inicio del mes", "the start of the month")
	case 2:
		return l.pick("mediados del mes", "the middle of the month")
	default:
		return l.pick("el final del mes", "the end of the month")
	}
}

// peakPair names the two thirds that are NOT the lowest one.
func peakPair(l locale, lowIndex int) string {
	switch lowIndex {
	case 1:
		return l.pick("mediados y el final del mes", "the middle and the end of the month")
	case 2:
		return l.pick("el inicio y el final del mes", "the start and the end of the month")
	default:
		return l.pick("el inicio y mediados del mes", "the start and the middle of the month")
	}
}

func thirdsNoData(l locale, period PeriodTag) Insight {
	if l.spanish {
		return Insight{Headline: tense(period,
			"Aún no hay gastos registrados este mes.",
			"No hubo gastos registrados ese mes.")}
	}
	return Insight{Headline: tense(period,
		"No expenses recorded this month yet.",
		"No expenses were recorded that month.")}
}

func thirdsInsufficient(l locale, period PeriodTag, activeDays int) Insight {
	headline := l.pick(
		tense(period,
			"Todavía hay pocos datos para ver un patrón.",
			"Hubo pocos datos para ver un patrón."),
		tense(period,
			"Not enough data yet to see a pattern.",
			"There was not enough data to see a pattern."))
	var note string
	if activeDays <= 1 {
		note = l.pick("Solo hay gastos en un día.", "There is spending on a single day only.")
	} else {
		note = l.pick("Solo hay gastos en unos pocos días.", "There is spending on just a few days.")
	}
	return Insight{Headline: headline, Note: note}
}

func thirdsBimodal(l locale, period PeriodTag, lowIndex int) Insight {
	pair := peakPair(l, lowIndex)
	if l.spanish {
		return Insight{Headline: tense(period,
			"El gasto se está concentrando en "+pair+".",
			"El gasto se concentró en "+pair+".")}
	}
	return Insight{Headline: tense(period,
		"Spending is concentrating around "+pair+".",
		"Spending concentrated around "+pair+".")}
}

func thirdsConcentrated(l locale, period PeriodTag, topIndex int) Insight {
	name := thirdName(l, topIndex)
	if l.spanish {
		return Insight{Headline: tense(period,
			"La mayor parte del gasto se está yendo en "+name+".",
			"La mayor parte del gasto se fue en "+name+".")}
	}
	return Insight{Headline: tense(period,
		"Most of the spending is going to "+name+".",
		"Most of the spending went to "+name+".")}
}

func thirdsEven(l locale, period PeriodTag) Insight {
	if l.spanish {
		return Insight{Headline: tense(period,
			"El gasto se está repartiendo de forma pareja a lo largo del mes.",
			"El gasto se repartió de forma pareja a lo largo del mes.")}
	}
	return Insight{Headline: tense(period,
		"Spending is spreading out evenly across the month.",
		"Spending was spread out evenly across the month.")}
}

func thirdsLean(l locale, period PeriodTag, topIndex int) Insight {
	name := thirdName(l, topIndex)
	if l.spanish {
		return Insight{Headline: tense(period,
			"El gasto se inclina levemente hacia "+name+", sin una concentración clara.",
			"El gasto se inclinó levemente hacia "+name+", sin una concentración clara.")}
	}
	return Insight{Headline: tense(period,
		"Spending leans slightly toward "+name+", with no clear concentration.",
		"Spending leaned slightly toward "+name+", with no clear concentration.")}
}
