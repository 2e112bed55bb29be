package insights

import (
	"fmt"

	"golang.org/x/text/language"

	"gastos/internal/analytics"
)

// PaceInsight turns a pace result into a headline. With no result it
// degrades to a neutral no-data message; with a result but no baseline
// it frames the month by its daily average instead of a comparison.
func PaceInsight(r *analytics.MonthPaceResult, period PeriodTag, monthLabel string, lang language.Tag) Insight {
	l := newLocale(lang)

	if r == nil {
		return paceNoData(l, period)
	}
	if r.DeltaPct == nil {
		return paceNoBaseline(l, period, monthLabel, r.AvgDailyActual)
	}
	return paceWithBaseline(l, period, monthLabel, r)
}

func paceNoData(l locale, period PeriodTag) Insight {
	if l.spanish {
		return Insight{Headline: tense(period,
			"Sin datos de ritmo de gasto para este mes.",
			"Sin datos de ritmo de gasto para ese mes.")}
	}
	return Insight{Headline: tense(period,
		"No spending-pace data for this month.",
		"No spending-pace data for that month.")}
}

func paceNoBaseline(l locale, period PeriodTag, monthLabel string, avgDaily float64) Insight {
	var headline string
	if l.spanish {
		headline = tense(period,
			fmt.Sprintf("Estás gastando una media de %s al día en %s.", l.amount(avgDaily), monthLabel),
			fmt.Sprintf("Gastaste una media de %s al día en %s.", l.amount(avgDaily), monthLabel))
	} else {
		headline = tense(period,
			fmt.Sprintf("You are spending an average of %s per day in %s.", l.amount(avgDaily), monthLabel),
			fmt.Sprintf("You spent an average of %s per day in %s.", l.amount(avgDaily), monthLabel))
	}
	return Insight{
		Headline: headline,
		Note: l.pick("Sin meses de referencia para comparar.",
			"No reference months to compare against."),
	}
}

func paceWithBaseline(l locale, period PeriodTag, monthLabel string, r *analytics.MonthPaceResult) Insight {
	delta := *r.DeltaPct
	months := len(r.BaselineMonthsUsed)

	var headline string
	switch *r.Status {
	case analytics.StatusContenido:
		if l.spanish {
			headline = tense(period,
				fmt.Sprintf("Vas por debajo de tu ritmo habitual en %s (%.0f%%).", monthLabel, delta),
				fmt.Sprintf("Fuiste por debajo de tu ritmo habitual en %s (%.0f%%).", monthLabel, delta))
		} else {
			headline = tense(period,
				fmt.Sprintf("You are below your usual pace in %s (%.0f%%).", monthLabel, delta),
				fmt.Sprintf("You were below your usual pace in %s (%.0f%%).", monthLabel, delta))
		}
	case analytics.StatusAcelerado:
		if l.spanish {
			headline = tense(period,
				fmt.Sprintf("Vas por encima de tu ritmo habitual en %s (+%.0f%%).", monthLabel, delta),
				fmt.Sprintf("Fuiste por encima de tu ritmo habitual en %s (+%.0f%%).", monthLabel, delta))
		} else {
			headline = tense(period,
				fmt.Sprintf("You are above your usual pace in %s (+%.0f%%).", monthLabel, delta),
				fmt.Sprintf("You were above your usual pace in %s (+%.0f%%).", monthLabel, delta))
		}
	default:
		if l.spanish {
			headline = tense(period,
				fmt.Sprintf("Vas a un ritmo similar al habitual en %s.", monthLabel),
				fmt.Sprintf("Fuiste a un ritmo similar al habitual en %s.", monthLabel))
		} else {
			headline = tense(period,
				fmt.Sprintf("You are pacing about the same as usual in %s.", monthLabel),
				fmt.Sprintf("You paced about the same as usual in %s.", monthLabel))
		}
	}

	var note string
	if l.spanish {
		if months == 1 {
			note = "Comparado con la mediana de 1 mes anterior."
		} else {
			note = fmt.Sprintf("Comparado con la mediana de %d meses anteriores.", months)
		}
	} else {
		if months == 1 {
			note = "Compared against the median of 1 prior month."
		} else {
			note = fmt.Sprintf("Compared against the median of %d prior months.", months)
		}
	}
	return Insight{Headline: headline, Note: note}
}
