package insights

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"gastos/internal/analytics"
)

// SummaryInsight is the structured verdict for the month summary.
type SummaryInsight struct {
	Kind       string `json:"kind"`
	Confidence string `json:"confidence"`
	Message    string `json:"message"`
}

const (
	KindNoExpenses = "sin_gastos"
	KindSummary    = "resumen"

	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// topCategoriesShown caps how many ranked categories the message names.
const topCategoriesShown = 3

// minCategoriesForShare is the category count from which the message
// adds an aggregate top-3 share line.
const minCategoriesForShare = 5

// MonthSummaryInsight renders the month roll-up as a message with a
// confidence level driven by the record count.
func MonthSummaryInsight(s *analytics.MonthSummary, lang language.Tag) SummaryInsight {
	l := newLocale(lang)

	if s == nil || s.Count == 0 {
		return SummaryInsight{
			Kind:       KindNoExpenses,
			Confidence: ConfidenceLow,
			Message:    l.pick("Aún no hay gastos este mes.", "No expenses this month yet."),
		}
	}

	var b strings.Builder
	if l.spanish {
		fmt.Fprintf(&b, "Llevas %s gastados.", l.amount(s.Total))
	} else {
		fmt.Fprintf(&b, "You have spent %s so far.", l.amount(s.Total))
	}

	shown := s.Categories
	if len(shown) > topCategoriesShown {
		shown = shown[:topCategoriesShown]
	}
	if len(shown) > 0 {
		parts := make([]string, 0, len(shown))
		topShare := 0.0
		for _, c := range shown {
			name := c.CategoryID
			if name == "" {
				name = l.pick("sin categoría", "uncategorized")
			}
			parts = append(parts, fmt.Sprintf("%s (%.0f%%)", name, c.Pct*100))
			topShare += c.Pct
		}
		fmt.Fprintf(&b, " %s: %s.", l.pick("Principales", "Top"), strings.Join(parts, ", "))

		if len(s.Categories) >= minCategoriesForShare {
			if l.spanish {
				fmt.Fprintf(&b, " Las %d principales concentran el %.0f%% del gasto.", len(shown), topShare*100)
			} else {
				fmt.Fprintf(&b, " The top %d account for %.0f%% of spending.", len(shown), topShare*100)
			}
		}
	}

	return SummaryInsight{
		Kind:       KindSummary,
		Confidence: summaryConfidence(s.Count),
		Message:    b.String(),
	}
}

func summaryConfidence(count int) string {
	switch {
	case count <= 1:
		return ConfidenceLow
	case count <= 4:
		return ConfidenceMedium
	default:
		return ConfidenceHigh
	}
}
