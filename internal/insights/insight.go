// Package insights turns the numeric output of the analytics builders
// into short natural-language classifications. Every classifier is a
// priority-ordered list of guarded rules evaluated top to bottom,
// first match wins, so the branch order stays auditable in isolation
// from the wording.
package insights

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Insight is a headline with an optional supporting note.
type Insight struct {
	Headline string `json:"headline"`
	Note     string `json:"note,omitempty"`
}

// PeriodTag controls verb tense only: the current month is phrased in
// present tense, a previous month in past tense.
type PeriodTag string

const (
	PeriodCurrentMonth  PeriodTag = "current"
	PeriodPreviousMonth PeriodTag = "previous"
)

// locale bundles the language choice with a localized number printer.
// Wording ships in Spanish and English; any other tag falls back to
// English with that tag's number formatting.
type locale struct {
	spanish bool
	printer *message.Printer
}

func newLocale(lang language.Tag) locale {
	base, _ := lang.Base()
	return locale{
		spanish: base.String() == "es",
		printer: message.NewPrinter(lang),
	}
}

// amount renders a monetary value with the locale's separators.
func (l locale) amount(v float64) string {
	return l.printer.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// pick selects wording by language.
func (l locale) pick(es, en string) string {
	if l.spanish {
		return es
	}
	return en
}

// tense selects wording by period tag, given (present, past) pairs.
func tense(period PeriodTag, present, past string) string {
	if period == PeriodPreviousMonth {
		return past
	}
	return present
}
