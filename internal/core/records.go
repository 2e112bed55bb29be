// Package core defines the domain value types shared by the analytics
// builders and the surrounding plumbing.
package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"

	// CategoryAll selects every category when filtering records.
	CategoryAll = "all"
)

// Period selects the month range covered by the evolution builder.
type Period string

const (
	PeriodLast6Months  Period = "last_6_months"
	PeriodLast12Months Period = "last_12_months"
	PeriodYearToDate   Period = "year_to_date"
)

// ParsePeriod maps a raw period tag onto a known Period.
func ParsePeriod(s string) (Period, bool) {
	switch Period(strings.TrimSpace(s)) {
	case PeriodLast6Months:
		return PeriodLast6Months, true
	case PeriodLast12Months:
		return PeriodLast12Months, true
	case PeriodYearToDate:
		return PeriodYearToDate, true
	}
	return "", false
}

// ExpenseRecord is one dated expense, already scoped to a user and a
// single currency. It is never mutated by the analytics core.
type ExpenseRecord struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	CategoryID string  `json:"categoryId"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency,omitempty"`
}

var (
	ErrMissingDate   = errors.New("missing date")
	ErrMalformedDate = errors.New("malformed date")
	ErrBadAmount     = errors.New("amount must be a finite non-negative number")
)

// Validate reports why a record is unusable, or nil.
func (r ExpenseRecord) Validate() error {
	if strings.TrimSpace(r.Date) == "" {
		return ErrMissingDate
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return ErrMalformedDate
	}
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) || r.Amount < 0 {
		return ErrBadAmount
	}
	return nil
}

// MatchesCategory reports whether the record passes a category filter.
// The filter is either CategoryAll or a single category id.
func (r ExpenseRecord) MatchesCategory(filter string) bool {
	return filter == "" || filter == CategoryAll || r.CategoryID == filter
}

// RawRecord mirrors the loose shape expense records arrive in: every
// field optional, nothing guaranteed well-formed.
type RawRecord struct {
	Date       *string  `json:"date,omitempty"`
	CategoryID *string  `json:"categoryId,omitempty"`
	Amount     *float64 `json:"amount,omitempty"`
	Currency   *string  `json:"currency,omitempty"`
}

// ParseRecords converts raw untyped records into strict ExpenseRecords.
// Records with a missing or malformed date, or a non-finite or negative
// amount, are dropped; parsing never fails.
func ParseRecords(raw []RawRecord) []ExpenseRecord {
	out := make([]ExpenseRecord, 0, len(raw))
	for _, rr := range raw {
		rec := ExpenseRecord{}
		if rr.Date != nil {
			rec.Date = strings.TrimSpace(*rr.Date)
		}
		if rr.CategoryID != nil {
			rec.CategoryID = strings.TrimSpace(*rr.CategoryID)
		}
		if rr.Amount != nil {
			rec.Amount = *rr.Amount
		}
		if rr.Currency != nil {
			rec.Currency = strings.TrimSpace(*rr.Currency)
		}
		if rec.Validate() != nil {
			continue
		}
		out = append(out, rec)
	}
	return out
}
