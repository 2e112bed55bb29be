// Package calendar provides month-key arithmetic and day extraction
// for bucketing expense records.
//
// A month key is the canonical "YYYY-MM" string identifying a calendar
// month. Every function here is total: malformed input yields a zero
// value and ok=false instead of panicking, so callers can filter bad
// records rather than crash on them.
package calendar

import (
	"fmt"
	"regexp"
	"time"

	"golang.org/x/text/language"
)

const dateLayout = "2006-01-02"

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidMonthKey reports whether key is a strict YYYY-MM month key.
func ValidMonthKey(key string) bool {
	return monthKeyPattern.MatchString(key)
}

// MonthKeyOf returns the month key of a concrete time.
func MonthKeyOf(t time.Time) string {
	return t.Format("2006-01")
}

// MonthKeyFromDate derives a month key from a YYYY-MM-DD date string.
func MonthKeyFromDate(date string) (string, bool) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", false
	}
	return MonthKeyOf(t), true
}

// DayOfMonth extracts the one-based day of month from a YYYY-MM-DD
// date string.
func DayOfMonth(date string) (int, bool) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, false
	}
	return t.Day(), true
}

// splitMonthKey breaks a valid month key into year and month.
func splitMonthKey(key string) (year, month int, ok bool) {
	if !ValidMonthKey(key) {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(key, "%4d-%2d", &year, &month); err != nil {
		return 0, 0, false
	}
	return year, month, true
}

// DaysInMonth returns the number of days in the month identified by key.
func DaysInMonth(key string) (int, bool) {
	year, month, ok := splitMonthKey(key)
	if !ok {
		return 0, false
	}
	// Day zero of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day(), true
}

// ShiftMonthKey moves a month key by n months. Negative n shifts into
// the past.
func ShiftMonthKey(key string, n int) (string, bool) {
	year, month, ok := splitMonthKey(key)
	if !ok {
		return "", false
	}
	shifted := time.Date(year, time.Month(month+n), 1, 0, 0, 0, 0, time.UTC)
	return MonthKeyOf(shifted), true
}

// LastNMonthKeys returns the n month keys ending at anchor, inclusive,
// in chronological order. Returns nil for an invalid anchor or n < 1.
func LastNMonthKeys(anchor string, n int) []string {
	if !ValidMonthKey(anchor) || n < 1 {
		return nil
	}
	keys := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		key, _ := ShiftMonthKey(anchor, -i)
		keys = append(keys, key)
	}
	return keys
}

// YearToDateKeys returns the month keys from January of the anchor's
// year through the anchor, inclusive, in chronological order.
func YearToDateKeys(anchor string) []string {
	year, month, ok := splitMonthKey(anchor)
	if !ok {
		return nil
	}
	keys := make([]string, 0, month)
	for m := 1; m <= month; m++ {
		keys = append(keys, fmt.Sprintf("%04d-%02d", year, m))
	}
	return keys
}

var spanishMonths = [12]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// MonthLabel renders a short localized label such as "ene 2025" or
// "Jan 2025" for a month key. Returns "" for an invalid key.
func MonthLabel(key string, lang language.Tag) string {
	year, month, ok := splitMonthKey(key)
	if !ok {
		return ""
	}
	if base, _ := lang.Base(); base.String() == "es" {
		return fmt.Sprintf("%s %d", spanishMonths[month-1], year)
	}
	return fmt.Sprintf("%s %d", time.Month(month).String()[:3], year)
}
