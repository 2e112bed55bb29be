package http

import (
	"net/url"
	"testing"
	"time"

	"gastos/internal/core"
)

func TestParseMonthKey(t *testing.T) {
	now := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

	got, err := parseMonthKey(url.Values{}, now)
	if err != nil || got != "2025-03" {
		t.Errorf("default month = %q, %v; want 2025-03", got, err)
	}

	got, err = parseMonthKey(url.Values{"month": {"2024-11"}}, now)
	if err != nil || got != "2024-11" {
		t.Errorf("month = %q, %v; want 2024-11", got, err)
	}

	for _, bad := range []string{"2025-13", "2025-3", "marzo", "2025-03-01"} {
		if _, err := parseMonthKey(url.Values{"month": {bad}}, now); err == nil {
			t.Errorf("month %q should be rejected", bad)
		}
	}
}

func TestParseDayLimit(t *testing.T) {
	now := time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC)

	day, err := parseDayLimit(url.Values{}, "2025-03", now)
	if err != nil || day != 14 {
		t.Errorf("current month default day = %d, %v; want 14", day, err)
	}

	day, err = parseDayLimit(url.Values{}, "2025-02", now)
	if err != nil || day != 28 {
		t.Errorf("past month default day = %d, %v; want 28", day, err)
	}

	day, err = parseDayLimit(url.Values{"day": {"7"}}, "2025-03", now)
	if err != nil || day != 7 {
		t.Errorf("explicit day = %d, %v; want 7", day, err)
	}

	for _, bad := range []string{"0", "32", "x"} {
		if _, err := parseDayLimit(url.Values{"day": {bad}}, "2025-03", now); err == nil {
			t.Errorf("day %q should be rejected", bad)
		}
	}
}

func TestParsePeriodDefaults(t *testing.T) {
	period, err := parsePeriod(url.Values{})
	if err != nil || period != core.PeriodLast6Months {
		t.Errorf("default period = %q, %v", period, err)
	}

	if _, err := parsePeriod(url.Values{"period": {"fortnight"}}); err == nil {
		t.Error("unknown period should be rejected")
	}
}

func TestParseCategoryDefaults(t *testing.T) {
	if got := parseCategory(url.Values{}); got != core.CategoryAll {
		t.Errorf("default category = %q, want all", got)
	}
	if got := parseCategory(url.Values{"category": {" ocio "}}); got != "ocio" {
		t.Errorf("category = %q, want ocio", got)
	}
}
