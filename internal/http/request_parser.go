package http

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gastos/internal/calendar"
	"gastos/internal/core"
)

var errMissingUser = errors.New("missing required parameter: user")

// parseUser extracts the required user id from query parameters.
func parseUser(query url.Values) (string, error) {
	user := strings.TrimSpace(query.Get("user"))
	if user == "" {
		return "", errMissingUser
	}
	return user, nil
}

// parseMonthKey extracts the month parameter, defaulting to the
// current month.
func parseMonthKey(query url.Values, now time.Time) (string, error) {
	raw := strings.TrimSpace(query.Get("month"))
	if raw == "" {
		return calendar.MonthKeyOf(now), nil
	}
	if !calendar.ValidMonthKey(raw) {
		return "", fmt.Errorf("invalid month %q: want YYYY-MM", raw)
	}
	return raw, nil
}

// parseDayLimit extracts the day parameter. It defaults to today for
// the current month and to the last day otherwise.
func parseDayLimit(query url.Values, monthKey string, now time.Time) (int, error) {
	raw := strings.TrimSpace(query.Get("day"))
	if raw == "" {
		if monthKey == calendar.MonthKeyOf(now) {
			return now.Day(), nil
		}
		days, _ := calendar.DaysInMonth(monthKey)
		return days, nil
	}
	day, err := strconv.Atoi(raw)
	if err != nil || day < 1 || day > 31 {
		return 0, fmt.Errorf("invalid day %q: want 1-31", raw)
	}
	return day, nil
}

// parsePeriod extracts the period parameter, defaulting to the last
// six months.
func parsePeriod(query url.Values) (core.Period, error) {
	raw := strings.TrimSpace(query.Get("period"))
	if raw == "" {
		return core.PeriodLast6Months, nil
	}
	period, ok := core.ParsePeriod(raw)
	if !ok {
		return "", fmt.Errorf("invalid period %q", raw)
	}
	return period, nil
}

// parseCategory extracts the category filter, defaulting to all.
func parseCategory(query url.Values) string {
	category := strings.TrimSpace(query.Get("category"))
	if category == "" {
		return core.CategoryAll
	}
	return category
}
