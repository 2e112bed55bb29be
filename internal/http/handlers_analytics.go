package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"gastos/internal/analytics"
	"gastos/internal/calendar"
	"gastos/internal/core"
	"gastos/internal/insights"
)

type evolutionResponse struct {
	Period    core.Period                 `json:"period"`
	Category  string                      `json:"category"`
	Evolution *analytics.MonthlyEvolution `json:"evolution"`
}

type thirdsResponse struct {
	Metrics *analytics.MonthThirdsMetrics `json:"metrics"`
	Insight insights.Insight              `json:"insight"`
}

type paceResponse struct {
	Pace    *analytics.MonthPaceResult `json:"pace"`
	Insight insights.Insight           `json:"insight"`
}

type summaryResponse struct {
	Summary *analytics.MonthSummary `json:"summary"`
	Insight insights.SummaryInsight `json:"insight"`
}

func (s *Server) handleEvolution(w http.ResponseWriter, r *http.Request) {
	user, err := parseUser(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	period, err := parsePeriod(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	category := parseCategory(r.URL.Query())

	now := time.Now()
	key := cacheKey(user, "evolution", string(period), category, calendar.MonthKeyOf(now))
	if body, ok := s.responseCache.Get(key); ok {
		writeCachedJSON(w, body)
		return
	}

	anchor := calendar.MonthKeyOf(now)
	var monthKeys []string
	switch period {
	case core.PeriodLast6Months:
		monthKeys = calendar.LastNMonthKeys(anchor, 6)
	case core.PeriodLast12Months:
		monthKeys = calendar.LastNMonthKeys(anchor, 12)
	case core.PeriodYearToDate:
		monthKeys = calendar.YearToDateKeys(anchor)
	}

	records, err := s.listRange(r.Context(), user, monthKeys[0], anchor)
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses failed", "error", err, "user_id", user)
		writeError(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}

	resp := evolutionResponse{
		Period:    period,
		Category:  category,
		Evolution: analytics.BuildMonthlyEvolution(records, period, category, now, s.lang),
	}
	s.respondCached(w, key, resp)
}

func (s *Server) handleThirds(w http.ResponseWriter, r *http.Request) {
	user, err := parseUser(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	now := time.Now()
	monthKey, err := parseMonthKey(r.URL.Query(), now)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := cacheKey(user, "thirds", monthKey)
	if body, ok := s.responseCache.Get(key); ok {
		writeCachedJSON(w, body)
		return
	}

	records, err := s.listRange(r.Context(), user, monthKey, monthKey)
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses failed", "error", err, "user_id", user)
		writeError(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}

	metrics := analytics.BuildMonthThirds(records, monthKey)
	resp := thirdsResponse{
		Metrics: metrics,
		Insight: insights.ThirdsInsight(metrics, periodTag(monthKey, now), s.lang),
	}
	s.respondCached(w, key, resp)
}

func (s *Server) handlePace(w http.ResponseWriter, r *http.Request) {
	user, err := parseUser(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	now := time.Now()
	monthKey, err := parseMonthKey(r.URL.Query(), now)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dayLimit, err := parseDayLimit(r.URL.Query(), monthKey, now)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := cacheKey(user, "pace", monthKey, fmt.Sprintf("d%d", dayLimit))
	if body, ok := s.responseCache.Get(key); ok {
		writeCachedJSON(w, body)
		return
	}

	// Baseline candidates are the months immediately before the
	// selected one.
	from, _ := calendar.ShiftMonthKey(monthKey, -s.paceCfg.MaxBaselineMonths)
	if from == "" {
		from = monthKey
	}
	records, err := s.listRange(r.Context(), user, from, monthKey)
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses failed", "error", err, "user_id", user)
		writeError(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}

	pace := analytics.BuildMonthPace(records, monthKey, dayLimit, s.paceCfg)
	resp := paceResponse{
		Pace:    pace,
		Insight: insights.PaceInsight(pace, periodTag(monthKey, now), calendar.MonthLabel(monthKey, s.lang), s.lang),
	}
	s.respondCached(w, key, resp)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	user, err := parseUser(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	now := time.Now()
	monthKey, err := parseMonthKey(r.URL.Query(), now)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := cacheKey(user, "summary", monthKey)
	if body, ok := s.responseCache.Get(key); ok {
		writeCachedJSON(w, body)
		return
	}

	records, err := s.listRange(r.Context(), user, monthKey, monthKey)
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses failed", "error", err, "user_id", user)
		writeError(w, http.StatusInternalServerError, "failed to load expenses")
		return
	}

	summary := analytics.BuildMonthSummary(records, monthKey)
	resp := summaryResponse{
		Summary: summary,
		Insight: insights.MonthSummaryInsight(summary, s.lang),
	}
	s.respondCached(w, key, resp)
}

// listRange loads the user's expenses between the first day of
// fromMonth and the last day of toMonth.
func (s *Server) listRange(ctx context.Context, user, fromMonth, toMonth string) ([]core.ExpenseRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()

	from := fromMonth + "-01"
	days, _ := calendar.DaysInMonth(toMonth)
	to := fmt.Sprintf("%s-%02d", toMonth, days)
	return s.store.ListExpenses(ctx, user, from, to)
}

// respondCached marshals the payload once, caches the bytes and sends
// them.
func (s *Server) respondCached(w http.ResponseWriter, key string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to encode response", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	body = append(body, '\n')
	s.responseCache.Set(key, body)
	writeCachedJSON(w, body)
}

func cacheKey(user, endpoint string, parts ...string) string {
	return user + ":" + endpoint + ":" + strings.Join(parts, ":")
}

func periodTag(monthKey string, now time.Time) insights.PeriodTag {
	if monthKey == calendar.MonthKeyOf(now) {
		return insights.PeriodCurrentMonth
	}
	return insights.PeriodPreviousMonth
}
