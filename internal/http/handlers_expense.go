package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"gastos/internal/amqp"
	"gastos/internal/core"
)

type createExpenseRequest struct {
	UserID     string  `json:"userId"`
	Date       string  `json:"date"`
	CategoryID string  `json:"categoryId"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency,omitempty"`
}

type acceptedResponse struct {
	Status string `json:"status"`
}

// handleCreateExpense validates the expense and queues it for the
// ingest worker. Storage happens asynchronously.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		writeError(w, http.StatusServiceUnavailable, "expense ingest is not configured")
		return
	}

	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "missing required field: userId")
		return
	}

	record := core.ExpenseRecord{
		Date:       strings.TrimSpace(req.Date),
		CategoryID: strings.TrimSpace(req.CategoryID),
		Amount:     req.Amount,
		Currency:   strings.TrimSpace(req.Currency),
	}
	if err := record.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	msg := &amqp.ExpenseUpsertMessage{
		UserID:     req.UserID,
		Date:       record.Date,
		CategoryID: record.CategoryID,
		Amount:     record.Amount,
		Currency:   record.Currency,
	}
	if err := s.publisher.PublishUpsert(r.Context(), msg); err != nil {
		slog.ErrorContext(r.Context(), "Failed to publish expense", "error", err, "user_id", req.UserID)
		writeError(w, http.StatusInternalServerError, "failed to queue expense")
		return
	}

	// Cached analytics for this user are stale now.
	s.responseCache.DeletePrefix(req.UserID + ":")

	writeJSON(w, http.StatusAccepted, acceptedResponse{Status: "queued"})
}

// handleDeleteExpense queues an expense removal. The user query
// parameter scopes the cache invalidation.
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		writeError(w, http.StatusServiceUnavailable, "expense ingest is not configured")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}
	user, err := parseUser(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.publisher.PublishDelete(r.Context(), &amqp.ExpenseDeleteMessage{ID: id}); err != nil {
		slog.ErrorContext(r.Context(), "Failed to publish expense delete", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "failed to queue delete")
		return
	}

	s.responseCache.DeletePrefix(user + ":")

	writeJSON(w, http.StatusAccepted, acceptedResponse{Status: "queued"})
}
