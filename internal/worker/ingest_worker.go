// Package worker applies queued expense mutations to durable storage.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"gastos/internal/amqp"
	"gastos/internal/core"
)

// ExpenseStore is the slice of the repository the worker needs.
type ExpenseStore interface {
	InsertExpense(ctx context.Context, userID string, record core.ExpenseRecord) (int64, error)
	DeleteExpense(ctx context.Context, id int64) error
}

// IngestWorker consumes expense mutations from the queue and writes
// them to the store.
type IngestWorker struct {
	store ExpenseStore
}

func NewIngestWorker(store ExpenseStore) *IngestWorker {
	return &IngestWorker{store: store}
}

// Handle dispatches one envelope to the matching handler.
func (w *IngestWorker) Handle(ctx context.Context, env *amqp.Envelope) error {
	switch env.Kind {
	case amqp.KindUpsert:
		msg, err := amqp.DecodeUpsert(env)
		if err != nil {
			return err
		}
		return w.HandleUpsert(ctx, msg)
	case amqp.KindDelete:
		msg, err := amqp.DecodeDelete(env)
		if err != nil {
			return err
		}
		return w.HandleDelete(ctx, msg)
	}
	return fmt.Errorf("unhandled message kind %q", env.Kind)
}

// HandleUpsert validates and stores a single expense message.
func (w *IngestWorker) HandleUpsert(ctx context.Context, msg *amqp.ExpenseUpsertMessage) error {
	slog.InfoContext(ctx, "Processing expense upsert",
		"user_id", msg.UserID,
		"date", msg.Date,
		"category", msg.CategoryID)

	if msg.UserID == "" {
		return fmt.Errorf("missing user id")
	}

	record := core.ExpenseRecord{
		Date:       msg.Date,
		CategoryID: msg.CategoryID,
		Amount:     msg.Amount,
		Currency:   msg.Currency,
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid expense record: %w", err)
	}

	id, err := w.store.InsertExpense(ctx, msg.UserID, record)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}

	slog.InfoContext(ctx, "Stored expense",
		"id", id,
		"user_id", msg.UserID,
		"amount", msg.Amount)

	return nil
}

// HandleDelete removes a stored expense. Deleting an unknown id is
// not an error.
func (w *IngestWorker) HandleDelete(ctx context.Context, msg *amqp.ExpenseDeleteMessage) error {
	slog.InfoContext(ctx, "Processing expense delete", "id", msg.ID)

	if err := w.store.DeleteExpense(ctx, msg.ID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	return nil
}
