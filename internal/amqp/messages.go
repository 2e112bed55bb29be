package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Message kinds carried on the ingest queue.
const (
	KindUpsert = "upsert"
	KindDelete = "delete"
)

// Envelope wraps every ingest message with its kind so one queue can
// carry both mutations.
type Envelope struct {
	Kind      string          `json:"kind"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// ExpenseUpsertMessage carries one expense mutation to store.
type ExpenseUpsertMessage struct {
	UserID     string  `json:"userId"`
	Date       string  `json:"date"` // YYYY-MM-DD
	CategoryID string  `json:"categoryId"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency,omitempty"`
}

// ExpenseDeleteMessage removes a stored expense by id.
type ExpenseDeleteMessage struct {
	ID int64 `json:"id"`
}

// Encode wraps a payload in an envelope and marshals it.
func Encode(kind string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return json.Marshal(Envelope{
		Kind:      kind,
		Timestamp: time.Now(),
		Payload:   raw,
	})
}

// DecodeEnvelope unmarshals the outer envelope.
func DecodeEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	switch env.Kind {
	case KindUpsert, KindDelete:
		return &env, nil
	}
	return nil, fmt.Errorf("unknown message kind %q", env.Kind)
}

// DecodeUpsert unmarshals an upsert payload.
func DecodeUpsert(env *Envelope) (*ExpenseUpsertMessage, error) {
	var msg ExpenseUpsertMessage
	if err := json.Unmarshal(env.Payload, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal upsert payload: %w", err)
	}
	return &msg, nil
}

// DecodeDelete unmarshals a delete payload.
func DecodeDelete(env *Envelope) (*ExpenseDeleteMessage, error) {
	var msg ExpenseDeleteMessage
	if err := json.Unmarshal(env.Payload, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal delete payload: %w", err)
	}
	return &msg, nil
}
