package store

import (
	"context"
	"errors"
)

// Collection names for the per-user append-only ledgers. Each user owns one of
// each, keyed by an opaque user identifier; there is no cross-user sharing.
const (
	CollectionTransactions = "transactions"
	CollectionRecurring    = "recurring_expenses"
	CollectionInsights     = "insights"
	CollectionAlerts       = "alerts"
	CollectionPayments     = "payments"
	CollectionBudgets      = "budgets"
)

// ErrNotFound is returned when a document id does not exist in a collection.
var ErrNotFound = errors.New("document not found")

// Document is one stored record: an opaque id assigned at persistence time
// plus the raw field map.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// Ledger is the narrow document-store interface the orchestration core
// depends on. Implementations must order List results by the "date" field,
// newest first.
type Ledger interface {
	// Append adds a document to the named collection and returns its id.
	Append(ctx context.Context, userID, collection string, data map[string]interface{}) (string, error)

	// List returns all documents in the named collection, newest first.
	List(ctx context.Context, userID, collection string) ([]Document, error)

	// Update replaces the document with the given id.
	Update(ctx context.Context, userID, collection, id string, data map[string]interface{}) error

	// Delete removes the document with the given id.
	Delete(ctx context.Context, userID, collection, id string) error

	// Close releases any underlying client resources.
	Close() error
}
