// Package memory provides an in-memory Ledger for tests and local
// development. Data is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dvloznov/wealthwise/internal/store"
	"github.com/google/uuid"
)

// Ledger is a mutex-guarded in-memory document store. Safe for concurrent
// use.
type Ledger struct {
	mu    sync.RWMutex
	users map[string]map[string][]store.Document
}

// New creates an empty in-memory ledger.
func New() *Ledger {
	return &Ledger{
		users: make(map[string]map[string][]store.Document),
	}
}

// Append implements store.Ledger.
func (l *Ledger) Append(ctx context.Context, userID, collection string, data map[string]interface{}) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.users[userID] == nil {
		l.users[userID] = make(map[string][]store.Document)
	}

	doc := store.Document{
		ID:   uuid.NewString(),
		Data: copyData(data),
	}
	l.users[userID][collection] = append(l.users[userID][collection], doc)
	return doc.ID, nil
}

// List implements store.Ledger. Results are ordered by the "date" field,
// newest first; documents without a date sort last.
func (l *Ledger) List(ctx context.Context, userID, collection string) ([]store.Document, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	docs := l.users[userID][collection]
	out := make([]store.Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, store.Document{ID: doc.ID, Data: copyData(doc.Data)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return docDate(out[i]).After(docDate(out[j]))
	})
	return out, nil
}

// Update implements store.Ledger.
func (l *Ledger) Update(ctx context.Context, userID, collection, id string, data map[string]interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	docs := l.users[userID][collection]
	for i := range docs {
		if docs[i].ID == id {
			docs[i].Data = copyData(data)
			return nil
		}
	}
	return store.ErrNotFound
}

// Delete implements store.Ledger.
func (l *Ledger) Delete(ctx context.Context, userID, collection, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	docs := l.users[userID][collection]
	for i := range docs {
		if docs[i].ID == id {
			l.users[userID][collection] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// Close implements store.Ledger.
func (l *Ledger) Close() error {
	return nil
}

func docDate(doc store.Document) time.Time {
	if t, ok := doc.Data["date"].(time.Time); ok {
		return t
	}
	return time.Time{}
}

func copyData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

var _ store.Ledger = (*Ledger)(nil)
