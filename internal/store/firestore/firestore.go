// Package firestore implements the document ledger on Cloud Firestore using
// the users/{uid}/{collection} layout.
package firestore

import (
	"context"
	"fmt"

	fs "cloud.google.com/go/firestore"
	"github.com/dvloznov/wealthwise/internal/store"
	"google.golang.org/api/iterator"
)

// Ledger is the Firestore-backed implementation of store.Ledger. It holds a
// shared client to avoid creating a new connection per operation.
type Ledger struct {
	client *fs.Client
}

// New creates a Firestore ledger for the given project and database. It
// assumes Application Default Credentials are configured.
func New(ctx context.Context, projectID, database string) (*Ledger, error) {
	client, err := fs.NewClientWithDatabase(ctx, projectID, database)
	if err != nil {
		return nil, fmt.Errorf("firestore: creating client: %w", err)
	}
	return &Ledger{client: client}, nil
}

func (l *Ledger) collection(userID, collection string) *fs.CollectionRef {
	return l.client.Collection("users").Doc(userID).Collection(collection)
}

// Append implements store.Ledger.
func (l *Ledger) Append(ctx context.Context, userID, collection string, data map[string]interface{}) (string, error) {
	ref, _, err := l.collection(userID, collection).Add(ctx, data)
	if err != nil {
		return "", fmt.Errorf("firestore: append to %s: %w", collection, err)
	}
	return ref.ID, nil
}

// List implements store.Ledger. Requires the single-field descending index on
// "date" that Firestore creates by default.
func (l *Ledger) List(ctx context.Context, userID, collection string) ([]store.Document, error) {
	iter := l.collection(userID, collection).OrderBy("date", fs.Desc).Documents(ctx)
	defer iter.Stop()

	var docs []store.Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore: list %s: %w", collection, err)
		}
		docs = append(docs, store.Document{
			ID:   snap.Ref.ID,
			Data: snap.Data(),
		})
	}
	return docs, nil
}

// Update implements store.Ledger.
func (l *Ledger) Update(ctx context.Context, userID, collection, id string, data map[string]interface{}) error {
	ref := l.collection(userID, collection).Doc(id)

	snap, err := ref.Get(ctx)
	if snap != nil && !snap.Exists() {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("firestore: update %s/%s: %w", collection, id, err)
	}

	if _, err := ref.Set(ctx, data); err != nil {
		return fmt.Errorf("firestore: update %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete implements store.Ledger. Deleting a missing document reports
// store.ErrNotFound to match the in-memory backend.
func (l *Ledger) Delete(ctx context.Context, userID, collection, id string) error {
	ref := l.collection(userID, collection).Doc(id)

	snap, err := ref.Get(ctx)
	if snap != nil && !snap.Exists() {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("firestore: delete %s/%s: %w", collection, id, err)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("firestore: delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Close implements store.Ledger.
func (l *Ledger) Close() error {
	return l.client.Close()
}

var _ store.Ledger = (*Ledger)(nil)
