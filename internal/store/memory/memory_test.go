package memory

import (
	"context"
	"testing"
	"time"

	"github.com/dvloznov/wealthwise/internal/domain"
	"github.com/dvloznov/wealthwise/internal/store"
)

func TestAppendAndList(t *testing.T) {
	ctx := context.Background()
	l := New()

	older := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

	if _, err := l.Append(ctx, "alice", store.CollectionTransactions, map[string]interface{}{
		"description": "Internet Bill", "amount": 80.0, "category": "Bills & Utilities",
		"type": "expense", "date": older,
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := l.Append(ctx, "alice", store.CollectionTransactions, map[string]interface{}{
		"description": "Grocery Shopping", "amount": 150.75, "category": "Food & Dining",
		"type": "expense", "date": newer,
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	docs, err := l.List(ctx, "alice", store.CollectionTransactions)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if docs[0].Data["description"] != "Grocery Shopping" {
		t.Errorf("expected newest-first ordering, got %v first", docs[0].Data["description"])
	}
}

func TestUserIsolation(t *testing.T) {
	ctx := context.Background()
	l := New()

	_, err := l.Append(ctx, "alice", store.CollectionInsights, map[string]interface{}{
		"message": "insight", "date": time.Now(),
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	docs, err := l.List(ctx, "bob", store.CollectionInsights)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("bob sees %d of alice's documents", len(docs))
	}
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	l := New()

	id, err := l.Append(ctx, "alice", store.CollectionTransactions, map[string]interface{}{
		"description": "Coffee", "amount": 4.5, "category": "Food & Dining",
		"type": "expense", "date": time.Now(),
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := l.Update(ctx, "alice", store.CollectionTransactions, id, map[string]interface{}{
		"description": "Coffee", "amount": 4.75, "category": "Food & Dining",
		"type": "expense", "date": time.Now(),
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	docs, _ := l.List(ctx, "alice", store.CollectionTransactions)
	if got := docs[0].Data["amount"]; got != 4.75 {
		t.Errorf("amount after update = %v, want 4.75", got)
	}

	if err := l.Delete(ctx, "alice", store.CollectionTransactions, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	docs, _ = l.List(ctx, "alice", store.CollectionTransactions)
	if len(docs) != 0 {
		t.Errorf("got %d documents after delete, want 0", len(docs))
	}

	if err := l.Delete(ctx, "alice", store.CollectionTransactions, id); err != store.ErrNotFound {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestTypedRecords(t *testing.T) {
	ctx := context.Background()
	l := New()

	tx := &domain.Transaction{
		Date:        time.Date(2024, 7, 16, 0, 0, 0, 0, time.UTC),
		Description: "Grocery Shopping",
		Category:    "Food & Dining",
		Amount:      150.75,
		Type:        domain.TypeExpense,
	}
	if _, err := store.AppendTransaction(ctx, l, "alice", tx); err != nil {
		t.Fatalf("AppendTransaction: %v", err)
	}

	// A malformed document must be skipped, not fail the listing.
	if _, err := l.Append(ctx, "alice", store.CollectionTransactions, map[string]interface{}{
		"description": "broken", "amount": "not-a-number", "date": time.Now(),
	}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	txs, err := store.ListTransactions(ctx, l, "alice")
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1 (malformed entry skipped)", len(txs))
	}
	got := txs[0]
	if got.Description != tx.Description || got.Amount != tx.Amount || got.Category != tx.Category || got.Type != tx.Type {
		t.Errorf("round-tripped transaction mismatch: %+v", got)
	}
	if got.ID == "" {
		t.Error("expected an assigned id")
	}
}

func TestReplaceBudgets(t *testing.T) {
	ctx := context.Background()
	l := New()

	if err := store.ReplaceBudgets(ctx, l, "alice", domain.DefaultBudgets()); err != nil {
		t.Fatalf("ReplaceBudgets: %v", err)
	}
	if err := store.ReplaceBudgets(ctx, l, "alice", []domain.Budget{
		{Category: "Food & Dining", Limit: 500},
	}); err != nil {
		t.Fatalf("ReplaceBudgets: %v", err)
	}

	budgets, err := store.ListBudgets(ctx, l, "alice")
	if err != nil {
		t.Fatalf("ListBudgets: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("got %d budgets, want 1", len(budgets))
	}
	if budgets[0].Category != "Food & Dining" || budgets[0].Limit != 500 {
		t.Errorf("unexpected budget: %+v", budgets[0])
	}
}
