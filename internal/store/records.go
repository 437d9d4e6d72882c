package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dvloznov/wealthwise/internal/domain"
)

// Typed access on top of the raw Ledger interface. Conversion is lenient on
// reads: history entries that do not convert cleanly are skipped rather than
// failing the whole listing, so one malformed document cannot take down the
// pipeline.

// AppendTransaction persists a transaction and returns its assigned id.
func AppendTransaction(ctx context.Context, l Ledger, userID string, tx *domain.Transaction) (string, error) {
	return l.Append(ctx, userID, CollectionTransactions, transactionData(tx))
}

// AppendRecurring persists a recurring-flagged copy of a transaction.
func AppendRecurring(ctx context.Context, l Ledger, userID string, tx *domain.Transaction) (string, error) {
	data := transactionData(tx)
	data["recurring"] = true
	return l.Append(ctx, userID, CollectionRecurring, data)
}

// ListTransactions returns the user's transaction history, newest first.
func ListTransactions(ctx context.Context, l Ledger, userID string) ([]domain.Transaction, error) {
	docs, err := l.List(ctx, userID, CollectionTransactions)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	txs := make([]domain.Transaction, 0, len(docs))
	for _, doc := range docs {
		tx, err := transactionFromDoc(doc)
		if err != nil {
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// UpdateTransaction replaces a stored transaction.
func UpdateTransaction(ctx context.Context, l Ledger, userID, id string, tx *domain.Transaction) error {
	return l.Update(ctx, userID, CollectionTransactions, id, transactionData(tx))
}

// DeleteTransaction removes a stored transaction.
func DeleteTransaction(ctx context.Context, l Ledger, userID, id string) error {
	return l.Delete(ctx, userID, CollectionTransactions, id)
}

// AppendInsight persists one insight message.
func AppendInsight(ctx context.Context, l Ledger, userID, message string, at time.Time) (string, error) {
	return l.Append(ctx, userID, CollectionInsights, map[string]interface{}{
		"message": message,
		"date":    at,
	})
}

// ListInsights returns the user's insight messages, newest first.
func ListInsights(ctx context.Context, l Ledger, userID string) ([]domain.Insight, error) {
	docs, err := l.List(ctx, userID, CollectionInsights)
	if err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}

	insights := make([]domain.Insight, 0, len(docs))
	for _, doc := range docs {
		msg, err := getStringField(doc.Data, "message", true)
		if err != nil {
			continue
		}
		date, _ := getTimeField(doc.Data, "date")
		insights = append(insights, domain.Insight{ID: doc.ID, Message: msg, Date: date})
	}
	return insights, nil
}

// AppendAlert persists one alert message.
func AppendAlert(ctx context.Context, l Ledger, userID, message string, at time.Time) (string, error) {
	return l.Append(ctx, userID, CollectionAlerts, map[string]interface{}{
		"message": message,
		"date":    at,
	})
}

// ListAlerts returns the user's alert messages, newest first.
func ListAlerts(ctx context.Context, l Ledger, userID string) ([]domain.Alert, error) {
	docs, err := l.List(ctx, userID, CollectionAlerts)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	alerts := make([]domain.Alert, 0, len(docs))
	for _, doc := range docs {
		msg, err := getStringField(doc.Data, "message", true)
		if err != nil {
			continue
		}
		date, _ := getTimeField(doc.Data, "date")
		alerts = append(alerts, domain.Alert{ID: doc.ID, Message: msg, Date: date})
	}
	return alerts, nil
}

// AppendPayment logs one payment attempt.
func AppendPayment(ctx context.Context, l Ledger, userID string, p *domain.Payment) (string, error) {
	data := map[string]interface{}{
		"amount":     p.Amount,
		"currency":   p.Currency,
		"risk_score": p.RiskScore,
		"status":     string(p.Status),
		"date":       p.Date,
	}
	if p.Error != "" {
		data["error"] = p.Error
	}
	return l.Append(ctx, userID, CollectionPayments, data)
}

// ListBudgets returns the user's budget set. An empty result means the user
// has not configured budgets yet; callers decide whether to fall back to
// domain.DefaultBudgets.
func ListBudgets(ctx context.Context, l Ledger, userID string) ([]domain.Budget, error) {
	docs, err := l.List(ctx, userID, CollectionBudgets)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	budgets := make([]domain.Budget, 0, len(docs))
	for _, doc := range docs {
		category, err := getStringField(doc.Data, "category", true)
		if err != nil {
			continue
		}
		limit, err := getFloat64Field(doc.Data, "limit", true)
		if err != nil || limit <= 0 {
			continue
		}
		budgets = append(budgets, domain.Budget{Category: category, Limit: limit})
	}
	return budgets, nil
}

// ReplaceBudgets swaps the user's budget set wholesale. The delete-then-append
// sequence is not transactional: a write failure mid-loop can leave a partial
// set, which the next successful replace repairs.
func ReplaceBudgets(ctx context.Context, l Ledger, userID string, budgets []domain.Budget) error {
	existing, err := l.List(ctx, userID, CollectionBudgets)
	if err != nil {
		return fmt.Errorf("replace budgets: %w", err)
	}
	for _, doc := range existing {
		if err := l.Delete(ctx, userID, CollectionBudgets, doc.ID); err != nil {
			return fmt.Errorf("replace budgets: %w", err)
		}
	}
	now := time.Now()
	for _, b := range budgets {
		_, err := l.Append(ctx, userID, CollectionBudgets, map[string]interface{}{
			"category": b.Category,
			"limit":    b.Limit,
			"date":     now,
		})
		if err != nil {
			return fmt.Errorf("replace budgets: %w", err)
		}
	}
	return nil
}

func transactionData(tx *domain.Transaction) map[string]interface{} {
	return map[string]interface{}{
		"description": tx.Description,
		"amount":      tx.Amount,
		"category":    tx.Category,
		"type":        string(tx.Type),
		"date":        tx.Date,
	}
}

func transactionFromDoc(doc Document) (domain.Transaction, error) {
	desc, err := getStringField(doc.Data, "description", true)
	if err != nil {
		return domain.Transaction{}, err
	}
	amount, err := getFloat64Field(doc.Data, "amount", true)
	if err != nil {
		return domain.Transaction{}, err
	}
	category, err := getStringField(doc.Data, "category", true)
	if err != nil {
		return domain.Transaction{}, err
	}
	date, err := getTimeField(doc.Data, "date")
	if err != nil {
		return domain.Transaction{}, err
	}

	// Type is derived when absent so documents written before the field was
	// added still load.
	txType := domain.TypeOf(category)
	if raw, err := getStringField(doc.Data, "type", false); err == nil && raw != "" {
		txType = domain.TransactionType(raw)
	}

	return domain.Transaction{
		ID:          doc.ID,
		Date:        date,
		Description: desc,
		Category:    category,
		Amount:      amount,
		Type:        txType,
	}, nil
}

func getStringField(m map[string]interface{}, key string, required bool) (string, error) {
	v, ok := m[key]
	if !ok {
		if required {
			return "", fmt.Errorf("missing required field %q", key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q has type %T, want string", key, v)
	}
	if required && s == "" {
		return "", fmt.Errorf("required field %q is empty", key)
	}
	return s, nil
}

func getFloat64Field(m map[string]interface{}, key string, required bool) (float64, error) {
	v, ok := m[key]
	if !ok {
		if required {
			return 0, fmt.Errorf("missing required field %q", key)
		}
		return 0, nil
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case int64:
		// Firestore stores whole numbers as int64.
		return float64(val), nil
	default:
		return 0, fmt.Errorf("field %q has type %T, want number", key, v)
	}
}

func getTimeField(m map[string]interface{}, key string) (time.Time, error) {
	v, ok := m[key]
	if !ok {
		return time.Time{}, fmt.Errorf("missing required field %q", key)
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("field %q has type %T, want time.Time", key, v)
	}
	return t, nil
}
