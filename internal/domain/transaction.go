package domain

import (
	"fmt"
	"time"
)

// TransactionType distinguishes money in from money out. It is derived from
// the category, never stored independently of it.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction is one persisted financial event, scoped to a single user.
// Amounts are positive decimals in USD; the sign is carried by Type.
type Transaction struct {
	ID          string          `json:"id" firestore:"-"`
	Date        time.Time       `json:"date" firestore:"date"`
	Description string          `json:"description" firestore:"description"`
	Category    string          `json:"category" firestore:"category"`
	Amount      float64         `json:"amount" firestore:"amount"`
	Type        TransactionType `json:"type" firestore:"type"`
}

// Validate checks the transaction invariants: positive amount and a category
// from the known set.
func (t *Transaction) Validate() error {
	if t.Amount <= 0 {
		return fmt.Errorf("transaction amount must be positive, got %v", t.Amount)
	}
	if !KnownCategory(t.Category) {
		return fmt.Errorf("unknown category %q", t.Category)
	}
	if t.Description == "" {
		return fmt.Errorf("transaction description is required")
	}
	return nil
}

// Budget is a per-category monthly spending ceiling.
type Budget struct {
	Category string  `json:"category" firestore:"category"`
	Limit    float64 `json:"limit" firestore:"limit"`
}

// DefaultBudgets seeds a new user's budget set. Mirrors the limits the product
// ships with before the user edits them.
func DefaultBudgets() []Budget {
	return []Budget{
		{Category: "Food & Dining", Limit: 400},
		{Category: "Transport", Limit: 150},
		{Category: "Entertainment", Limit: 100},
		{Category: "Rent & Housing", Limit: 1200},
		{Category: "Bills & Utilities", Limit: 150},
		{Category: "Health & Fitness", Limit: 100},
		{Category: CategoryOther, Limit: 200},
	}
}

// Insight is one AI-generated spending observation, persisted append-only.
type Insight struct {
	ID      string    `json:"id" firestore:"-"`
	Message string    `json:"message" firestore:"message"`
	Date    time.Time `json:"date" firestore:"date"`
}

// Alert is one budget threshold message, persisted append-only.
type Alert struct {
	ID      string    `json:"id" firestore:"-"`
	Message string    `json:"message" firestore:"message"`
	Date    time.Time `json:"date" firestore:"date"`
}

// PaymentStatus is the outcome of a risk-checked payment attempt.
type PaymentStatus string

const (
	PaymentOK      PaymentStatus = "ok"
	PaymentFlagged PaymentStatus = "flagged"
	PaymentError   PaymentStatus = "error"
)

// Payment is one logged payment attempt with its fraud risk score.
// RiskScore is -1 when the analysis itself failed.
type Payment struct {
	ID        string        `json:"id" firestore:"-"`
	Amount    float64       `json:"amount" firestore:"amount"`
	Currency  string        `json:"currency" firestore:"currency"`
	RiskScore int           `json:"risk_score" firestore:"risk_score"`
	Status    PaymentStatus `json:"status" firestore:"status"`
	Error     string        `json:"error,omitempty" firestore:"error,omitempty"`
	Date      time.Time     `json:"date" firestore:"date"`
}
