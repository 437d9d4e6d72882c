package pipeline

import (
	"github.com/dvloznov/wealthwise/internal/domain"
)

// ProcessInput is one raw transaction submission plus the context the
// pipeline needs: the user's history and configured budgets. The caller reads
// both from storage before invoking the pipeline.
type ProcessInput struct {
	RawInput string
	History  []domain.Transaction
	Budgets  []domain.Budget
}

// ProcessedTransaction is the description/amount pair echoed back to the
// caller.
type ProcessedTransaction struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Result is the consolidated outcome for one processed transaction.
// Insights holds the non-empty analysis and suggestion strings; Alerts holds
// zero or more budget threshold messages.
type Result struct {
	Transaction     ProcessedTransaction `json:"transaction"`
	Category        string               `json:"category"`
	Recurring       bool                 `json:"recurring"`
	RecurringReason string               `json:"recurring_reason,omitempty"`
	Insights        []string             `json:"insights"`
	Alerts          []string             `json:"alerts"`
}
