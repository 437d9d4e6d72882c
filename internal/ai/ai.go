// Package ai wraps the hosted Gemini model behind narrow capability
// interfaces so the orchestration core stays testable with canned outputs.
package ai

import (
	"context"

	"github.com/dvloznov/wealthwise/internal/domain"
)

// CategorizationResult is the structured triple extracted from free text.
// Ephemeral: consumed immediately by the orchestrator, never persisted as-is.
type CategorizationResult struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

// CategoryAmount is one aggregated expense line fed to the insight model.
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// InsightRequest is the structured spending summary sent to the model.
type InsightRequest struct {
	Income       float64          `json:"income"`
	Expenses     []CategoryAmount `json:"expenses"`
	BudgetLimits []domain.Budget  `json:"budgetLimits"`
}

// InsightResult is advisory free text. Callers must never parse it for
// control flow.
type InsightResult struct {
	SpendingAnalysis   string `json:"spendingAnalysis"`
	SavingsSuggestions string `json:"savingsSuggestions"`
}

// SavingsPlanRequest carries the spending snapshot and the user's stated
// goals for the savings planner.
type SavingsPlanRequest struct {
	Income      float64          `json:"income"`
	Expenses    []CategoryAmount `json:"expenses"`
	BudgetGoals string           `json:"budgetGoals"`
}

// RiskResult is the fraud assessment for one payment attempt.
type RiskResult struct {
	RiskScore int    `json:"risk_score"`
	Reasoning string `json:"reasoning"`
}

// Categorizer maps natural-language text to a categorized transaction.
type Categorizer interface {
	Categorize(ctx context.Context, text string) (*CategorizationResult, error)
}

// InsightGenerator produces spending analysis and savings suggestions.
type InsightGenerator interface {
	GenerateInsights(ctx context.Context, req *InsightRequest) (*InsightResult, error)
}

// SavingsPlanner produces personalized savings plans from a spending
// snapshot and free-text budgeting goals.
type SavingsPlanner interface {
	SuggestSavingsPlans(ctx context.Context, req *SavingsPlanRequest) ([]string, error)
}

// RiskAnalyzer scores a payment attempt for fraud risk.
type RiskAnalyzer interface {
	AnalyzeRisk(ctx context.Context, amount float64, currency string) (*RiskResult, error)
}

// Assistant answers free-form chat messages.
type Assistant interface {
	Chat(ctx context.Context, message string) (string, error)
}

// Transcriber converts recorded audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}
