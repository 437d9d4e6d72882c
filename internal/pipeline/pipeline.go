package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dvloznov/wealthwise/internal/ai"
	"github.com/dvloznov/wealthwise/internal/domain"
	"github.com/rs/zerolog"
)

// ErrEmptyInput is returned when the raw transaction text is missing. No
// remote call is attempted in that case.
var ErrEmptyInput = errors.New("raw transaction text is required")

// Step is a single stage of the transaction-processing pipeline.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// State holds the shared state across pipeline steps for one transaction.
type State struct {
	Input *ProcessInput
	Now   time.Time

	Categorized     *ai.CategorizationResult
	Recurrence      RecurrenceResult
	MonthlyExpenses []ai.CategoryAmount
	Insights        *ai.InsightResult // nil when generation failed and was degraded
	Alerts          []string
}

// CategorizeStep sends the raw text to the model. Failure here aborts the
// pipeline: nothing has been derived yet, so nothing is written.
type CategorizeStep struct {
	Categorizer ai.Categorizer
}

func (s *CategorizeStep) Execute(ctx context.Context, state *State) error {
	categorized, err := s.Categorizer.Categorize(ctx, state.Input.RawInput)
	if err != nil {
		return err
	}
	state.Categorized = categorized
	return nil
}

// RecurrenceStep runs the local recurrence rules against history.
type RecurrenceStep struct{}

func (s *RecurrenceStep) Execute(ctx context.Context, state *State) error {
	state.Recurrence = DetectRecurrence(
		state.Categorized.Description,
		state.Categorized.Amount,
		state.Input.History,
	)
	return nil
}

// InsightStep aggregates the month's spend and asks the model for analysis.
// A failed insight call degrades to empty insights instead of aborting: the
// categorization already computed must not be lost over advisory text.
type InsightStep struct {
	Generator ai.InsightGenerator
	Log       zerolog.Logger
}

func (s *InsightStep) Execute(ctx context.Context, state *State) error {
	state.MonthlyExpenses = MonthlyExpensesByCategory(state.Input.History, state.Now)

	insights, err := s.Generator.GenerateInsights(ctx, &ai.InsightRequest{
		Income:       TotalIncome(state.Input.History),
		Expenses:     state.MonthlyExpenses,
		BudgetLimits: state.Input.Budgets,
	})
	if err != nil {
		s.Log.Warn().Err(err).Msg("Insight generation failed, continuing without insights")
		return nil
	}
	state.Insights = insights
	return nil
}

// BudgetStep evaluates the budget for the transaction's category only. No
// configured budget means zero alerts. The running total includes the
// transaction being processed.
type BudgetStep struct{}

func (s *BudgetStep) Execute(ctx context.Context, state *State) error {
	var budget *domain.Budget
	for i := range state.Input.Budgets {
		if state.Input.Budgets[i].Category == state.Categorized.Category {
			budget = &state.Input.Budgets[i]
			break
		}
	}
	if budget == nil {
		return nil
	}

	totalSpent := CategorySpend(state.MonthlyExpenses, state.Categorized.Category) + state.Categorized.Amount
	state.Alerts = BudgetAlerts(state.Categorized.Category, totalSpent, budget.Limit)
	return nil
}

// Manager sequences categorization, recurrence detection, insight generation
// and budget alerting for one incoming transaction. It performs no
// persistence; the caller writes the result.
type Manager struct {
	steps []Step
	now   func() time.Time
}

// NewManager wires the standard four-step pipeline.
func NewManager(categorizer ai.Categorizer, insights ai.InsightGenerator, log zerolog.Logger) *Manager {
	return &Manager{
		steps: []Step{
			&CategorizeStep{Categorizer: categorizer},
			&RecurrenceStep{},
			&InsightStep{Generator: insights, Log: log},
			&BudgetStep{},
		},
		now: time.Now,
	}
}

// Process runs the pipeline for one raw transaction description.
func (m *Manager) Process(ctx context.Context, input *ProcessInput) (*Result, error) {
	if input == nil || strings.TrimSpace(input.RawInput) == "" {
		return nil, ErrEmptyInput
	}

	state := &State{Input: input, Now: m.now()}
	for i, step := range m.steps {
		if err := step.Execute(ctx, state); err != nil {
			return nil, fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}

	result := &Result{
		Transaction: ProcessedTransaction{
			Description: state.Categorized.Description,
			Amount:      state.Categorized.Amount,
		},
		Category:        state.Categorized.Category,
		Recurring:       state.Recurrence.IsRecurring,
		RecurringReason: state.Recurrence.Reason,
		Insights:        []string{},
		Alerts:          []string{},
	}
	if state.Insights != nil {
		for _, msg := range []string{state.Insights.SpendingAnalysis, state.Insights.SavingsSuggestions} {
			if msg != "" {
				result.Insights = append(result.Insights, msg)
			}
		}
	}
	if state.Alerts != nil {
		result.Alerts = state.Alerts
	}
	return result, nil
}
