// Package service orchestrates the transaction pipeline against storage:
// it loads the user's context, runs the pipeline, and persists every derived
// artifact (transaction, recurring copy, insights, alerts).
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dvloznov/wealthwise/internal/ai"
	"github.com/dvloznov/wealthwise/internal/domain"
	"github.com/dvloznov/wealthwise/internal/pipeline"
	"github.com/dvloznov/wealthwise/internal/store"
	"github.com/rs/zerolog"
)

// ErrInvalidInput marks request-shaped failures that should surface as a
// client error rather than a server one.
var ErrInvalidInput = errors.New("invalid input")

// Recorder archives raw voice recordings. Optional: a nil Recorder means
// recordings are processed without being kept.
type Recorder interface {
	Save(ctx context.Context, userID string, audio []byte, mimeType string) (string, error)
}

// Exporter streams processed transactions to an analytics sink. Optional,
// and always best-effort: export failures never fail the request.
type Exporter interface {
	Export(ctx context.Context, userID string, tx *domain.Transaction, recurring bool) error
}

// Deps collects the service's collaborators. Ledger, Pipeline and Log are
// required; the rest are optional capabilities checked at call sites.
type Deps struct {
	Ledger      store.Ledger
	Pipeline    *pipeline.Manager
	Risk        ai.RiskAnalyzer
	Planner     ai.SavingsPlanner
	Assistant   ai.Assistant
	Transcriber ai.Transcriber
	Recorder    Recorder
	Exporter    Exporter
	Log         zerolog.Logger
}

// Service is the application core behind the HTTP handlers and the job
// worker.
type Service struct {
	ledger      store.Ledger
	pipeline    *pipeline.Manager
	risk        ai.RiskAnalyzer
	planner     ai.SavingsPlanner
	assistant   ai.Assistant
	transcriber ai.Transcriber
	recorder    Recorder
	exporter    Exporter
	log         zerolog.Logger
	now         func() time.Time
}

// New creates the service.
func New(d Deps) *Service {
	return &Service{
		ledger:      d.Ledger,
		pipeline:    d.Pipeline,
		risk:        d.Risk,
		planner:     d.Planner,
		assistant:   d.Assistant,
		transcriber: d.Transcriber,
		recorder:    d.Recorder,
		exporter:    d.Exporter,
		log:         d.Log,
		now:         time.Now,
	}
}

// ProcessText runs the full pipeline for one raw transaction description and
// persists the outcome. The stored transaction, any recurring copy, the
// insight messages and the alert messages are all written before returning.
func (s *Service) ProcessText(ctx context.Context, userID, text string) (*pipeline.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: transaction text is required", ErrInvalidInput)
	}

	history, err := store.ListTransactions(ctx, s.ledger, userID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	budgets, err := s.Budgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}

	result, err := s.pipeline.Process(ctx, &pipeline.ProcessInput{
		RawInput: text,
		History:  history,
		Budgets:  budgets,
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyInput) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}

	now := s.now()
	tx := &domain.Transaction{
		Date:        now,
		Description: result.Transaction.Description,
		Category:    result.Category,
		Amount:      result.Transaction.Amount,
		Type:        domain.TypeOf(result.Category),
	}

	id, err := store.AppendTransaction(ctx, s.ledger, userID, tx)
	if err != nil {
		return nil, fmt.Errorf("persist transaction: %w", err)
	}
	tx.ID = id

	if result.Recurring {
		if _, err := store.AppendRecurring(ctx, s.ledger, userID, tx); err != nil {
			return nil, fmt.Errorf("persist recurring copy: %w", err)
		}
	}
	for _, msg := range result.Insights {
		if _, err := store.AppendInsight(ctx, s.ledger, userID, msg, now); err != nil {
			return nil, fmt.Errorf("persist insight: %w", err)
		}
	}
	for _, msg := range result.Alerts {
		if _, err := store.AppendAlert(ctx, s.ledger, userID, msg, now); err != nil {
			return nil, fmt.Errorf("persist alert: %w", err)
		}
	}

	if s.exporter != nil {
		if err := s.exporter.Export(ctx, userID, tx, result.Recurring); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("Analytics export failed")
		}
	}

	s.log.Info().
		Str("user_id", userID).
		Str("category", result.Category).
		Float64("amount", result.Transaction.Amount).
		Bool("recurring", result.Recurring).
		Int("alerts", len(result.Alerts)).
		Msg("Transaction processed")

	return result, nil
}

// AddTransaction persists a manually entered transaction. The type is always
// derived from the category; the date defaults to now.
func (s *Service) AddTransaction(ctx context.Context, userID string, tx *domain.Transaction) (*domain.Transaction, error) {
	if tx.Date.IsZero() {
		tx.Date = s.now()
	}
	tx.Type = domain.TypeOf(tx.Category)
	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id, err := store.AppendTransaction(ctx, s.ledger, userID, tx)
	if err != nil {
		return nil, fmt.Errorf("persist transaction: %w", err)
	}
	tx.ID = id
	return tx, nil
}

// ListTransactions returns the user's transactions, newest first.
func (s *Service) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	return store.ListTransactions(ctx, s.ledger, userID)
}

// UpdateTransaction replaces a stored transaction.
func (s *Service) UpdateTransaction(ctx context.Context, userID, id string, tx *domain.Transaction) (*domain.Transaction, error) {
	if tx.Date.IsZero() {
		tx.Date = s.now()
	}
	tx.Type = domain.TypeOf(tx.Category)
	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := store.UpdateTransaction(ctx, s.ledger, userID, id, tx); err != nil {
		return nil, err
	}
	tx.ID = id
	return tx, nil
}

// DeleteTransaction removes a stored transaction.
func (s *Service) DeleteTransaction(ctx context.Context, userID, id string) error {
	return store.DeleteTransaction(ctx, s.ledger, userID, id)
}

// Budgets returns the user's budget set, falling back to the shipped
// defaults when the user has not configured any.
func (s *Service) Budgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	budgets, err := store.ListBudgets(ctx, s.ledger, userID)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return domain.DefaultBudgets(), nil
	}
	return budgets, nil
}

// ReplaceBudgets swaps the user's budget set wholesale after validating
// every entry.
func (s *Service) ReplaceBudgets(ctx context.Context, userID string, budgets []domain.Budget) error {
	for _, b := range budgets {
		if !domain.KnownCategory(b.Category) {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, b.Category)
		}
		if b.Limit <= 0 {
			return fmt.Errorf("%w: budget limit for %q must be positive", ErrInvalidInput, b.Category)
		}
	}
	return store.ReplaceBudgets(ctx, s.ledger, userID, budgets)
}

// ListInsights returns the user's stored insight messages, newest first.
func (s *Service) ListInsights(ctx context.Context, userID string) ([]domain.Insight, error) {
	return store.ListInsights(ctx, s.ledger, userID)
}

// ListAlerts returns the user's stored alert messages, newest first.
func (s *Service) ListAlerts(ctx context.Context, userID string) ([]domain.Alert, error) {
	return store.ListAlerts(ctx, s.ledger, userID)
}

// SavingsPlans generates personalized savings plans from the user's stored
// history and their free-text budgeting goals. The snapshot fed to the model
// matches the insight step: all-time income, current month's expenses.
func (s *Service) SavingsPlans(ctx context.Context, userID, goals string) ([]string, error) {
	if strings.TrimSpace(goals) == "" {
		return nil, fmt.Errorf("%w: budgeting goals are required", ErrInvalidInput)
	}

	history, err := store.ListTransactions(ctx, s.ledger, userID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	plans, err := s.planner.SuggestSavingsPlans(ctx, &ai.SavingsPlanRequest{
		Income:      pipeline.TotalIncome(history),
		Expenses:    pipeline.MonthlyExpensesByCategory(history, s.now()),
		BudgetGoals: goals,
	})
	if err != nil {
		return nil, fmt.Errorf("suggest savings plans: %w", err)
	}

	s.log.Info().
		Str("user_id", userID).
		Int("plans", len(plans)).
		Msg("Savings plans generated")

	return plans, nil
}

// Chat answers a free-form assistant message.
func (s *Service) Chat(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	return s.assistant.Chat(ctx, message)
}
