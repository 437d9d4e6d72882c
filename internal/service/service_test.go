package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dvloznov/wealthwise/internal/ai"
	"github.com/dvloznov/wealthwise/internal/domain"
	"github.com/dvloznov/wealthwise/internal/logger"
	"github.com/dvloznov/wealthwise/internal/pipeline"
	"github.com/dvloznov/wealthwise/internal/store"
	"github.com/dvloznov/wealthwise/internal/store/memory"
)

type mockCategorizer struct {
	CategorizeFunc func(ctx context.Context, text string) (*ai.CategorizationResult, error)
}

func (m *mockCategorizer) Categorize(ctx context.Context, text string) (*ai.CategorizationResult, error) {
	return m.CategorizeFunc(ctx, text)
}

type mockInsightGenerator struct {
	GenerateInsightsFunc func(ctx context.Context, req *ai.InsightRequest) (*ai.InsightResult, error)
}

func (m *mockInsightGenerator) GenerateInsights(ctx context.Context, req *ai.InsightRequest) (*ai.InsightResult, error) {
	return m.GenerateInsightsFunc(ctx, req)
}

type mockRiskAnalyzer struct {
	AnalyzeRiskFunc func(ctx context.Context, amount float64, currency string) (*ai.RiskResult, error)
}

func (m *mockRiskAnalyzer) AnalyzeRisk(ctx context.Context, amount float64, currency string) (*ai.RiskResult, error) {
	return m.AnalyzeRiskFunc(ctx, amount, currency)
}

type mockPlanner struct {
	SuggestSavingsPlansFunc func(ctx context.Context, req *ai.SavingsPlanRequest) ([]string, error)
}

func (m *mockPlanner) SuggestSavingsPlans(ctx context.Context, req *ai.SavingsPlanRequest) ([]string, error) {
	return m.SuggestSavingsPlansFunc(ctx, req)
}

type mockAssistant struct {
	ChatFunc func(ctx context.Context, message string) (string, error)
}

func (m *mockAssistant) Chat(ctx context.Context, message string) (string, error) {
	return m.ChatFunc(ctx, message)
}

type mockTranscriber struct {
	TranscribeFunc func(ctx context.Context, audio []byte, mimeType string) (string, error)
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	return m.TranscribeFunc(ctx, audio, mimeType)
}

type mockRecorder struct {
	SaveFunc func(ctx context.Context, userID string, audio []byte, mimeType string) (string, error)
}

func (m *mockRecorder) Save(ctx context.Context, userID string, audio []byte, mimeType string) (string, error) {
	return m.SaveFunc(ctx, userID, audio, mimeType)
}

func newTestService(t *testing.T, deps Deps) (*Service, *memory.Ledger) {
	t.Helper()
	ledger := memory.New()
	deps.Ledger = ledger
	deps.Log = logger.NewWithWriter(&bytes.Buffer{})
	if deps.Pipeline == nil {
		deps.Pipeline = pipeline.NewManager(
			&mockCategorizer{CategorizeFunc: func(ctx context.Context, text string) (*ai.CategorizationResult, error) {
				return &ai.CategorizationResult{Description: "Groceries", Amount: 20, Category: "Food & Dining"}, nil
			}},
			&mockInsightGenerator{GenerateInsightsFunc: func(ctx context.Context, req *ai.InsightRequest) (*ai.InsightResult, error) {
				return &ai.InsightResult{SpendingAnalysis: "analysis", SavingsSuggestions: "suggestions"}, nil
			}},
			deps.Log,
		)
	}
	return New(deps), ledger
}

func TestProcessTextPersistsEverything(t *testing.T) {
	svc, ledger := newTestService(t, Deps{})
	ctx := context.Background()

	result, err := svc.ProcessText(ctx, "user-1", "spent 20 dollars on groceries")
	if err != nil {
		t.Fatalf("ProcessText: %v", err)
	}
	if result.Category != "Food & Dining" {
		t.Errorf("category = %q", result.Category)
	}

	txs, err := store.ListTransactions(ctx, ledger, "user-1")
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("stored %d transactions, want 1", len(txs))
	}
	if txs[0].Type != domain.TypeExpense {
		t.Errorf("stored type = %q, want expense", txs[0].Type)
	}

	insights, err := store.ListInsights(ctx, ledger, "user-1")
	if err != nil {
		t.Fatalf("ListInsights: %v", err)
	}
	if len(insights) != 2 {
		t.Errorf("stored %d insights, want 2", len(insights))
	}
}

func TestProcessTextRecurringCopy(t *testing.T) {
	deps := Deps{}
	deps.Pipeline = pipeline.NewManager(
		&mockCategorizer{CategorizeFunc: func(ctx context.Context, text string) (*ai.CategorizationResult, error) {
			return &ai.CategorizationResult{Description: "Netflix Subscription", Amount: 15.99, Category: "Entertainment"}, nil
		}},
		&mockInsightGenerator{GenerateInsightsFunc: func(ctx context.Context, req *ai.InsightRequest) (*ai.InsightResult, error) {
			return &ai.InsightResult{}, nil
		}},
		logger.NewWithWriter(&bytes.Buffer{}),
	)
	svc, ledger := newTestService(t, deps)
	ctx := context.Background()

	result, err := svc.ProcessText(ctx, "user-1", "netflix 15.99")
	if err != nil {
		t.Fatalf("ProcessText: %v", err)
	}
	if !result.Recurring {
		t.Fatal("expected recurring result")
	}

	docs, err := ledger.List(ctx, "user-1", store.CollectionRecurring)
	if err != nil {
		t.Fatalf("List recurring: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("stored %d recurring copies, want 1", len(docs))
	}
	if flagged, _ := docs[0].Data["recurring"].(bool); !flagged {
		t.Error("recurring copy must carry recurring=true")
	}
}

func TestProcessTextEmptyInput(t *testing.T) {
	svc, _ := newTestService(t, Deps{})
	if _, err := svc.ProcessText(context.Background(), "user-1", "   "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestProcessTextCategorizationFailureWritesNothing(t *testing.T) {
	deps := Deps{}
	deps.Pipeline = pipeline.NewManager(
		&mockCategorizer{CategorizeFunc: func(ctx context.Context, text string) (*ai.CategorizationResult, error) {
			return nil, errors.New("model unavailable")
		}},
		&mockInsightGenerator{GenerateInsightsFunc: func(ctx context.Context, req *ai.InsightRequest) (*ai.InsightResult, error) {
			return &ai.InsightResult{}, nil
		}},
		logger.NewWithWriter(&bytes.Buffer{}),
	)
	svc, ledger := newTestService(t, deps)
	ctx := context.Background()

	if _, err := svc.ProcessText(ctx, "user-1", "spent 5 on coffee"); err == nil {
		t.Fatal("expected error")
	}

	txs, err := store.ListTransactions(ctx, ledger, "user-1")
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("failed processing must not persist, found %d transactions", len(txs))
	}
}

func TestAddTransactionValidation(t *testing.T) {
	svc, _ := newTestService(t, Deps{})
	ctx := context.Background()

	_, err := svc.AddTransaction(ctx, "user-1", &domain.Transaction{
		Description: "Mystery",
		Category:    "Gadgets",
		Amount:      10,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown category error = %v, want ErrInvalidInput", err)
	}

	added, err := svc.AddTransaction(ctx, "user-1", &domain.Transaction{
		Description: "Monthly salary",
		Category:    "Salary",
		Amount:      5000,
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if added.Type != domain.TypeIncome {
		t.Errorf("Salary type = %q, want income", added.Type)
	}
	if added.ID == "" {
		t.Error("added transaction must carry an id")
	}
}

func TestBudgetsFallBackToDefaults(t *testing.T) {
	svc, _ := newTestService(t, Deps{})
	ctx := context.Background()

	budgets, err := svc.Budgets(ctx, "user-1")
	if err != nil {
		t.Fatalf("Budgets: %v", err)
	}
	if len(budgets) != len(domain.DefaultBudgets()) {
		t.Errorf("got %d budgets, want the default set", len(budgets))
	}

	if err := svc.ReplaceBudgets(ctx, "user-1", []domain.Budget{{Category: "Transport", Limit: 75}}); err != nil {
		t.Fatalf("ReplaceBudgets: %v", err)
	}
	budgets, err = svc.Budgets(ctx, "user-1")
	if err != nil {
		t.Fatalf("Budgets: %v", err)
	}
	if len(budgets) != 1 || budgets[0].Limit != 75 {
		t.Errorf("after replace got %+v", budgets)
	}
}

func TestReplaceBudgetsValidation(t *testing.T) {
	svc, _ := newTestService(t, Deps{})
	ctx := context.Background()

	err := svc.ReplaceBudgets(ctx, "user-1", []domain.Budget{{Category: "Gadgets", Limit: 10}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown category error = %v, want ErrInvalidInput", err)
	}
	err = svc.ReplaceBudgets(ctx, "user-1", []domain.Budget{{Category: "Transport", Limit: 0}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero limit error = %v, want ErrInvalidInput", err)
	}
}

func TestRecordPayment(t *testing.T) {
	tests := []struct {
		name       string
		risk       *ai.RiskResult
		riskErr    error
		wantStatus domain.PaymentStatus
		wantScore  int
	}{
		{name: "low risk", risk: &ai.RiskResult{RiskScore: 12}, wantStatus: domain.PaymentOK, wantScore: 12},
		{name: "at threshold passes", risk: &ai.RiskResult{RiskScore: 80}, wantStatus: domain.PaymentOK, wantScore: 80},
		{name: "flagged", risk: &ai.RiskResult{RiskScore: 95, Reasoning: "unusual amount"}, wantStatus: domain.PaymentFlagged, wantScore: 95},
		{name: "analysis failure", riskErr: errors.New("model unavailable"), wantStatus: domain.PaymentError, wantScore: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := Deps{
				Risk: &mockRiskAnalyzer{AnalyzeRiskFunc: func(ctx context.Context, amount float64, currency string) (*ai.RiskResult, error) {
					return tt.risk, tt.riskErr
				}},
			}
			svc, ledger := newTestService(t, deps)
			ctx := context.Background()

			payment, err := svc.RecordPayment(ctx, "user-1", 250, "USD")
			if err != nil {
				t.Fatalf("RecordPayment: %v", err)
			}
			if payment.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", payment.Status, tt.wantStatus)
			}
			if payment.RiskScore != tt.wantScore {
				t.Errorf("risk score = %d, want %d", payment.RiskScore, tt.wantScore)
			}

			docs, err := ledger.List(ctx, "user-1", store.CollectionPayments)
			if err != nil {
				t.Fatalf("List payments: %v", err)
			}
			if len(docs) != 1 {
				t.Errorf("stored %d payment logs, want 1", len(docs))
			}
		})
	}
}

func TestRecordPaymentRejectsBadAmount(t *testing.T) {
	svc, _ := newTestService(t, Deps{
		Risk: &mockRiskAnalyzer{AnalyzeRiskFunc: func(ctx context.Context, amount float64, currency string) (*ai.RiskResult, error) {
			t.Fatal("risk analysis must not run for invalid input")
			return nil, nil
		}},
	})
	if _, err := svc.RecordPayment(context.Background(), "user-1", 0, "USD"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestProcessVoice(t *testing.T) {
	recorderFailed := false
	deps := Deps{
		Transcriber: &mockTranscriber{TranscribeFunc: func(ctx context.Context, audio []byte, mimeType string) (string, error) {
			return "spent 20 dollars on groceries", nil
		}},
		Recorder: &mockRecorder{SaveFunc: func(ctx context.Context, userID string, audio []byte, mimeType string) (string, error) {
			recorderFailed = true
			return "", errors.New("bucket unavailable")
		}},
	}
	svc, ledger := newTestService(t, deps)
	ctx := context.Background()

	result, err := svc.ProcessVoice(ctx, "user-1", []byte("audio-bytes"), "audio/webm")
	if err != nil {
		t.Fatalf("ProcessVoice: %v", err)
	}
	if !recorderFailed {
		t.Error("recorder was not invoked")
	}
	if result.Transcript != "spent 20 dollars on groceries" {
		t.Errorf("transcript = %q", result.Transcript)
	}

	txs, err := store.ListTransactions(ctx, ledger, "user-1")
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 1 {
		t.Errorf("archiving failure must not block processing, stored %d transactions", len(txs))
	}
}

func TestProcessVoiceEmptyAudio(t *testing.T) {
	svc, _ := newTestService(t, Deps{
		Transcriber: &mockTranscriber{TranscribeFunc: func(ctx context.Context, audio []byte, mimeType string) (string, error) {
			return "", nil
		}},
	})
	if _, err := svc.ProcessVoice(context.Background(), "user-1", nil, "audio/webm"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestSavingsPlans(t *testing.T) {
	var captured *ai.SavingsPlanRequest
	svc, _ := newTestService(t, Deps{
		Planner: &mockPlanner{SuggestSavingsPlansFunc: func(ctx context.Context, req *ai.SavingsPlanRequest) ([]string, error) {
			captured = req
			return []string{"Cut dining out", "Automate a monthly transfer"}, nil
		}},
	})
	ctx := context.Background()

	if _, err := svc.AddTransaction(ctx, "user-1", &domain.Transaction{
		Description: "Monthly salary", Category: "Salary", Amount: 5000,
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if _, err := svc.AddTransaction(ctx, "user-1", &domain.Transaction{
		Description: "Groceries", Category: "Food & Dining", Amount: 120,
	}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	plans, err := svc.SavingsPlans(ctx, "user-1", "save for a house deposit")
	if err != nil {
		t.Fatalf("SavingsPlans: %v", err)
	}
	if len(plans) != 2 {
		t.Errorf("got %d plans, want 2", len(plans))
	}

	if captured == nil {
		t.Fatal("planner was not invoked")
	}
	if captured.Income != 5000 {
		t.Errorf("income = %v, want 5000", captured.Income)
	}
	if len(captured.Expenses) != 1 || captured.Expenses[0].Amount != 120 {
		t.Errorf("expenses = %+v", captured.Expenses)
	}
	if captured.BudgetGoals != "save for a house deposit" {
		t.Errorf("goals = %q", captured.BudgetGoals)
	}
}

func TestSavingsPlansRequireGoals(t *testing.T) {
	svc, _ := newTestService(t, Deps{
		Planner: &mockPlanner{SuggestSavingsPlansFunc: func(ctx context.Context, req *ai.SavingsPlanRequest) ([]string, error) {
			t.Fatal("planner must not run without goals")
			return nil, nil
		}},
	})
	if _, err := svc.SavingsPlans(context.Background(), "user-1", "  "); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestChatEmptyMessage(t *testing.T) {
	svc, _ := newTestService(t, Deps{
		Assistant: &mockAssistant{ChatFunc: func(ctx context.Context, message string) (string, error) {
			return "hello", nil
		}},
	})
	if _, err := svc.Chat(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}
