package ai

import (
	"context"
	"fmt"
	"math"

	"github.com/dvloznov/wealthwise/internal/domain"
	"google.golang.org/genai"
)

// DefaultModelName is the Gemini model used when none is configured.
const DefaultModelName = "gemini-2.5-flash"

// Gemini implements all model-backed capabilities on the hosted Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates the Gemini service. Credentials are picked up from the
// environment (GEMINI_API_KEY or Application Default Credentials).
func NewGemini(ctx context.Context, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("ai: create genai client: %w", err)
	}
	if model == "" {
		model = DefaultModelName
	}
	return &Gemini{client: client, model: model}, nil
}

// generateText sends the parts to the model and returns the raw text reply.
func (g *Gemini) generateText(ctx context.Context, parts ...*genai.Part) (string, error) {
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// Categorize implements Categorizer. A response that cannot be parsed into
// the expected shape is a hard failure; only the category label itself is
// clamped (unknown labels become Other).
func (g *Gemini) Categorize(ctx context.Context, text string) (*CategorizationResult, error) {
	raw, err := g.generateText(ctx, &genai.Part{Text: buildCategorizePrompt(text)})
	if err != nil {
		return nil, fmt.Errorf("categorize: %w", err)
	}

	obj, err := decodeModelJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("categorize: %w", err)
	}

	description, err := getStringField(obj, "description", true)
	if err != nil {
		return nil, fmt.Errorf("categorize: %w", err)
	}
	amount, err := getFloat64Field(obj, "amount", true)
	if err != nil {
		return nil, fmt.Errorf("categorize: %w", err)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("categorize: model returned non-positive amount %v", amount)
	}
	category, err := getStringField(obj, "category", true)
	if err != nil {
		return nil, fmt.Errorf("categorize: %w", err)
	}

	return &CategorizationResult{
		Description: description,
		Amount:      amount,
		Category:    domain.NormalizeCategory(category),
	}, nil
}

// GenerateInsights implements InsightGenerator.
func (g *Gemini) GenerateInsights(ctx context.Context, req *InsightRequest) (*InsightResult, error) {
	raw, err := g.generateText(ctx, &genai.Part{Text: buildInsightsPrompt(req)})
	if err != nil {
		return nil, fmt.Errorf("insights: %w", err)
	}

	obj, err := decodeModelJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("insights: %w", err)
	}

	analysis, err := getStringField(obj, "spendingAnalysis", true)
	if err != nil {
		return nil, fmt.Errorf("insights: %w", err)
	}
	suggestions, err := getStringField(obj, "savingsSuggestions", true)
	if err != nil {
		return nil, fmt.Errorf("insights: %w", err)
	}

	return &InsightResult{
		SpendingAnalysis:   analysis,
		SavingsSuggestions: suggestions,
	}, nil
}

// SuggestSavingsPlans implements SavingsPlanner.
func (g *Gemini) SuggestSavingsPlans(ctx context.Context, req *SavingsPlanRequest) ([]string, error) {
	raw, err := g.generateText(ctx, &genai.Part{Text: buildSavingsPlansPrompt(req)})
	if err != nil {
		return nil, fmt.Errorf("savings plans: %w", err)
	}

	obj, err := decodeModelJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("savings plans: %w", err)
	}

	plans, err := getStringSliceField(obj, "savingsPlans", true)
	if err != nil {
		return nil, fmt.Errorf("savings plans: %w", err)
	}
	return plans, nil
}

// AnalyzeRisk implements RiskAnalyzer.
func (g *Gemini) AnalyzeRisk(ctx context.Context, amount float64, currency string) (*RiskResult, error) {
	raw, err := g.generateText(ctx, &genai.Part{Text: buildRiskPrompt(amount, currency)})
	if err != nil {
		return nil, fmt.Errorf("risk: %w", err)
	}

	obj, err := decodeModelJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("risk: %w", err)
	}

	score, err := getFloat64Field(obj, "risk_score", true)
	if err != nil {
		return nil, fmt.Errorf("risk: %w", err)
	}
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("risk: score %v out of range", score)
	}
	reasoning, _ := getStringField(obj, "reasoning", false)

	return &RiskResult{
		RiskScore: int(math.Round(score)),
		Reasoning: reasoning,
	}, nil
}

// Chat implements Assistant.
func (g *Gemini) Chat(ctx context.Context, message string) (string, error) {
	prompt := chatSystemPrompt + "\nUser: " + message + "\nAI:"
	reply, err := g.generateText(ctx, &genai.Part{Text: prompt})
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return reply, nil
}

// Transcribe implements Transcriber. The audio is attached inline the same
// way statement PDFs are sent for parsing.
func (g *Gemini) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("transcribe: empty audio")
	}
	if mimeType == "" {
		mimeType = "audio/wav"
	}

	text, err := g.generateText(ctx,
		&genai.Part{Text: transcribePrompt},
		&genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio}},
	)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return text, nil
}

var (
	_ Categorizer      = (*Gemini)(nil)
	_ InsightGenerator = (*Gemini)(nil)
	_ SavingsPlanner   = (*Gemini)(nil)
	_ RiskAnalyzer     = (*Gemini)(nil)
	_ Assistant        = (*Gemini)(nil)
	_ Transcriber      = (*Gemini)(nil)
)
