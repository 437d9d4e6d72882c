package ai

import (
	"fmt"
	"strings"

	"github.com/dvloznov/wealthwise/internal/domain"
)

// buildCategorizePrompt constructs the categorization prompt: persona, the
// closed category taxonomy, and strict-JSON output rules.
func buildCategorizePrompt(text string) string {
	var b strings.Builder

	b.WriteString("You are the Auto Categorization Agent for the WealthWise app. ")
	b.WriteString("Your job is to classify one financial transaction described in natural language.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- Extract the transaction details from the text below.\n")
	b.WriteString("- The currency is assumed to be USD unless specified otherwise.\n")
	b.WriteString("- Output STRICT JSON only (no comments, no trailing commas, no extra text).\n")
	b.WriteString("- Output a single JSON object.\n\n")
	b.WriteString("The object must have these fields:\n")
	b.WriteString("- \"description\": string, a concise description of the transaction\n")
	b.WriteString("- \"amount\": number, the positive transaction amount\n")
	b.WriteString("- \"category\": string, one of the predefined categories below\n\n")

	b.WriteString("Use ONLY the following categories:\n\n")
	b.WriteString("Expenses:\n")
	for _, c := range domain.ExpenseCategories {
		b.WriteString("  - " + c + "\n")
	}
	b.WriteString("Income:\n")
	for _, c := range domain.IncomeCategories {
		b.WriteString("  - " + c + "\n")
	}
	b.WriteString("\nCATEGORY ASSIGNMENT RULES:\n")
	b.WriteString("1. Category must be EXACTLY one of the labels shown above (case-sensitive).\n")
	b.WriteString("2. Income-like text (salary, invoice paid, dividend) maps to an income category.\n")
	b.WriteString("3. If you are unsure, use \"" + domain.CategoryOther + "\".\n")
	b.WriteString("4. Be consistent across similar merchants (e.g. Starbucks -> Food & Dining, Uber -> Transport).\n\n")

	b.WriteString("Return ONLY valid raw JSON.\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	b.WriteString("Output must begin with \"{\" and end with \"}\".\n\n")

	b.WriteString("Text: " + text + "\n")
	return b.String()
}

// buildInsightsPrompt renders the aggregated spending summary for the
// advisor persona.
func buildInsightsPrompt(req *InsightRequest) string {
	var b strings.Builder

	b.WriteString("You are a personal finance advisor providing insights and advice based on spending data.\n\n")
	b.WriteString("Analyze the following income, expenses, and budget limits to identify spending patterns, ")
	b.WriteString("trends, and potential areas for savings.\n\n")

	fmt.Fprintf(&b, "Income: %.2f\n\n", req.Income)

	b.WriteString("Expenses:\n")
	for _, e := range req.Expenses {
		fmt.Fprintf(&b, "- Category: %s, Amount: %.2f\n", e.Category, e.Amount)
	}
	b.WriteString("\nBudget Limits:\n")
	for _, l := range req.BudgetLimits {
		fmt.Fprintf(&b, "- Category: %s, Limit: %.2f\n", l.Category, l.Limit)
	}

	b.WriteString("\nProvide a detailed spending analysis and specific, actionable ways to save money. ")
	b.WriteString("Explain where the user is overspending, where they are doing well, and any notable trends.\n\n")
	b.WriteString("Output STRICT JSON only: a single object with fields\n")
	b.WriteString("- \"spendingAnalysis\": string\n")
	b.WriteString("- \"savingsSuggestions\": string\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	return b.String()
}

// buildSavingsPlansPrompt renders the savings-planner request: the spending
// snapshot plus the user's free-text goals.
func buildSavingsPlansPrompt(req *SavingsPlanRequest) string {
	var b strings.Builder

	b.WriteString("You are a financial advisor who specializes in creating personalized savings plans.\n\n")
	b.WriteString("Based on the user's income, expenses, and budgeting goals, generate a list of ")
	b.WriteString("savings plans that the user can implement to improve their financial health.\n\n")

	fmt.Fprintf(&b, "Income: %.2f\n\n", req.Income)
	b.WriteString("Expenses:\n")
	for _, e := range req.Expenses {
		fmt.Fprintf(&b, "- %s: %.2f\n", e.Category, e.Amount)
	}
	b.WriteString("\nBudgeting Goals: " + req.BudgetGoals + "\n\n")

	b.WriteString("Output STRICT JSON only: a single object with field\n")
	b.WriteString("- \"savingsPlans\": array of strings, one entry per plan\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	return b.String()
}

// buildRiskPrompt renders the fraud-analysis request for one payment.
func buildRiskPrompt(amount float64, currency string) string {
	var b strings.Builder

	b.WriteString("You are a fraud detection expert for a financial application.\n")
	b.WriteString("Analyze the following payment and provide a risk score from 0-100, ")
	b.WriteString("where a higher score indicates a higher risk of fraud. ")
	b.WriteString("A score above 80 should be considered high risk. ")
	b.WriteString("Large, unusual amounts should have higher risk scores.\n\n")

	fmt.Fprintf(&b, "Payment:\n- Amount: %.2f\n- Currency: %s\n\n", amount, currency)

	b.WriteString("Output STRICT JSON only: a single object with fields\n")
	b.WriteString("- \"risk_score\": number (0-100)\n")
	b.WriteString("- \"reasoning\": string, a brief explanation\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")
	return b.String()
}

// chatSystemPrompt is the assistant persona for free-form chat.
const chatSystemPrompt = "You are a friendly AI assistant named Wally for the WealthWise " +
	"personal finance app. Keep your responses concise and helpful."

// transcribePrompt instructs the model to return a verbatim transcript.
const transcribePrompt = "Transcribe the attached audio recording verbatim. " +
	"Return ONLY the transcript text, with no commentary and no formatting."
