package pipeline

import (
	"time"

	"github.com/dvloznov/wealthwise/internal/ai"
	"github.com/dvloznov/wealthwise/internal/domain"
)

// MonthlyExpensesByCategory aggregates the current calendar month's expense
// spend per category. Month membership is month+year equality against now,
// not a rolling 30-day window. Category order follows first appearance in
// history, keeping output deterministic for a given history.
func MonthlyExpensesByCategory(history []domain.Transaction, now time.Time) []ai.CategoryAmount {
	index := make(map[string]int)
	var totals []ai.CategoryAmount

	for _, t := range history {
		if t.Type != domain.TypeExpense {
			continue
		}
		if t.Date.Month() != now.Month() || t.Date.Year() != now.Year() {
			continue
		}
		if i, ok := index[t.Category]; ok {
			totals[i].Amount += t.Amount
		} else {
			index[t.Category] = len(totals)
			totals = append(totals, ai.CategoryAmount{Category: t.Category, Amount: t.Amount})
		}
	}
	return totals
}

// TotalIncome sums every income entry in history. Deliberately not
// period-filtered: the income figure fed to the insight model is all-time.
func TotalIncome(history []domain.Transaction) float64 {
	var sum float64
	for _, t := range history {
		if t.Type == domain.TypeIncome {
			sum += t.Amount
		}
	}
	return sum
}

// CategorySpend returns the aggregated amount for one category, or zero when
// the category has no spend this month.
func CategorySpend(totals []ai.CategoryAmount, category string) float64 {
	for _, t := range totals {
		if t.Category == category {
			return t.Amount
		}
	}
	return 0
}
