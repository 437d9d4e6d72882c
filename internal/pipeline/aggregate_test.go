package pipeline

import (
	"testing"
	"time"

	"github.com/dvloznov/wealthwise/internal/domain"
)

func TestMonthlyExpensesByCategory(t *testing.T) {
	now := time.Date(2024, 7, 20, 12, 0, 0, 0, time.UTC)

	history := []domain.Transaction{
		{Date: time.Date(2024, 7, 16, 0, 0, 0, 0, time.UTC), Description: "Groceries", Category: "Food & Dining", Amount: 10, Type: domain.TypeExpense},
		{Date: time.Date(2024, 7, 18, 0, 0, 0, 0, time.UTC), Description: "Dinner", Category: "Food & Dining", Amount: 15, Type: domain.TypeExpense},
		{Date: time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC), Description: "Feast", Category: "Food & Dining", Amount: 100, Type: domain.TypeExpense},
		{Date: time.Date(2024, 7, 17, 0, 0, 0, 0, time.UTC), Description: "Gasoline", Category: "Transport", Amount: 60, Type: domain.TypeExpense},
		{Date: time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), Description: "Salary", Category: "Salary", Amount: 5000, Type: domain.TypeIncome},
	}

	totals := MonthlyExpensesByCategory(history, now)

	if got := CategorySpend(totals, "Food & Dining"); got != 25 {
		t.Errorf("Food & Dining spend = %v, want 25 (last month's 100 excluded)", got)
	}
	if got := CategorySpend(totals, "Transport"); got != 60 {
		t.Errorf("Transport spend = %v, want 60", got)
	}
	if got := CategorySpend(totals, "Salary"); got != 0 {
		t.Errorf("income must not appear in expense totals, got %v", got)
	}
}

func TestMonthlyExpensesExcludesSameMonthLastYear(t *testing.T) {
	now := time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC)
	history := []domain.Transaction{
		{Date: time.Date(2023, 7, 16, 0, 0, 0, 0, time.UTC), Description: "Old", Category: "Food & Dining", Amount: 40, Type: domain.TypeExpense},
	}

	totals := MonthlyExpensesByCategory(history, now)
	if got := CategorySpend(totals, "Food & Dining"); got != 0 {
		t.Errorf("July of a previous year counted: got %v, want 0", got)
	}
}

func TestTotalIncomeIsAllTime(t *testing.T) {
	history := []domain.Transaction{
		{Date: time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), Category: "Salary", Amount: 5000, Type: domain.TypeIncome},
		{Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Category: "Freelance", Amount: 750, Type: domain.TypeIncome},
		{Date: time.Date(2024, 7, 16, 0, 0, 0, 0, time.UTC), Category: "Food & Dining", Amount: 150, Type: domain.TypeExpense},
	}

	if got := TotalIncome(history); got != 5750 {
		t.Errorf("TotalIncome = %v, want 5750 (income is not period-filtered)", got)
	}
}

func TestCategorySpendMissingCategory(t *testing.T) {
	if got := CategorySpend(nil, "Transport"); got != 0 {
		t.Errorf("CategorySpend on empty totals = %v, want 0", got)
	}
}
