package domain

import "testing"

func TestAllCategoriesDeduplicated(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range AllCategories {
		if seen[c] {
			t.Errorf("category %q appears more than once in AllCategories", c)
		}
		seen[c] = true
	}

	// "Other" is in both source lists but must appear exactly once.
	count := 0
	for _, c := range AllCategories {
		if c == CategoryOther {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected %q exactly once, got %d occurrences", CategoryOther, count)
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Food & Dining", "Food & Dining"},
		{"Salary", "Salary"},
		{"Other", "Other"},
		{"Groceries", "Other"},
		{"food & dining", "Other"}, // labels are case-sensitive
		{"", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeCategory(tt.input); got != tt.want {
				t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		category string
		want     TransactionType
	}{
		{"Salary", TypeIncome},
		{"Freelance", TypeIncome},
		{"Investment", TypeIncome},
		{"Food & Dining", TypeExpense},
		{"Rent & Housing", TypeExpense},
		{"Other", TypeExpense},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			if got := TypeOf(tt.category); got != tt.want {
				t.Errorf("TypeOf(%q) = %q, want %q", tt.category, got, tt.want)
			}
		})
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		tx      Transaction
		wantErr bool
	}{
		{
			name: "valid expense",
			tx:   Transaction{Description: "Lunch", Category: "Food & Dining", Amount: 12.5},
		},
		{
			name:    "zero amount",
			tx:      Transaction{Description: "Lunch", Category: "Food & Dining", Amount: 0},
			wantErr: true,
		},
		{
			name:    "negative amount",
			tx:      Transaction{Description: "Refund", Category: "Shopping", Amount: -5},
			wantErr: true,
		},
		{
			name:    "unknown category",
			tx:      Transaction{Description: "Lunch", Category: "Snacks", Amount: 10},
			wantErr: true,
		},
		{
			name:    "missing description",
			tx:      Transaction{Category: "Other", Amount: 10},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
