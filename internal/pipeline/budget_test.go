package pipeline

import (
	"strings"
	"testing"
)

func TestBudgetAlerts(t *testing.T) {
	tests := []struct {
		name       string
		totalSpent float64
		limit      float64
		wantCount  int
		wantSubstr string
	}{
		{
			name:       "exactly at limit",
			totalSpent: 100,
			limit:      100,
			wantCount:  1,
			wantSubstr: "exceeded your budget for Food & Dining by 0%",
		},
		{
			name:       "over limit",
			totalSpent: 150,
			limit:      100,
			wantCount:  1,
			wantSubstr: "exceeded your budget for Food & Dining by 50%",
		},
		{
			name:       "approaching limit",
			totalSpent: 85,
			limit:      100,
			wantCount:  1,
			wantSubstr: "spent 85% of your Food & Dining budget",
		},
		{
			name:       "at warning threshold",
			totalSpent: 80,
			limit:      100,
			wantCount:  1,
			wantSubstr: "spent 80%",
		},
		{
			name:       "well under limit",
			totalSpent: 50,
			limit:      100,
			wantCount:  0,
		},
		{
			name:       "just under warning threshold",
			totalSpent: 79.99,
			limit:      100,
			wantCount:  0,
		},
		{
			name:       "zero limit produces no alert",
			totalSpent: 50,
			limit:      0,
			wantCount:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := BudgetAlerts("Food & Dining", tt.totalSpent, tt.limit)
			if len(alerts) != tt.wantCount {
				t.Fatalf("got %d alerts %v, want %d", len(alerts), alerts, tt.wantCount)
			}
			if tt.wantCount > 0 && !strings.Contains(alerts[0], tt.wantSubstr) {
				t.Errorf("alert %q does not contain %q", alerts[0], tt.wantSubstr)
			}
		})
	}
}
