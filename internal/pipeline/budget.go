package pipeline

import (
	"fmt"
	"math"
)

// Budget alert thresholds. Fixed by product design, not configurable.
const (
	exceededThreshold    = 1.0
	approachingThreshold = 0.8
)

// BudgetAlerts compares cumulative category spend against the configured
// limit and returns zero or more threshold messages. totalSpent must already
// include the transaction being processed. Pure and local.
func BudgetAlerts(category string, totalSpent, budgetLimit float64) []string {
	if budgetLimit <= 0 {
		return nil
	}

	ratio := totalSpent / budgetLimit

	switch {
	case ratio >= exceededThreshold:
		overPct := int(math.Round((ratio - 1) * 100))
		return []string{fmt.Sprintf(
			"You have exceeded your budget for %s by %d%%.", category, overPct)}
	case ratio >= approachingThreshold:
		spentPct := int(math.Round(ratio * 100))
		return []string{fmt.Sprintf(
			"You have spent %d%% of your %s budget. Consider reducing spending in this area.",
			spentPct, category)}
	default:
		return nil
	}
}
