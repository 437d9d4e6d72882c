package pipeline

import (
	"math"
	"strings"

	"github.com/dvloznov/wealthwise/internal/domain"
)

// recurringKeywords marks a transaction recurring on sight, regardless of
// history.
var recurringKeywords = []string{
	"netflix", "rent", "gym", "spotify", "subscription", "membership",
}

// amountTolerance is the absolute amount variation (in currency units) still
// considered "the same" recurring charge.
const amountTolerance = 1.0

// RecurrenceResult is the recurrence verdict for one transaction.
type RecurrenceResult struct {
	IsRecurring bool
	Reason      string
}

// DetectRecurrence classifies a newly categorized transaction as recurring or
// not. Pure and deterministic: rules are evaluated in order and the first
// match wins.
//
//  1. Keyword rule: the lower-cased description contains a recurring keyword.
//  2. Similarity rule: more than one history entry has the exact same
//     lower-cased description and an amount within amountTolerance.
func DetectRecurrence(description string, amount float64, history []domain.Transaction) RecurrenceResult {
	descLower := strings.ToLower(description)

	for _, keyword := range recurringKeywords {
		if strings.Contains(descLower, keyword) {
			return RecurrenceResult{
				IsRecurring: true,
				Reason:      "Transaction description contains a recurring keyword.",
			}
		}
	}

	similar := 0
	for _, t := range history {
		if strings.ToLower(t.Description) == descLower && math.Abs(t.Amount-amount) < amountTolerance {
			similar++
		}
	}
	if similar > 1 {
		return RecurrenceResult{
			IsRecurring: true,
			Reason:      "Multiple similar transactions found in the past.",
		}
	}

	return RecurrenceResult{}
}
