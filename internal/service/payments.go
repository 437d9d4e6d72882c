package service

import (
	"context"
	"fmt"

	"github.com/dvloznov/wealthwise/internal/domain"
	"github.com/dvloznov/wealthwise/internal/store"
)

// flaggedRiskThreshold is the score above which a payment is held for
// review instead of being recorded as ok.
const flaggedRiskThreshold = 80

// RecordPayment risk-scores a payment attempt and logs the outcome. A
// failed risk analysis is recorded as an errored payment with score -1; a
// failed log write is reported but never fails the payment itself.
func (s *Service) RecordPayment(ctx context.Context, userID string, amount float64, currency string) (*domain.Payment, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)
	}
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrInvalidInput)
	}

	payment := &domain.Payment{
		Amount:   amount,
		Currency: currency,
		Date:     s.now(),
	}

	risk, err := s.risk.AnalyzeRisk(ctx, amount, currency)
	switch {
	case err != nil:
		payment.Status = domain.PaymentError
		payment.RiskScore = -1
		payment.Error = err.Error()
		s.log.Error().Err(err).Str("user_id", userID).Msg("Payment risk analysis failed")
	case risk.RiskScore > flaggedRiskThreshold:
		payment.Status = domain.PaymentFlagged
		payment.RiskScore = risk.RiskScore
		s.log.Warn().
			Str("user_id", userID).
			Int("risk_score", risk.RiskScore).
			Str("reasoning", risk.Reasoning).
			Msg("Payment flagged for review")
	default:
		payment.Status = domain.PaymentOK
		payment.RiskScore = risk.RiskScore
	}

	id, logErr := store.AppendPayment(ctx, s.ledger, userID, payment)
	if logErr != nil {
		s.log.Error().Err(logErr).Str("user_id", userID).Msg("Payment log write failed")
	} else {
		payment.ID = id
	}

	return payment, nil
}
