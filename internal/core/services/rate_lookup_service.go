package services

import (
	"context"
	"time"

	"github.com/anthonyshull/franknfurter/internal/core/ports"
	"github.com/shopspring/decimal"
)

// RateLookupService resolves directional rates against the normalized store.
// Rates are persisted with the alphabetically-first currency as left, so a
// lookup sorts the requested pair and inverts the stored rate when the
// request runs right-to-left.
type RateLookupService struct {
	rateRepo ports.ExchangeRateRepository
}

// NewRateLookupService creates a new RateLookupService.
func NewRateLookupService(rateRepo ports.ExchangeRateRepository) *RateLookupService {
	return &RateLookupService{rateRepo: rateRepo}
}

// RateFor returns the rate meaning "1 source = rate * target" for the given
// date. apperrors.ErrRateNotFound propagates untouched; no default rate is
// ever fabricated. Same-currency pairs are rejected upstream since the store
// never holds them.
func (s *RateLookupService) RateFor(ctx context.Context, sourceCode, targetCode string, date time.Time) (decimal.Decimal, error) {
	left, right := sourceCode, targetCode
	if left > right {
		left, right = right, left
	}

	rate, err := s.rateRepo.FindRate(ctx, left, right, date)
	if err != nil {
		return decimal.Decimal{}, err
	}

	// Stored rate means: 1 left = rate * right.
	if sourceCode == left {
		return rate, nil
	}
	return decimal.NewFromInt(1).Div(rate), nil
}
