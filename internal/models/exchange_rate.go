package models

import (
	"fmt"
	"time"

	"github.com/anthonyshull/franknfurter/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies for a
// specific date, in normalized form: LeftCurrencyCode < RightCurrencyCode
// alphabetically, and 1 unit of left = Rate units of right.
// (left, right, date) is the natural key.
type ExchangeRate struct {
	LeftCurrencyCode  string          `json:"leftCurrencyCode"`  // FK -> Currency.Code
	RightCurrencyCode string          `json:"rightCurrencyCode"` // FK -> Currency.Code
	Date              time.Time       `json:"date"`              // Calendar date, no time component
	Rate              decimal.Decimal `json:"rate"`              // Positive decimal
}

// NewExchangeRate builds a normalized exchange rate from a pair given in
// either order. The input rate expresses "1 unit of codeA = rate units of
// codeB"; when codeA sorts after codeB the codes are swapped and the rate
// inverted so the stored row always satisfies left < right.
//
// The function is deterministic and side-effect free. Applying it to its own
// output is a fixed point.
func NewExchangeRate(codeA, codeB string, date time.Time, rate decimal.Decimal) (ExchangeRate, error) {
	if len(codeA) != 3 || len(codeB) != 3 {
		return ExchangeRate{}, fmt.Errorf("%w: currency codes must be 3 characters, got %q and %q", apperrors.ErrInvalidPair, codeA, codeB)
	}
	if codeA == codeB {
		return ExchangeRate{}, fmt.Errorf("%w: currency codes must differ, got %q twice", apperrors.ErrInvalidPair, codeA)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return ExchangeRate{}, fmt.Errorf("%w: rate must be positive, got %s", apperrors.ErrInvalidPair, rate)
	}

	normalized := ExchangeRate{
		LeftCurrencyCode:  codeA,
		RightCurrencyCode: codeB,
		Date:              DateOnly(date),
		Rate:              rate,
	}
	if codeA > codeB {
		normalized.LeftCurrencyCode, normalized.RightCurrencyCode = codeB, codeA
		normalized.Rate = decimal.NewFromInt(1).Div(rate)
	}
	return normalized, nil
}

// Validate re-checks the storage invariants for rates that did not come
// through NewExchangeRate. The store rejects rows violating them rather than
// silently normalizing.
func (r ExchangeRate) Validate() error {
	if len(r.LeftCurrencyCode) != 3 || len(r.RightCurrencyCode) != 3 {
		return fmt.Errorf("%w: currency codes must be 3 characters", apperrors.ErrInvalidPair)
	}
	if r.LeftCurrencyCode >= r.RightCurrencyCode {
		return fmt.Errorf("%w: left currency code %q must sort before right currency code %q", apperrors.ErrInvalidPair, r.LeftCurrencyCode, r.RightCurrencyCode)
	}
	if r.Rate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: rate must be positive, got %s", apperrors.ErrInvalidPair, r.Rate)
	}
	return nil
}

// DateOnly strips the time component, keeping a UTC calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
