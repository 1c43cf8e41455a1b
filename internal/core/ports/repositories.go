package ports

import (
	"context"
	"time"

	"github.com/anthonyshull/franknfurter/internal/models"
	"github.com/shopspring/decimal"
)

// CurrencyRepository defines persistence operations for Currencies.
type CurrencyRepository interface {
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*models.Currency, error)
	ListCurrencyCodes(ctx context.Context) ([]string, error)
}

// ExchangeRateRepository defines persistence operations for normalized
// exchange rates keyed by (left, right, date).
type ExchangeRateRepository interface {
	// UpsertRate inserts or updates the rate for the natural key. Idempotent;
	// concurrent upserts for the same key serialize so the final rate is the
	// last writer's, never a lost update.
	UpsertRate(ctx context.Context, rate models.ExchangeRate) error

	// FindRate returns the rate for the exact (left, right, date) key, or
	// apperrors.ErrRateNotFound when no row exists.
	FindRate(ctx context.Context, left, right string, date time.Time) (decimal.Decimal, error)
}

// ConversionRepository defines persistence operations for Conversions.
type ConversionRepository interface {
	SaveConversion(ctx context.Context, conversion models.Conversion) error
	ListRecentConversions(ctx context.Context, limit int) ([]models.Conversion, error)
}
