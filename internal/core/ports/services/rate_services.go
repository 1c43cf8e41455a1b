package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateLookupSvc resolves a rate in the direction actually requested
// (source -> target), regardless of the normalized storage order.
type RateLookupSvc interface {
	// RateFor returns the rate meaning "1 source = rate * target" for the
	// given date, or apperrors.ErrRateNotFound when none is stored.
	RateFor(ctx context.Context, sourceCode, targetCode string, date time.Time) (decimal.Decimal, error)
}

// RateIngestSvc runs one ingest cycle against the external rate provider.
type RateIngestSvc interface {
	// IngestRates fetches and upserts rates for every tracked base currency
	// on the given date. Per-currency failures are tolerated; the run is
	// idempotent and safe to repeat.
	IngestRates(ctx context.Context, date time.Time) error
}
