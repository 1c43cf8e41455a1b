package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ComputeRateFn produces a rate on a cache miss. It may return
// apperrors.ErrRateNotFound, which implementations cache only briefly.
type ComputeRateFn func(ctx context.Context) (decimal.Decimal, error)

// RateCache is a time-bounded cache in front of directional rate lookups.
// Keys are directional: (source, target, date) as requested, not normalized,
// since the cached value depends on the direction. Implementations must
// collapse concurrent misses for one key into a single compute call.
type RateCache interface {
	GetRate(ctx context.Context, source, target string, date time.Time, compute ComputeRateFn) (decimal.Decimal, error)
}
