package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateProvider fetches, for a base currency and date, the full table of
// counter-currency code -> rate from the external rate provider.
type RateProvider interface {
	FetchRates(ctx context.Context, base string, date time.Time) (map[string]decimal.Decimal, error)
}
