package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conversion records one conversion transaction. Unlike ExchangeRate it is
// directional (source -> target), so the codes need not be ordered. Created
// exactly once per successful conversion request and immutable thereafter.
type Conversion struct {
	ConversionID       string          `json:"conversionID"` // Primary Key (UUID)
	SourceCurrencyCode string          `json:"sourceCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	SourceAmount       decimal.Decimal `json:"sourceAmount"`
	TargetAmount       decimal.Decimal `json:"targetAmount"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}
