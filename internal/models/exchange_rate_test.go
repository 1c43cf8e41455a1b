package models_test

import (
	"testing"
	"time"

	"github.com/anthonyshull/franknfurter/internal/apperrors"
	"github.com/anthonyshull/franknfurter/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExchangeRate_AlreadyOrdered(t *testing.T) {
	date := time.Date(2025, 11, 10, 15, 30, 0, 0, time.UTC)
	rate, err := models.NewExchangeRate("EUR", "USD", date, decimal.RequireFromString("1.1"))

	require.NoError(t, err)
	assert.Equal(t, "EUR", rate.LeftCurrencyCode)
	assert.Equal(t, "USD", rate.RightCurrencyCode)
	assert.True(t, rate.Rate.Equal(decimal.RequireFromString("1.1")))
	assert.Equal(t, time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC), rate.Date, "time component must be stripped")
}

func TestNewExchangeRate_SwapsAndInverts(t *testing.T) {
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	// 1 USD = 0.9 EUR given in reverse order
	rate, err := models.NewExchangeRate("USD", "EUR", date, decimal.RequireFromString("0.9"))

	require.NoError(t, err)
	assert.Equal(t, "EUR", rate.LeftCurrencyCode)
	assert.Equal(t, "USD", rate.RightCurrencyCode)

	// 1 EUR = 1/0.9 USD
	expected := decimal.NewFromInt(1).Div(decimal.RequireFromString("0.9"))
	assert.True(t, rate.Rate.Equal(expected), "got %s, want %s", rate.Rate, expected)
}

func TestNewExchangeRate_IdempotentOnOwnOutput(t *testing.T) {
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	first, err := models.NewExchangeRate("MXN", "CAD", date, decimal.RequireFromString("0.05"))
	require.NoError(t, err)

	second, err := models.NewExchangeRate(first.LeftCurrencyCode, first.RightCurrencyCode, first.Date, first.Rate)
	require.NoError(t, err)

	assert.Equal(t, first.LeftCurrencyCode, second.LeftCurrencyCode)
	assert.Equal(t, first.RightCurrencyCode, second.RightCurrencyCode)
	assert.True(t, first.Rate.Equal(second.Rate))
	assert.Equal(t, first.Date, second.Date)
}

func TestNewExchangeRate_InvalidPairs(t *testing.T) {
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	one := decimal.NewFromInt(1)

	tests := []struct {
		name  string
		codeA string
		codeB string
		rate  decimal.Decimal
	}{
		{"same currency", "USD", "USD", one},
		{"short code", "US", "EUR", one},
		{"long code", "USDT", "EUR", one},
		{"empty code", "", "EUR", one},
		{"zero rate", "EUR", "USD", decimal.Zero},
		{"negative rate", "EUR", "USD", decimal.NewFromInt(-2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := models.NewExchangeRate(tt.codeA, tt.codeB, date, tt.rate)
			assert.ErrorIs(t, err, apperrors.ErrInvalidPair)
		})
	}
}

func TestExchangeRateValidate(t *testing.T) {
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)

	valid := models.ExchangeRate{
		LeftCurrencyCode:  "EUR",
		RightCurrencyCode: "USD",
		Date:              date,
		Rate:              decimal.RequireFromString("1.1"),
	}
	assert.NoError(t, valid.Validate())

	// Wrong order must be rejected, not silently normalized.
	swapped := valid
	swapped.LeftCurrencyCode, swapped.RightCurrencyCode = "USD", "EUR"
	assert.ErrorIs(t, swapped.Validate(), apperrors.ErrInvalidPair)

	samePair := valid
	samePair.RightCurrencyCode = "EUR"
	assert.ErrorIs(t, samePair.Validate(), apperrors.ErrInvalidPair)

	badRate := valid
	badRate.Rate = decimal.Zero
	assert.ErrorIs(t, badRate.Validate(), apperrors.ErrInvalidPair)
}
