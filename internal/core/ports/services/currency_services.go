package services

import (
	"context"

	"github.com/anthonyshull/franknfurter/internal/models"
)

// CurrencyReaderSvc defines read operations for currency data.
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*models.Currency, error)

	// ListCurrencyCodes retrieves all tracked currency codes, sorted ascending.
	ListCurrencyCodes(ctx context.Context) ([]string, error)
}
