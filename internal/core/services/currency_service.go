package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthonyshull/franknfurter/internal/apperrors"
	"github.com/anthonyshull/franknfurter/internal/core/ports"
	"github.com/anthonyshull/franknfurter/internal/models"
)

// CurrencyService provides read access to the tracked currencies. Currencies
// are seeded by migration and never created over the API.
type CurrencyService struct {
	currencyRepo ports.CurrencyRepository
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo ports.CurrencyRepository) *CurrencyService {
	return &CurrencyService{currencyRepo: currencyRepo}
}

// GetCurrencyByCode retrieves a currency by its 3-letter code.
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*models.Currency, error) {
	currencyCode = strings.ToUpper(currencyCode)
	if len(currencyCode) != 3 {
		return nil, fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		// Repository maps missing rows to apperrors.ErrNotFound.
		return nil, fmt.Errorf("failed to get currency %s: %w", currencyCode, err)
	}
	return currency, nil
}

// ListCurrencyCodes retrieves all tracked currency codes, sorted ascending.
func (s *CurrencyService) ListCurrencyCodes(ctx context.Context) ([]string, error) {
	codes, err := s.currencyRepo.ListCurrencyCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	// Return empty slice if no currencies found, not nil
	if codes == nil {
		return []string{}, nil
	}
	return codes, nil
}
