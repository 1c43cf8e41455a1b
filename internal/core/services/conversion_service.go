package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthonyshull/franknfurter/internal/apperrors"
	"github.com/anthonyshull/franknfurter/internal/core/ports"
	portssvc "github.com/anthonyshull/franknfurter/internal/core/ports/services"
	"github.com/anthonyshull/franknfurter/internal/dto"
	"github.com/anthonyshull/franknfurter/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConversionService applies looked-up exchange rates to amounts and records
// the resulting conversions. Rates are fetched through the RateCache with the
// directional lookup as the compute function, so concurrent cold-cache
// requests for one pair collapse into a single store read.
type ConversionService struct {
	conversionRepo  ports.ConversionRepository
	currencyService portssvc.CurrencyReaderSvc
	rateLookup      portssvc.RateLookupSvc
	rateCache       ports.RateCache
}

// NewConversionService creates a new ConversionService.
func NewConversionService(
	conversionRepo ports.ConversionRepository,
	currencyService portssvc.CurrencyReaderSvc,
	rateLookup portssvc.RateLookupSvc,
	rateCache ports.RateCache,
) *ConversionService {
	return &ConversionService{
		conversionRepo:  conversionRepo,
		currencyService: currencyService,
		rateLookup:      rateLookup,
		rateCache:       rateCache,
	}
}

// Convert converts req.SourceAmount from the source to the target currency at
// the rate stored for the given date, rounding the result to 2 decimal
// places. The Conversion is returned only after it has been persisted.
func (s *ConversionService) Convert(ctx context.Context, req dto.CreateConversionRequest, date time.Time) (*models.Conversion, error) {
	sourceCode := strings.ToUpper(req.SourceCurrencyCode)
	targetCode := strings.ToUpper(req.TargetCurrencyCode)

	if len(sourceCode) != 3 || len(targetCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	if sourceCode == targetCode {
		return nil, fmt.Errorf("%w: source and target currencies cannot be the same", apperrors.ErrValidation)
	}
	if req.SourceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: source amount must be positive, got %s", apperrors.ErrValidation, req.SourceAmount)
	}

	// Unknown currencies map to 404 at the boundary, distinct from a missing
	// rate for a tracked pair.
	if _, err := s.currencyService.GetCurrencyByCode(ctx, sourceCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: source currency %q is not tracked", apperrors.ErrNotFound, sourceCode)
		}
		return nil, fmt.Errorf("failed to validate source currency %q: %w", sourceCode, err)
	}
	if _, err := s.currencyService.GetCurrencyByCode(ctx, targetCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: target currency %q is not tracked", apperrors.ErrNotFound, targetCode)
		}
		return nil, fmt.Errorf("failed to validate target currency %q: %w", targetCode, err)
	}

	date = models.DateOnly(date)
	rate, err := s.rateCache.GetRate(ctx, sourceCode, targetCode, date, func(ctx context.Context) (decimal.Decimal, error) {
		return s.rateLookup.RateFor(ctx, sourceCode, targetCode, date)
	})
	if err != nil {
		// ErrRateNotFound propagates; no conversion record is created.
		return nil, err
	}

	now := time.Now().UTC()
	conversion := models.Conversion{
		ConversionID:       uuid.NewString(),
		SourceCurrencyCode: sourceCode,
		TargetCurrencyCode: targetCode,
		SourceAmount:       req.SourceAmount.Round(2),
		TargetAmount:       req.SourceAmount.Mul(rate).Round(2),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.conversionRepo.SaveConversion(ctx, conversion); err != nil {
		return nil, fmt.Errorf("failed to persist conversion: %w", err)
	}
	return &conversion, nil
}

// ListRecentConversions retrieves the limit most recently created
// conversions, newest first.
func (s *ConversionService) ListRecentConversions(ctx context.Context, limit int) ([]models.Conversion, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", apperrors.ErrValidation)
	}
	conversions, err := s.conversionRepo.ListRecentConversions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions: %w", err)
	}
	if conversions == nil {
		return []models.Conversion{}, nil
	}
	return conversions, nil
}
