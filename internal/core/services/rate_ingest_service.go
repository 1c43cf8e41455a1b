package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthonyshull/franknfurter/internal/apperrors"
	"github.com/anthonyshull/franknfurter/internal/core/ports"
	"github.com/anthonyshull/franknfurter/internal/models"
)

// RateIngestService pulls the full rate table from the external provider and
// upserts it into the store. Each tracked currency is used once as the fetch
// base; counter currencies sorting before the base are skipped because that
// pair is covered when the counter currency is the base. The whole run is
// idempotent, so a partially failed run is recovered by the next one.
type RateIngestService struct {
	provider     ports.RateProvider
	currencyRepo ports.CurrencyRepository
	rateRepo     ports.ExchangeRateRepository
	logger       *slog.Logger
}

// NewRateIngestService creates a new RateIngestService.
func NewRateIngestService(
	provider ports.RateProvider,
	currencyRepo ports.CurrencyRepository,
	rateRepo ports.ExchangeRateRepository,
	logger *slog.Logger,
) *RateIngestService {
	return &RateIngestService{
		provider:     provider,
		currencyRepo: currencyRepo,
		rateRepo:     rateRepo,
		logger:       logger,
	}
}

// IngestRates fetches and stores rates for every tracked base currency on the
// given date. Per-base fetch failures are logged and skipped; the run only
// errors when no base could be ingested at all.
func (s *RateIngestService) IngestRates(ctx context.Context, date time.Time) error {
	date = models.DateOnly(date)

	codes, err := s.currencyRepo.ListCurrencyCodes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list currencies for ingest: %w", err)
	}
	if len(codes) == 0 {
		s.logger.Warn("No currencies tracked, nothing to ingest")
		return nil
	}

	tracked := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		tracked[code] = struct{}{}
	}

	var failedBases int
	for _, base := range codes {
		if err := ctx.Err(); err != nil {
			return err
		}

		rates, err := s.provider.FetchRates(ctx, base, date)
		if err != nil {
			failedBases++
			s.logger.Warn("Skipping base currency after fetch failure",
				slog.String("base", base),
				slog.String("date", date.Format(time.DateOnly)),
				slog.String("error", err.Error()))
			continue
		}

		for counter, rate := range rates {
			// The inverse direction is covered when counter is the base.
			if counter <= base {
				continue
			}
			if _, ok := tracked[counter]; !ok {
				continue
			}

			exchangeRate, err := models.NewExchangeRate(base, counter, date, rate)
			if err != nil {
				s.logger.Warn("Skipping invalid rate from provider",
					slog.String("base", base),
					slog.String("counter", counter),
					slog.String("rate", rate.String()),
					slog.String("error", err.Error()))
				continue
			}

			s.logger.Info("Storing rate",
				slog.String("left", exchangeRate.LeftCurrencyCode),
				slog.String("right", exchangeRate.RightCurrencyCode),
				slog.String("rate", exchangeRate.Rate.String()))

			if err := s.rateRepo.UpsertRate(ctx, exchangeRate); err != nil {
				s.logger.Error("Failed to upsert rate",
					slog.String("left", exchangeRate.LeftCurrencyCode),
					slog.String("right", exchangeRate.RightCurrencyCode),
					slog.String("error", err.Error()))
			}
		}
	}

	if failedBases == len(codes) {
		return fmt.Errorf("%w: all %d base currency fetches failed", apperrors.ErrUpstream, len(codes))
	}
	return nil
}
