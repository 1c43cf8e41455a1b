package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anthonyshull/franknfurter/internal/apperrors"
	"github.com/anthonyshull/franknfurter/internal/core/ports"
	"github.com/anthonyshull/franknfurter/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxExchangeRateRepository implements ports.ExchangeRateRepository using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// NewExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewExchangeRateRepository(pool *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ ports.ExchangeRateRepository = (*PgxExchangeRateRepository)(nil)

// UpsertRate inserts or updates the rate for (left, right, date) as a single
// atomic statement, so concurrent ingest runs for the same key serialize on
// the row and the final rate is the last writer's. The invariants are
// re-checked here (and again by the table constraints) so a caller bypassing
// the normalizer cannot store a malformed row.
func (r *PgxExchangeRateRepository) UpsertRate(ctx context.Context, rate models.ExchangeRate) error {
	if err := rate.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO exchange_rates (left_currency_code, right_currency_code, date, rate)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (left_currency_code, right_currency_code, date)
		DO UPDATE SET rate = EXCLUDED.rate;
	`
	_, err := r.Pool.Exec(ctx, query,
		rate.LeftCurrencyCode,
		rate.RightCurrencyCode,
		rate.Date,
		rate.Rate,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rate %s/%s on %s: %w",
			rate.LeftCurrencyCode, rate.RightCurrencyCode, rate.Date.Format(time.DateOnly), err)
	}
	return nil
}

// FindRate retrieves the rate for the exact natural key. Missing rows map to
// apperrors.ErrRateNotFound; no fallback to other dates is attempted.
func (r *PgxExchangeRateRepository) FindRate(ctx context.Context, left, right string, date time.Time) (decimal.Decimal, error) {
	query := `
		SELECT rate
		FROM exchange_rates
		WHERE left_currency_code = $1 AND right_currency_code = $2 AND date = $3;
	`
	var rate decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, left, right, models.DateOnly(date)).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Decimal{}, apperrors.ErrRateNotFound
		}
		return decimal.Decimal{}, fmt.Errorf("failed to find rate %s/%s on %s: %w",
			left, right, date.Format(time.DateOnly), err)
	}
	return rate, nil
}
