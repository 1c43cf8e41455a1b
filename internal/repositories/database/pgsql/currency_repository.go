package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthonyshull/franknfurter/internal/apperrors"
	"github.com/anthonyshull/franknfurter/internal/core/ports"
	"github.com/anthonyshull/franknfurter/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCurrencyRepository implements ports.CurrencyRepository using pgxpool.
type PgxCurrencyRepository struct {
	BaseRepository
}

// NewCurrencyRepository creates a new repository for currency data.
func NewCurrencyRepository(pool *pgxpool.Pool) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ ports.CurrencyRepository = (*PgxCurrencyRepository)(nil)

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*models.Currency, error) {
	query := `
		SELECT code
		FROM currencies
		WHERE code = $1;
	`
	var currency models.Currency
	err := r.Pool.QueryRow(ctx, query, currencyCode).Scan(&currency.Code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by code %s: %w", currencyCode, err)
	}
	return &currency, nil
}

// ListCurrencyCodes retrieves all currency codes, sorted ascending.
func (r *PgxCurrencyRepository) ListCurrencyCodes(ctx context.Context) ([]string, error) {
	query := `
		SELECT code
		FROM currencies
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan currency codes: %w", err)
	}
	return codes, nil
}
