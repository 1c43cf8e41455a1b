package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthonyshull/franknfurter/internal/apperrors"
	"github.com/anthonyshull/franknfurter/internal/core/ports"
	"github.com/anthonyshull/franknfurter/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxConversionRepository implements ports.ConversionRepository using pgxpool.
type PgxConversionRepository struct {
	BaseRepository
}

// NewConversionRepository creates a new PgxConversionRepository.
func NewConversionRepository(pool *pgxpool.Pool) *PgxConversionRepository {
	return &PgxConversionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ ports.ConversionRepository = (*PgxConversionRepository)(nil)

// SaveConversion inserts a conversion record. Check and foreign key
// violations surface as apperrors.ErrPersistence so the handler can render a
// field-level failure instead of a server error.
func (r *PgxConversionRepository) SaveConversion(ctx context.Context, conversion models.Conversion) error {
	query := `
		INSERT INTO conversions (
			conversion_id, source_currency_code, target_currency_code,
			source_amount, target_amount, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		conversion.ConversionID,
		conversion.SourceCurrencyCode,
		conversion.TargetCurrencyCode,
		conversion.SourceAmount,
		conversion.TargetAmount,
		conversion.CreatedAt,
		conversion.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23514": // check_violation
				return fmt.Errorf("%w: conversion violates a constraint: %s", apperrors.ErrPersistence, pgErr.ConstraintName)
			case "23503": // foreign_key_violation
				return fmt.Errorf("%w: conversion references an unknown currency: %s", apperrors.ErrPersistence, pgErr.ConstraintName)
			}
		}
		return fmt.Errorf("failed to save conversion %s: %w", conversion.ConversionID, err)
	}
	return nil
}

// ListRecentConversions retrieves the limit most recent conversions ordered
// by creation time descending.
func (r *PgxConversionRepository) ListRecentConversions(ctx context.Context, limit int) ([]models.Conversion, error) {
	query := `
		SELECT conversion_id, source_currency_code, target_currency_code,
		       source_amount, target_amount, created_at, updated_at
		FROM conversions
		ORDER BY created_at DESC
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions: %w", err)
	}
	defer rows.Close()

	conversions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Conversion, error) {
		var conversion models.Conversion
		err := row.Scan(
			&conversion.ConversionID,
			&conversion.SourceCurrencyCode,
			&conversion.TargetCurrencyCode,
			&conversion.SourceAmount,
			&conversion.TargetAmount,
			&conversion.CreatedAt,
			&conversion.UpdatedAt,
		)
		return conversion, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan conversions: %w", err)
	}
	return conversions, nil
}
