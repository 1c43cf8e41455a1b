package dto

import (
	"time"

	"github.com/anthonyshull/franknfurter/internal/models"
	"github.com/shopspring/decimal"
)

// CreateConversionRequest defines the data needed to convert an amount
// between two currencies.
type CreateConversionRequest struct {
	SourceCurrencyCode string          `json:"source_currency_code" binding:"required,currency_code"`
	TargetCurrencyCode string          `json:"target_currency_code" binding:"required,currency_code"`
	SourceAmount       decimal.Decimal `json:"source_amount" binding:"required"`
}

// ConversionResponse defines the data returned for a conversion.
type ConversionResponse struct {
	ID                 string          `json:"id"`
	SourceCurrencyCode string          `json:"source_currency_code"`
	TargetCurrencyCode string          `json:"target_currency_code"`
	SourceAmount       decimal.Decimal `json:"source_amount"`
	TargetAmount       decimal.Decimal `json:"target_amount"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToConversionResponse converts a models.Conversion to a ConversionResponse DTO.
func ToConversionResponse(conv *models.Conversion) ConversionResponse {
	return ConversionResponse{
		ID:                 conv.ConversionID,
		SourceCurrencyCode: conv.SourceCurrencyCode,
		TargetCurrencyCode: conv.TargetCurrencyCode,
		SourceAmount:       conv.SourceAmount,
		TargetAmount:       conv.TargetAmount,
		CreatedAt:          conv.CreatedAt,
		UpdatedAt:          conv.UpdatedAt,
	}
}

// ToListConversionResponse converts a slice of models.Conversion to response DTOs.
func ToListConversionResponse(conversions []models.Conversion) []ConversionResponse {
	res := make([]ConversionResponse, len(conversions))
	for i := range conversions {
		res[i] = ToConversionResponse(&conversions[i])
	}
	return res
}
