package services

import (
	"context"
	"time"

	"github.com/anthonyshull/franknfurter/internal/dto"
	"github.com/anthonyshull/franknfurter/internal/models"
)

// ConversionSvcFacade defines the conversion operations exposed to handlers.
type ConversionSvcFacade interface {
	// Convert applies the looked-up rate for the given date to the source
	// amount, persists the resulting Conversion, and returns it. It does not
	// report success unless persistence succeeded.
	Convert(ctx context.Context, req dto.CreateConversionRequest, date time.Time) (*models.Conversion, error)

	// ListRecentConversions retrieves the most recently created conversions,
	// newest first.
	ListRecentConversions(ctx context.Context, limit int) ([]models.Conversion, error)
}
