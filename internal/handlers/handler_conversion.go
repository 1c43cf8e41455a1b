package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/anthonyshull/franknfurter/internal/apperrors"
	portssvc "github.com/anthonyshull/franknfurter/internal/core/ports/services"
	"github.com/anthonyshull/franknfurter/internal/dto"
	"github.com/anthonyshull/franknfurter/internal/middleware"
	"github.com/gin-gonic/gin"
)

// recentConversionsLimit caps the /conversions listing.
const recentConversionsLimit = 10

// conversionHandler handles HTTP requests related to conversions.
type conversionHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

// newConversionHandler creates a new conversionHandler.
func newConversionHandler(cs portssvc.ConversionSvcFacade) *conversionHandler {
	return &conversionHandler{
		conversionService: cs,
	}
}

// registerConversionRoutes registers routes related to conversions.
func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvcFacade) {
	h := newConversionHandler(conversionService)

	rg.POST("/convert", h.createConversion)
	rg.GET("/conversions", h.listConversions)
}

// createConversion godoc
// @Summary Convert an amount between two currencies
// @Description Converts the source amount using today's stored exchange rate and records the conversion
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   conversion body dto.CreateConversionRequest true "Conversion details"
// @Success 201 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Unknown currency"
// @Failure 422 {object} map[string]string "No rate available for the pair and date, or the conversion violates a storage constraint"
// @Failure 500 {object} map[string]string "Failed to convert"
// @Router /convert [post]
func (h *conversionHandler) createConversion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createConversion", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(
		slog.String("source_currency_code", req.SourceCurrencyCode),
		slog.String("target_currency_code", req.TargetCurrencyCode),
	)
	logger.Info("Received conversion request", slog.String("source_amount", req.SourceAmount.String()))

	conversion, err := h.conversionService.Convert(c.Request.Context(), req, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error converting", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Unknown currency in conversion request", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRateNotFound):
			logger.Warn("No exchange rate available for conversion")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No exchange rate found for the requested currency pair and date"})
		case errors.Is(err, apperrors.ErrPersistence):
			logger.Warn("Conversion violated a storage constraint", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to convert in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert"})
		}
		return
	}

	logger.Info("Conversion created successfully",
		slog.String("conversion_id", conversion.ConversionID),
		slog.String("target_amount", conversion.TargetAmount.String()),
	)
	c.JSON(http.StatusCreated, dto.ToConversionResponse(conversion))
}

// listConversions godoc
// @Summary List recent conversions
// @Description Retrieves the 10 most recently created conversions, newest first
// @Tags conversions
// @Produce  json
// @Success 200 {array} dto.ConversionResponse
// @Failure 500 {object} map[string]string "Failed to list conversions"
// @Router /conversions [get]
func (h *conversionHandler) listConversions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	conversions, err := h.conversionService.ListRecentConversions(c.Request.Context(), recentConversionsLimit)
	if err != nil {
		logger.Error("Failed to list conversions from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list conversions"})
		return
	}

	logger.Info("Conversions listed successfully", slog.Int("count", len(conversions)))
	c.JSON(http.StatusOK, dto.ToListConversionResponse(conversions))
}
