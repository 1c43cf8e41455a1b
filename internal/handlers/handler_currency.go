package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/anthonyshull/franknfurter/internal/core/ports/services"
	"github.com/anthonyshull/franknfurter/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencyReaderSvc
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencyReaderSvc) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencyReaderSvc) {
	h := newCurrencyHandler(currencyService)

	rg.GET("/currencies", h.listCurrencies)
}

// listCurrencies godoc
// @Summary List all currency codes
// @Description Retrieves the tracked currency codes, sorted ascending
// @Tags currencies
// @Produce  json
// @Success 200 {array} string
// @Failure 500 {object} map[string]string "Failed to list currencies"
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	codes, err := h.currencyService.ListCurrencyCodes(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list currencies from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list currencies"})
		return
	}

	logger.Info("Currencies listed successfully", slog.Int("count", len(codes)))
	c.JSON(http.StatusOK, codes)
}
