package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/mytechsolutions09/artistic-pro-admin/internal/core/ports/services"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/dto"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/middleware"
)

// ratesHandler serves the exchange-rate and conversion surface.
type ratesHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func newRatesHandler(cs portssvc.CurrencySvcFacade) *ratesHandler {
	return &ratesHandler{currencyService: cs}
}

// registerRatesRoutes registers rate and conversion routes. refreshLimiter
// guards the manual refresh endpoint against hammering the upstream API.
func registerRatesRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade, refreshLimiter gin.HandlerFunc) {
	h := newRatesHandler(currencyService)

	ratesGroup := rg.Group("/rates")
	{
		ratesGroup.GET("", h.getRates)
		ratesGroup.PUT("/:code", h.setRate)
		ratesGroup.DELETE("", h.resetRates)
		if refreshLimiter != nil {
			ratesGroup.POST("/refresh", refreshLimiter, h.refreshRates)
		} else {
			ratesGroup.POST("/refresh", h.refreshRates)
		}
	}

	rg.GET("/convert", h.convert)
}

// getRates godoc
// @Summary Get effective exchange rates
// @Description Cached rates while fresh, catalog defaults once expired
// @Tags rates
// @Produce json
// @Success 200 {object} dto.RatesResponse
// @Router /rates [get]
func (h *ratesHandler) getRates(c *gin.Context) {
	settings, err := h.currencyService.Settings(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to load settings for rates",
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rates"})
		return
	}

	c.JSON(http.StatusOK, dto.RatesResponse{
		Base:  settings.BaseCurrency,
		Rates: h.currencyService.Rates(c.Request.Context()),
	})
}

// setRate godoc
// @Summary Manually override one exchange rate
// @Tags rates
// @Accept json
// @Produce json
// @Param code path string true "3-letter currency code"
// @Param request body dto.SetRateRequest true "New rate, must be positive"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} dto.MutationResponse "Non-positive rate or unsupported code"
// @Router /rates/{code} [put]
func (h *ratesHandler) setRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := pathCode(c)

	var req dto.SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for set rate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	res, err := h.currencyService.SetRate(c.Request.Context(), code, *req.Rate)
	if err != nil {
		logger.Error("Failed to set rate", slog.String("code", code), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set rate"})
		return
	}
	respondMutation(c, dto.ToMutationResponse(res))
}

// resetRates godoc
// @Summary Reset cached rates to catalog defaults
// @Tags rates
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Storage failure"
// @Router /rates [delete]
func (h *ratesHandler) resetRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.currencyService.ResetRates(c.Request.Context()); err != nil {
		logger.Error("Failed to reset rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset rates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "exchange rates reset to defaults"})
}

// refreshRates godoc
// @Summary Refresh exchange rates now
// @Description Runs the provider fallback chain; always lands on static defaults
// @Tags rates
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 429 {object} map[string]string "Rate limited"
// @Router /rates/refresh [post]
func (h *ratesHandler) refreshRates(c *gin.Context) {
	ok := h.currencyService.RefreshRates(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"refreshed": ok})
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Lenient: unknown codes convert at rate 1; NaN amounts coerce to 0
// @Tags rates
// @Produce json
// @Param amount query number true "Amount to convert"
// @Param from query string true "Source currency code"
// @Param to query string true "Target currency code"
// @Param decimals query int false "Display precision (default 2)"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Malformed amount"
// @Router /convert [get]
func (h *ratesHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil {
		logger.Warn("Malformed convert amount", slog.String("amount", c.Query("amount")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a number"})
		return
	}
	from := c.Query("from")
	to := c.Query("to")

	decimals := 2
	if d := c.Query("decimals"); d != "" {
		if parsed, err := strconv.Atoi(d); err == nil && parsed >= 0 {
			decimals = parsed
		}
	}

	converted := h.currencyService.Convert(c.Request.Context(), amount, from, to)
	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount:    amount,
		From:      from,
		To:        to,
		Converted: converted,
		Formatted: h.currencyService.Format(c.Request.Context(), converted, to, decimals),
	})
}
