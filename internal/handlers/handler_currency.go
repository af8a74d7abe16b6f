package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mytechsolutions09/artistic-pro-admin/internal/core/domain"
	portssvc "github.com/mytechsolutions09/artistic-pro-admin/internal/core/ports/services"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/dto"
	"github.com/mytechsolutions09/artistic-pro-admin/internal/middleware"
)

// currencyHandler handles HTTP requests for the currency engine's
// activation and configuration surface.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: cs}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/stream", h.streamSnapshots)
		currencies.GET("/:code", h.getCurrency)
		currencies.POST("/:code/activate", h.activateCurrency)
		currencies.POST("/:code/deactivate", h.deactivateCurrency)
		currencies.POST("/:code/toggle", h.toggleCurrency)
		currencies.POST("/activate-bulk", h.activateBulk)
		currencies.PUT("/default", h.setDefaultCurrency)
		currencies.PUT("/base", h.setBaseCurrency)
		currencies.PUT("/auto-update", h.setAutoUpdate)
		currencies.PUT("/preferred", h.setPreferredCurrency)
	}

	rg.GET("/settings", h.getSettings)
	rg.GET("/snapshot", h.getSnapshot)
}

// respondMutation maps a mutation outcome to a response: committed
// mutations return 200, business-rule rejections 409 with the structured
// reason the UI banners render.
func respondMutation(c *gin.Context, res dto.MutationResponse) {
	if res.Success {
		c.JSON(http.StatusOK, res)
		return
	}
	c.JSON(http.StatusConflict, res)
}

func pathCode(c *gin.Context) string {
	return strings.ToUpper(c.Param("code"))
}

// listCurrencies godoc
// @Summary List supported currencies
// @Description Returns the full currency catalog overlaid with activation status
// @Tags currencies
// @Produce json
// @Success 200 {array} dto.CurrencyDetailsResponse
// @Failure 500 {object} map[string]string "Storage failure"
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	details, err := h.currencyService.ListDetails(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list currencies", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list currencies"})
		return
	}

	resp := make([]dto.CurrencyDetailsResponse, 0, len(details))
	for _, d := range details {
		resp = append(resp, dto.ToCurrencyDetailsResponse(d))
	}
	c.JSON(http.StatusOK, resp)
}

// getCurrency godoc
// @Summary Get a currency by code
// @Description Returns catalog metadata plus activation state for one currency
// @Tags currencies
// @Produce json
// @Param code path string true "3-letter currency code"
// @Success 200 {object} dto.CurrencyDetailsResponse
// @Failure 404 {object} map[string]string "Unknown currency"
// @Router /currencies/{code} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := pathCode(c)

	details, err := h.currencyService.Details(c.Request.Context(), code)
	if err != nil {
		logger.Error("Failed to get currency details", slog.String("code", code), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get currency details"})
		return
	}
	if details == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Currency '" + code + "' not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyDetailsResponse(*details))
}

// activateCurrency godoc
// @Summary Activate a currency
// @Tags currencies
// @Produce json
// @Param code path string true "3-letter currency code"
// @Success 200 {object} dto.MutationResponse
// @Failure 409 {object} dto.MutationResponse "Rejected by a business rule"
// @Router /currencies/{code}/activate [post]
func (h *currencyHandler) activateCurrency(c *gin.Context) {
	h.runMutation(c, "activate", func() (dto.MutationResponse, error) {
		res, err := h.currencyService.Activate(c.Request.Context(), pathCode(c))
		return dto.ToMutationResponse(res), err
	})
}

// deactivateCurrency godoc
// @Summary Deactivate a currency
// @Description Fails when the currency is the default, the base, or the only active one
// @Tags currencies
// @Produce json
// @Param code path string true "3-letter currency code"
// @Success 200 {object} dto.MutationResponse
// @Failure 409 {object} dto.MutationResponse "Rejected by a business rule"
// @Router /currencies/{code}/deactivate [post]
func (h *currencyHandler) deactivateCurrency(c *gin.Context) {
	h.runMutation(c, "deactivate", func() (dto.MutationResponse, error) {
		res, err := h.currencyService.Deactivate(c.Request.Context(), pathCode(c))
		return dto.ToMutationResponse(res), err
	})
}

// toggleCurrency godoc
// @Summary Toggle a currency's activation state
// @Tags currencies
// @Produce json
// @Param code path string true "3-letter currency code"
// @Success 200 {object} dto.MutationResponse
// @Failure 409 {object} dto.MutationResponse "Rejected by a business rule"
// @Router /currencies/{code}/toggle [post]
func (h *currencyHandler) toggleCurrency(c *gin.Context) {
	h.runMutation(c, "toggle", func() (dto.MutationResponse, error) {
		res, err := h.currencyService.Toggle(c.Request.Context(), pathCode(c))
		return dto.ToMutationResponse(res), err
	})
}

// activateBulk godoc
// @Summary Activate several currencies at once
// @Tags currencies
// @Accept json
// @Produce json
// @Param request body dto.BulkActivateRequest true "Currency codes"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} dto.MutationResponse "No code could be activated"
// @Router /currencies/activate-bulk [post]
func (h *currencyHandler) activateBulk(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BulkActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for bulk activate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.runMutation(c, "activate-bulk", func() (dto.MutationResponse, error) {
		res, err := h.currencyService.ActivateMany(c.Request.Context(), req.Codes)
		return dto.ToMutationResponse(res), err
	})
}

// setDefaultCurrency godoc
// @Summary Set the default display currency
// @Description Auto-activates the currency if it is not yet enabled
// @Tags currencies
// @Accept json
// @Produce json
// @Param request body dto.SetCurrencyRequest true "Currency code"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} dto.MutationResponse "Rejected by a business rule"
// @Router /currencies/default [put]
func (h *currencyHandler) setDefaultCurrency(c *gin.Context) {
	h.bindCodeAndRun(c, "set default", h.currencyService.SetDefault)
}

// setBaseCurrency godoc
// @Summary Set the base (pivot) currency
// @Description Auto-activates the currency and triggers a rate refresh against the new pivot
// @Tags currencies
// @Accept json
// @Produce json
// @Param request body dto.SetCurrencyRequest true "Currency code"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} dto.MutationResponse "Rejected by a business rule"
// @Router /currencies/base [put]
func (h *currencyHandler) setBaseCurrency(c *gin.Context) {
	h.bindCodeAndRun(c, "set base", h.currencyService.SetBase)
}

// setPreferredCurrency godoc
// @Summary Set the end user's preferred display currency
// @Description Only currently enabled currencies are accepted
// @Tags currencies
// @Accept json
// @Produce json
// @Param request body dto.SetCurrencyRequest true "Currency code"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} dto.MutationResponse "Rejected by a business rule"
// @Router /currencies/preferred [put]
func (h *currencyHandler) setPreferredCurrency(c *gin.Context) {
	h.bindCodeAndRun(c, "set preferred", h.currencyService.SetPreferred)
}

// setAutoUpdate godoc
// @Summary Enable or disable periodic rate refresh
// @Tags currencies
// @Accept json
// @Produce json
// @Param request body dto.AutoUpdateRequest true "Auto-update flag"
// @Success 200 {object} dto.MutationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /currencies/auto-update [put]
func (h *currencyHandler) setAutoUpdate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AutoUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for auto-update", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.runMutation(c, "auto-update", func() (dto.MutationResponse, error) {
		res, err := h.currencyService.SetAutoUpdate(c.Request.Context(), *req.Enabled)
		return dto.ToMutationResponse(res), err
	})
}

// getSettings godoc
// @Summary Get currency settings
// @Tags settings
// @Produce json
// @Success 200 {object} dto.SettingsResponse
// @Failure 500 {object} map[string]string "Storage failure"
// @Router /settings [get]
func (h *currencyHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settings, err := h.currencyService.Settings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load settings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// getSnapshot godoc
// @Summary Get the current reactive snapshot
// @Tags settings
// @Produce json
// @Success 200 {object} domain.Snapshot
// @Router /snapshot [get]
func (h *currencyHandler) getSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.currencyService.Snapshot(c.Request.Context()))
}

// streamSnapshots godoc
// @Summary Subscribe to snapshot updates
// @Description Server-sent events; one event per published snapshot, starting with the current one
// @Tags currencies
// @Produce text/event-stream
// @Success 200 {object} domain.Snapshot
// @Router /currencies/stream [get]
func (h *currencyHandler) streamSnapshots(c *gin.Context) {
	snapshots, cancel := h.currencyService.Subscribe()
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snap)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// runMutation executes op and writes the outcome; storage faults become 500s.
func (h *currencyHandler) runMutation(c *gin.Context, action string, op func() (dto.MutationResponse, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	res, err := op()
	if err != nil {
		logger.Error("Currency mutation failed on storage",
			slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
		return
	}
	if !res.Success {
		logger.Warn("Currency mutation rejected",
			slog.String("action", action), slog.String("reason", res.Message))
	}
	respondMutation(c, res)
}

// bindCodeAndRun binds a {code} body and forwards it to a facade call.
func (h *currencyHandler) bindCodeAndRun(c *gin.Context, action string, call func(ctx context.Context, code string) (domain.MutationResult, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.runMutation(c, action, func() (dto.MutationResponse, error) {
		res, err := call(c.Request.Context(), req.Code)
		return dto.ToMutationResponse(res), err
	})
}
