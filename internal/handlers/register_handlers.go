package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/mytechsolutions09/artistic-pro-admin/cmd/docs"
	portssvc "github.com/mytechsolutions09/artistic-pro-admin/internal/core/ports/services"
	"github.com/mytechsolutions09/artistic-pro-admin/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service facade interface. refreshLimiter (optional) guards
// the manual rate-refresh endpoint.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	currencyService portssvc.CurrencySvcFacade,
	refreshLimiter gin.HandlerFunc,
) {
	// Health check for the hosting platform
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	v1 := r.Group("/api/v1")
	registerCurrencyRoutes(v1, currencyService)
	registerRatesRoutes(v1, currencyService, refreshLimiter)

	setupSwaggerRoutes(r, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
