package app

import (
	"github.com/gin-gonic/gin"

	"github.com/anish9011/plant/internal/http"
	"github.com/anish9011/plant/internal/observability"
	"github.com/anish9011/plant/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg *Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	return http.NewRouter(http.RouterConfig{
		Log:                log,
		ServiceName:        cfg.Otel.ServiceName,
		CORSOrigins:        cfg.HTTP.CORSOrigins,
		MaxMultipartMemory: cfg.HTTP.MaxMultipartMemory,
		Metrics:            metrics,
		AdminGuard:         middleware.AdminGuard,
		HealthHandler:      handlers.Health,
		AuthHandler:        handlers.Auth,
		CatalogHandler:     handlers.Catalog,
		CartHandler:        handlers.Cart,
		CheckoutHandler:    handlers.Checkout,
		OrderHandler:       handlers.Order,
	})
}
