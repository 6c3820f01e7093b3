package app

import (
	httpMW "github.com/anish9011/plant/internal/http/middleware"
	"github.com/anish9011/plant/internal/platform/logger"
)

type Middleware struct {
	AdminGuard *httpMW.AdminGuard
}

func wireMiddleware(log *logger.Logger, cfg *Config, services Services) Middleware {
	log.Info("Wiring middleware...")
	if cfg.Auth.EnforceAdmin {
		log.Info("admin routes require an admin access token")
	}
	return Middleware{
		AdminGuard: httpMW.NewAdminGuard(log, services.Account, cfg.Auth.EnforceAdmin),
	}
}
