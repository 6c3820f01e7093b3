package app

import (
	"context"

	"gorm.io/gorm"

	httpH "github.com/anish9011/plant/internal/http/handlers"
	"github.com/anish9011/plant/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	Catalog  *httpH.CatalogHandler
	Cart     *httpH.CartHandler
	Checkout *httpH.CheckoutHandler
	Order    *httpH.OrderHandler
}

func wireHandlers(log *logger.Logger, cfg *Config, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	maxImage := cfg.Media.MaxImageBytes
	return Handlers{
		Health:   httpH.NewHealthHandler(dbPinger(db)),
		Auth:     httpH.NewAuthHandler(log, services.Account),
		Catalog:  httpH.NewCatalogHandler(log, services.Catalog, maxImage),
		Cart:     httpH.NewCartHandler(log, services.Cart, maxImage),
		Checkout: httpH.NewCheckoutHandler(log, services.Checkout, services.Delivery, maxImage),
		Order:    httpH.NewOrderHandler(log, services.Orders),
	}
}

func dbPinger(db *gorm.DB) httpH.Pinger {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
