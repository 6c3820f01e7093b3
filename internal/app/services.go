package app

import (
	"gorm.io/gorm"

	"github.com/anish9011/plant/internal/platform/logger"
	"github.com/anish9011/plant/internal/services"
)

type Services struct {
	Account  services.AccountService
	Catalog  services.CatalogService
	Cart     services.CartService
	Checkout services.CheckoutService
	Delivery services.DeliveryService
	Orders   services.OrderService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg *Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	// Keep the interface nil when Redis is off; a typed nil would not be.
	var cache services.ProductCache
	if clients.ProductCache != nil {
		cache = clients.ProductCache
	}
	maxImage := cfg.Media.MaxImageBytes

	return Services{
		Account:  services.NewAccountService(log, repos.Account, cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.BcryptCost),
		Catalog:  services.NewCatalogService(log, repos.Product, cache, maxImage),
		Cart:     services.NewCartService(db, log, repos.Account, repos.CartItem, maxImage),
		Checkout: services.NewCheckoutService(db, log, repos.Account, repos.Order, maxImage),
		Delivery: services.NewDeliveryService(),
		Orders:   services.NewOrderService(log, repos.Account, repos.Order),
	}
}
