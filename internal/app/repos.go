package app

import (
	"gorm.io/gorm"

	"github.com/anish9011/plant/internal/data/repos"
	"github.com/anish9011/plant/internal/platform/logger"
)

type Repos struct {
	Account  repos.AccountRepo
	Product  repos.ProductRepo
	CartItem repos.CartItemRepo
	Order    repos.OrderRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Account:  repos.NewAccountRepo(db, log),
		Product:  repos.NewProductRepo(db, log),
		CartItem: repos.NewCartItemRepo(db, log),
		Order:    repos.NewOrderRepo(db, log),
	}
}
