package repos

import (
	"gorm.io/gorm"

	"github.com/anish9011/plant/internal/data/repos/account"
	"github.com/anish9011/plant/internal/data/repos/cart"
	"github.com/anish9011/plant/internal/data/repos/catalog"
	"github.com/anish9011/plant/internal/data/repos/order"
	"github.com/anish9011/plant/internal/platform/logger"
)

type AccountRepo = account.AccountRepo
type ProductRepo = catalog.ProductRepo
type CartItemRepo = cart.CartItemRepo
type OrderRepo = order.OrderRepo

func NewAccountRepo(db *gorm.DB, log *logger.Logger) AccountRepo {
	return account.NewAccountRepo(db, log)
}

func NewProductRepo(db *gorm.DB, log *logger.Logger) ProductRepo {
	return catalog.NewProductRepo(db, log)
}

func NewCartItemRepo(db *gorm.DB, log *logger.Logger) CartItemRepo {
	return cart.NewCartItemRepo(db, log)
}

func NewOrderRepo(db *gorm.DB, log *logger.Logger) OrderRepo {
	return order.NewOrderRepo(db, log)
}

var NormalizeEmail = account.NormalizeEmail
