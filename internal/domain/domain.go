package domain

import (
	"github.com/anish9011/plant/internal/domain/account"
	"github.com/anish9011/plant/internal/domain/cart"
	"github.com/anish9011/plant/internal/domain/catalog"
	"github.com/anish9011/plant/internal/domain/order"
)

const (
	RoleUser  = account.RoleUser
	RoleAdmin = account.RoleAdmin

	PaymentCOD        = order.PaymentCOD
	PaymentCreditCard = order.PaymentCreditCard
	PaymentPayPal     = order.PaymentPayPal
)

type (
	Account       = account.Account
	Product       = catalog.Product
	CartItem      = cart.CartItem
	Order         = order.Order
	OrderLine     = order.OrderLine
	PaymentMethod = order.PaymentMethod
)

func ValidRole(role string) bool { return account.ValidRole(role) }

// Models lists every persisted type, in migration order.
func Models() []any {
	return []any{
		&Account{},
		&Product{},
		&CartItem{},
		&Order{},
		&OrderLine{},
	}
}
