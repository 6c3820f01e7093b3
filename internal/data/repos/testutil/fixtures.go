package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/anish9011/plant/internal/domain"
)

func SeedAccount(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.Account {
	tb.Helper()
	a := &types.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hash",
		Role:         types.RoleUser,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed account: %v", err)
	}
	return a
}

func SeedProduct(tb testing.TB, ctx context.Context, tx *gorm.DB, productID string, price string) *types.Product {
	tb.Helper()
	p := &types.Product{
		ID:               uuid.New(),
		ProductID:        productID,
		Name:             "plant " + productID,
		Price:            decimal.RequireFromString(price),
		Description:      "desc",
		Detail:           "detail",
		Highlights:       datatypes.JSON([]byte(`["sunny"]`)),
		Image:            []byte{0x89, 0x50, 0x4e, 0x47},
		ImageContentType: "image/png",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

func SeedCartItem(tb testing.TB, ctx context.Context, tx *gorm.DB, accountID uuid.UUID, productID string, qty int, addedAt time.Time) *types.CartItem {
	tb.Helper()
	ci := &types.CartItem{
		ID:        uuid.New(),
		AccountID: accountID,
		ProductID: productID,
		Name:      "plant " + productID,
		Price:     decimal.RequireFromString("10.00"),
		ImageSrc:  "https://img.example/" + productID + ".png",
		Quantity:  qty,
		AddedAt:   addedAt,
	}
	if err := tx.WithContext(ctx).Create(ci).Error; err != nil {
		tb.Fatalf("seed cart item: %v", err)
	}
	return ci
}
