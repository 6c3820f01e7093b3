package db

import (
	"fmt"

	types "github.com/anish9011/plant/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return EnsureCartItemIndexes(db)
}

// EnsureCartItemIndexes re-asserts the (account_id, product_id) uniqueness
// for databases migrated before the composite tag existed.
func EnsureCartItemIndexes(db *gorm.DB) error {
	m := db.Migrator()
	if m.HasIndex(&types.CartItem{}, "idx_cart_item_account_product") {
		return nil
	}
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_item_account_product
		ON cart_item (account_id, product_id)
	`).Error; err != nil {
		return fmt.Errorf("ensure cart item index: %w", err)
	}
	return nil
}
