package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one line in an account's cart. Display fields are copied from
// the caller at add time and are not re-validated against the catalog.
// Exactly one of ImageSrc (a URL or data URI) or Image (a blob) is normally set.
// idx_cart_item_account_product allows at most one line per (account, product).
type CartItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"_id"`
	AccountID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_account_product,priority:1;column:account_id" json:"-"`
	ProductID        string          `gorm:"not null;uniqueIndex:idx_cart_item_account_product,priority:2;column:product_id" json:"id"`
	Name             string          `gorm:"not null;column:name" json:"name"`
	Price            decimal.Decimal `gorm:"type:numeric(12,2);not null;column:price" json:"price"`
	ImageSrc         string          `gorm:"column:image_src" json:"imageSrc,omitempty"`
	Image            []byte          `gorm:"column:image" json:"-"`
	ImageContentType string          `gorm:"column:image_content_type" json:"-"`
	Quantity         int             `gorm:"not null;column:quantity" json:"quantity"`
	AddedAt          time.Time       `gorm:"not null;index;column:added_at" json:"addedAt"`

	CreatedAt time.Time `gorm:"not null" json:"-"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

func (CartItem) TableName() string { return "cart_item" }
