package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Product is a catalog entry. ProductID is the public catalog key clients
// address products by; ID is internal.
type Product struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"-"`
	ProductID        string          `gorm:"uniqueIndex;not null;column:product_id" json:"id"`
	Name             string          `gorm:"not null;column:name" json:"name"`
	Price            decimal.Decimal `gorm:"type:numeric(12,2);not null;column:price" json:"price"`
	Description      string          `gorm:"column:description" json:"desc"`
	Detail           string          `gorm:"column:detail" json:"detail"`
	Highlights       datatypes.JSON  `gorm:"column:highlights" json:"highlights"`
	Image            []byte          `gorm:"column:image" json:"-"`
	ImageContentType string          `gorm:"column:image_content_type" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "product" }
