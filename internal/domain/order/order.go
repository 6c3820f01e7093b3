package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCOD        PaymentMethod = "COD"
	PaymentCreditCard PaymentMethod = "CreditCard"
	PaymentPayPal     PaymentMethod = "PayPal"
)

// Order is an immutable checkout snapshot. Lines hold copies of the display
// fields submitted at checkout, never references into the catalog or cart.
type Order struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID            uuid.UUID       `gorm:"type:uuid;not null;index;column:account_id" json:"-"`
	FullName             string          `gorm:"not null;column:full_name" json:"fullName"`
	AddressLine1         string          `gorm:"not null;column:address_line1" json:"addressLine1"`
	AddressLine2         string          `gorm:"column:address_line2" json:"addressLine2"`
	City                 string          `gorm:"not null;column:city" json:"city"`
	State                string          `gorm:"not null;column:state" json:"state"`
	PostalCode           string          `gorm:"not null;column:postal_code" json:"postalCode"`
	Country              string          `gorm:"not null;column:country" json:"country"`
	PhoneNumber          string          `gorm:"not null;column:phone_number" json:"phoneNumber"`
	PaymentMethod        PaymentMethod   `gorm:"not null;column:payment_method" json:"paymentMethod"`
	DeliveryInstructions string          `gorm:"column:delivery_instructions" json:"deliveryInstructions"`
	ExpectedDeliveryDate time.Time       `gorm:"not null;column:expected_delivery_date" json:"expectedDeliveryDate"`
	TotalAmount          decimal.Decimal `gorm:"type:numeric(12,2);not null;column:total_amount" json:"totalAmount"`

	Lines []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"-"`
}

func (Order) TableName() string { return "customer_order" }

// OrderLine is the line at Position within its order.
type OrderLine struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"-"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_line_position,priority:1;column:order_id" json:"-"`
	Position         int             `gorm:"not null;uniqueIndex:idx_order_line_position,priority:2;column:position" json:"-"`
	Name             string          `gorm:"not null;column:name" json:"name"`
	Price            decimal.Decimal `gorm:"type:numeric(12,2);not null;column:price" json:"price"`
	Quantity         int             `gorm:"not null;column:quantity" json:"quantity"`
	Image            []byte          `gorm:"column:image" json:"-"`
	ImageContentType string          `gorm:"column:image_content_type" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"-"`
}

func (OrderLine) TableName() string { return "customer_order_line" }
