package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/anish9011/plant/internal/data/repos"
	types "github.com/anish9011/plant/internal/domain"
	"github.com/anish9011/plant/internal/observability"
	"github.com/anish9011/plant/internal/platform/apierr"
	"github.com/anish9011/plant/internal/platform/dbctx"
	"github.com/anish9011/plant/internal/platform/logger"
	"github.com/anish9011/plant/internal/platform/media"
)

const (
	CodeTotalMismatch  = "total_mismatch"
	CodeCheckoutFailed = "checkout_failed"
	CodeInvalidPayment = "invalid_payment_method"
	CodeInvalidDate    = "invalid_delivery_date"
	CodeNoLineItems    = "no_line_items"
)

var checkoutTracer = otel.Tracer("github.com/anish9011/plant/internal/services/checkout")

// CheckoutLine is one submitted line item. Lines are stored in the order
// given, without merging duplicates.
type CheckoutLine struct {
	Name     string
	Price    string
	Quantity int
	Image    []byte
}

type CheckoutInput struct {
	Email                string
	FullName             string
	AddressLine1         string
	AddressLine2         string
	City                 string
	State                string
	PostalCode           string
	Country              string
	PhoneNumber          string
	PaymentMethod        string
	DeliveryInstructions string
	ExpectedDeliveryDate string
	// TotalAmount is optional. When present it must equal the server-side
	// sum of price x quantity.
	TotalAmount string
	Lines       []CheckoutLine
}

type CheckoutService interface {
	Submit(ctx context.Context, in CheckoutInput) (*types.Order, error)
}

type checkoutService struct {
	db            *gorm.DB
	log           *logger.Logger
	accounts      repos.AccountRepo
	orders        repos.OrderRepo
	maxImageBytes int
}

func NewCheckoutService(db *gorm.DB, log *logger.Logger, accounts repos.AccountRepo, orders repos.OrderRepo, maxImageBytes int) CheckoutService {
	return &checkoutService{
		db:            db,
		log:           log.With("service", "CheckoutService"),
		accounts:      accounts,
		orders:        orders,
		maxImageBytes: maxImageBytes,
	}
}

// ParsePaymentMethod maps accepted spellings to a PaymentMethod. Blank
// defaults to cash on delivery.
func ParsePaymentMethod(raw string) (types.PaymentMethod, error) {
	switch strings.ToLower(strings.Join(strings.Fields(raw), "")) {
	case "", "cod":
		return types.PaymentCOD, nil
	case "creditcard":
		return types.PaymentCreditCard, nil
	case "paypal":
		return types.PaymentPayPal, nil
	default:
		return "", apierr.Validation(CodeInvalidPayment, "paymentMethod must be one of COD, Credit Card, PayPal")
	}
}

// ParseDeliveryDate accepts a calendar date (2006-01-02) or an RFC 3339
// timestamp.
func ParseDeliveryDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, apierr.Validation(CodeInvalidDate, "expectedDeliveryDate is required")
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, apierr.Validation(CodeInvalidDate, "expectedDeliveryDate must be YYYY-MM-DD or RFC 3339")
}

func (cs *checkoutService) Submit(ctx context.Context, in CheckoutInput) (*types.Order, error) {
	ctx, span := checkoutTracer.Start(ctx, "checkout.submit")
	defer span.End()

	order, err := cs.buildOrder(in)
	if err != nil {
		span.SetStatus(codes.Error, "validation")
		observability.Current().IncCheckoutRejected(apierr.CodeOf(err))
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("checkout.lines", len(order.Lines)),
		attribute.String("checkout.payment_method", string(order.PaymentMethod)),
	)

	acct, err := requireAccount(dbctx.Context{Ctx: ctx}, cs.accounts, in.Email)
	if err != nil {
		span.SetStatus(codes.Error, "account")
		observability.Current().IncCheckoutRejected(apierr.CodeOf(err))
		return nil, err
	}
	order.AccountID = acct.ID

	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := cs.orders.Create(dbctx.Context{Ctx: ctx, Tx: tx}, order)
		return err
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist")
		cs.log.Error("persist order failed", "account_id", acct.ID, "error", err)
		observability.Current().IncCheckoutRejected(CodeCheckoutFailed)
		return nil, apierr.Internal(CodeCheckoutFailed, fmt.Errorf("persist order: %w", err))
	}

	span.SetAttributes(attribute.String("checkout.order_id", order.ID.String()))
	observability.Current().ObserveOrderPlaced(string(order.PaymentMethod), order.TotalAmount.InexactFloat64(), len(order.Lines))
	cs.log.Info("order placed",
		"account_id", acct.ID,
		"order_id", order.ID,
		"lines", len(order.Lines),
		"total", order.TotalAmount.StringFixed(2),
	)
	return order, nil
}

// buildOrder validates everything that does not need the store and returns
// the unsaved order.
func (cs *checkoutService) buildOrder(in CheckoutInput) (*types.Order, error) {
	required := []struct {
		name  string
		value string
	}{
		{"email", in.Email},
		{"fullName", in.FullName},
		{"addressLine1", in.AddressLine1},
		{"city", in.City},
		{"state", in.State},
		{"postalCode", in.PostalCode},
		{"country", in.Country},
		{"phoneNumber", in.PhoneNumber},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, apierr.Validation(CodeInvalidRequest, "missing required fields: "+strings.Join(missing, ", "))
	}

	payment, err := ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}
	deliveryDate, err := ParseDeliveryDate(in.ExpectedDeliveryDate)
	if err != nil {
		return nil, err
	}
	if len(in.Lines) == 0 {
		return nil, apierr.Validation(CodeNoLineItems, "at least one line item is required")
	}

	total := decimal.Zero
	lines := make([]types.OrderLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			return nil, apierr.Validation(CodeInvalidRequest, fmt.Sprintf("line %d: name is required", i))
		}
		price, err := parseMoney(fmt.Sprintf("line %d: price", i), l.Price)
		if err != nil {
			return nil, err
		}
		if l.Quantity < 1 {
			return nil, apierr.Validation(CodeInvalidQuantity, fmt.Sprintf("line %d: quantity must be a positive integer", i))
		}
		info, err := media.Inspect(l.Image, cs.maxImageBytes)
		if err != nil {
			return nil, apierr.Validation(CodeInvalidImage, fmt.Sprintf("line %d: %v", i, err))
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		lines = append(lines, types.OrderLine{
			ID:               uuid.New(),
			Position:         i,
			Name:             name,
			Price:            price,
			Quantity:         l.Quantity,
			Image:            l.Image,
			ImageContentType: info.ContentType,
		})
	}
	total = total.Round(2)

	if strings.TrimSpace(in.TotalAmount) != "" {
		supplied, err := parseMoney("totalAmount", in.TotalAmount)
		if err != nil {
			return nil, err
		}
		if !supplied.Equal(total) {
			return nil, apierr.Validation(CodeTotalMismatch,
				fmt.Sprintf("totalAmount %s does not match line items total %s", supplied.StringFixed(2), total.StringFixed(2)))
		}
	}

	return &types.Order{
		ID:                   uuid.New(),
		FullName:             strings.TrimSpace(in.FullName),
		AddressLine1:         strings.TrimSpace(in.AddressLine1),
		AddressLine2:         strings.TrimSpace(in.AddressLine2),
		City:                 strings.TrimSpace(in.City),
		State:                strings.TrimSpace(in.State),
		PostalCode:           strings.TrimSpace(in.PostalCode),
		Country:              strings.TrimSpace(in.Country),
		PhoneNumber:          strings.TrimSpace(in.PhoneNumber),
		PaymentMethod:        payment,
		DeliveryInstructions: strings.TrimSpace(in.DeliveryInstructions),
		ExpectedDeliveryDate: deliveryDate,
		TotalAmount:          total,
		Lines:                lines,
	}, nil
}
