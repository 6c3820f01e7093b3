package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/anish9011/plant/internal/data/repos"
	types "github.com/anish9011/plant/internal/domain"
	"github.com/anish9011/plant/internal/platform/apierr"
	"github.com/anish9011/plant/internal/platform/dbctx"
	"github.com/anish9011/plant/internal/platform/logger"
	"github.com/anish9011/plant/internal/platform/media"
)

const orderProjectionConcurrency = 8

// OrderView is the read projection of an order. Name, Price, Quantity and
// Image are parallel arrays: index i of each describes line i. ProductName
// repeats Name under the key the admin dashboard reads.
type OrderView struct {
	ID                   uuid.UUID           `json:"id"`
	Email                string              `json:"email"`
	FullName             string              `json:"fullName"`
	AddressLine1         string              `json:"addressLine1"`
	AddressLine2         string              `json:"addressLine2"`
	City                 string              `json:"city"`
	State                string              `json:"state"`
	PostalCode           string              `json:"postalCode"`
	Country              string              `json:"country"`
	PhoneNumber          string              `json:"phoneNumber"`
	PaymentMethod        types.PaymentMethod `json:"paymentMethod"`
	DeliveryInstructions string              `json:"deliveryInstructions"`
	ExpectedDeliveryDate string              `json:"expectedDeliveryDate"`
	TotalAmount          decimal.Decimal     `json:"totalAmount"`
	Name                 []string            `json:"name"`
	ProductName          []string            `json:"productName"`
	Price                []decimal.Decimal   `json:"price"`
	Quantity             []int               `json:"quantity"`
	Image                []string            `json:"image"`
	CreatedAt            time.Time           `json:"createdAt"`
}

type OrderService interface {
	ListForAccount(ctx context.Context, email string) ([]*OrderView, error)
	ListAll(ctx context.Context) ([]*OrderView, error)
}

type orderService struct {
	log      *logger.Logger
	accounts repos.AccountRepo
	orders   repos.OrderRepo
}

func NewOrderService(log *logger.Logger, accounts repos.AccountRepo, orders repos.OrderRepo) OrderService {
	return &orderService{
		log:      log.With("service", "OrderService"),
		accounts: accounts,
		orders:   orders,
	}
}

func (s *orderService) ListForAccount(ctx context.Context, email string) ([]*OrderView, error) {
	dbc := dbctx.Context{Ctx: ctx}
	acct, err := requireAccount(dbc, s.accounts, email)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByAccount(dbc, acct.ID)
	if err != nil {
		return nil, apierr.Internal(CodeInternal, err)
	}
	emails := map[uuid.UUID]string{acct.ID: acct.Email}
	return s.project(ctx, orders, emails)
}

func (s *orderService) ListAll(ctx context.Context) ([]*OrderView, error) {
	dbc := dbctx.Context{Ctx: ctx}
	orders, err := s.orders.ListAll(dbc)
	if err != nil {
		return nil, apierr.Internal(CodeInternal, err)
	}

	ids := make([]uuid.UUID, 0, len(orders))
	seen := map[uuid.UUID]bool{}
	for _, o := range orders {
		if !seen[o.AccountID] {
			seen[o.AccountID] = true
			ids = append(ids, o.AccountID)
		}
	}
	accts, err := s.accounts.GetByIDs(dbc, ids)
	if err != nil {
		return nil, apierr.Internal(CodeInternal, err)
	}
	emails := make(map[uuid.UUID]string, len(accts))
	for _, a := range accts {
		emails[a.ID] = a.Email
	}
	return s.project(ctx, orders, emails)
}

// project renders orders concurrently; image encoding dominates the cost for
// orders with many lines. Output order matches input order.
func (s *orderService) project(ctx context.Context, orders []*types.Order, emails map[uuid.UUID]string) ([]*OrderView, error) {
	out := make([]*OrderView, len(orders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(orderProjectionConcurrency)
	for i, o := range orders {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = ProjectOrder(o, emails[o.AccountID])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apierr.Internal(CodeInternal, err)
	}
	return out, nil
}

// ProjectOrder flattens an order into its parallel-array view.
func ProjectOrder(o *types.Order, email string) *OrderView {
	v := &OrderView{
		ID:                   o.ID,
		Email:                email,
		FullName:             o.FullName,
		AddressLine1:         o.AddressLine1,
		AddressLine2:         o.AddressLine2,
		City:                 o.City,
		State:                o.State,
		PostalCode:           o.PostalCode,
		Country:              o.Country,
		PhoneNumber:          o.PhoneNumber,
		PaymentMethod:        o.PaymentMethod,
		DeliveryInstructions: o.DeliveryInstructions,
		ExpectedDeliveryDate: o.ExpectedDeliveryDate.UTC().Format("2006-01-02"),
		TotalAmount:          o.TotalAmount,
		CreatedAt:            o.CreatedAt,
		Name:                 make([]string, 0, len(o.Lines)),
		Price:                make([]decimal.Decimal, 0, len(o.Lines)),
		Quantity:             make([]int, 0, len(o.Lines)),
		Image:                make([]string, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		v.Name = append(v.Name, l.Name)
		v.Price = append(v.Price, l.Price)
		v.Quantity = append(v.Quantity, l.Quantity)
		v.Image = append(v.Image, media.DataURI(l.ImageContentType, l.Image))
	}
	v.ProductName = v.Name
	return v
}
