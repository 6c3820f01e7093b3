package order

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/anish9011/plant/internal/domain"
	"github.com/anish9011/plant/internal/platform/dbctx"
	"github.com/anish9011/plant/internal/platform/logger"
)

// OrderRepo is append-only: orders are never updated or deleted.
type OrderRepo interface {
	Create(dbc dbctx.Context, order *types.Order) (*types.Order, error)
	ListByAccount(dbc dbctx.Context, accountID uuid.UUID) ([]*types.Order, error)
	ListAll(dbc dbctx.Context) ([]*types.Order, error)
}

type orderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	repoLog := baseLog.With("repo", "OrderRepo")
	return &orderRepo{db: db, log: repoLog}
}

// Create writes the order header and its lines. Lines keep the Position the
// caller assigned; callers wanting atomicity pass a transaction.
func (r *orderRepo) Create(dbc dbctx.Context, order *types.Order) (*types.Order, error) {
	if order == nil {
		return nil, errors.New("order required")
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Lines {
		if order.Lines[i].ID == uuid.Nil {
			order.Lines[i].ID = uuid.New()
		}
		order.Lines[i].OrderID = order.ID
	}
	if err := dbc.Of(r.db).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func linesByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// ListByAccount returns the account's orders, newest first.
func (r *orderRepo) ListByAccount(dbc dbctx.Context, accountID uuid.UUID) ([]*types.Order, error) {
	var results []*types.Order
	if err := dbc.Of(r.db).
		Preload("Lines", linesByPosition).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListAll returns every order, newest first.
func (r *orderRepo) ListAll(dbc dbctx.Context) ([]*types.Order, error) {
	var results []*types.Order
	if err := dbc.Of(r.db).
		Preload("Lines", linesByPosition).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
