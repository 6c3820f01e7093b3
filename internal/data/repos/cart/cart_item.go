package cart

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/anish9011/plant/internal/domain"
	"github.com/anish9011/plant/internal/platform/dbctx"
	"github.com/anish9011/plant/internal/platform/logger"
)

type CartItemRepo interface {
	// Create inserts a single line. A line that already exists for the same
	// (account, product) pair fails with a unique violation.
	Create(dbc dbctx.Context, item *types.CartItem) (*types.CartItem, error)
	Get(dbc dbctx.Context, accountID uuid.UUID, productID string) (*types.CartItem, error)
	ListByAccount(dbc dbctx.Context, accountID uuid.UUID) ([]*types.CartItem, error)
	UpdateQuantity(dbc dbctx.Context, accountID uuid.UUID, productID string, quantity int) (int64, error)
	Delete(dbc dbctx.Context, accountID uuid.UUID, productID string) (int64, error)
	DeleteByAccount(dbc dbctx.Context, accountID uuid.UUID) (int64, error)
}

type cartItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartItemRepo(db *gorm.DB, baseLog *logger.Logger) CartItemRepo {
	repoLog := baseLog.With("repo", "CartItemRepo")
	return &cartItemRepo{db: db, log: repoLog}
}

func (cr *cartItemRepo) Create(dbc dbctx.Context, item *types.CartItem) (*types.CartItem, error) {
	if item == nil {
		return nil, errors.New("cart item required")
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}
	if err := dbc.Of(cr.db).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Get returns nil, nil when the account has no line for productID.
func (cr *cartItemRepo) Get(dbc dbctx.Context, accountID uuid.UUID, productID string) (*types.CartItem, error) {
	var results []*types.CartItem
	if err := dbc.Of(cr.db).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// ListByAccount returns the account's lines, most recently added first.
func (cr *cartItemRepo) ListByAccount(dbc dbctx.Context, accountID uuid.UUID) ([]*types.CartItem, error) {
	var results []*types.CartItem
	if err := dbc.Of(cr.db).
		Where("account_id = ?", accountID).
		Order("added_at DESC").
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *cartItemRepo) UpdateQuantity(dbc dbctx.Context, accountID uuid.UUID, productID string, quantity int) (int64, error) {
	res := dbc.Of(cr.db).
		Model(&types.CartItem{}).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		Updates(map[string]any{
			"quantity":   quantity,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (cr *cartItemRepo) Delete(dbc dbctx.Context, accountID uuid.UUID, productID string) (int64, error) {
	res := dbc.Of(cr.db).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		Delete(&types.CartItem{})
	return res.RowsAffected, res.Error
}

func (cr *cartItemRepo) DeleteByAccount(dbc dbctx.Context, accountID uuid.UUID) (int64, error) {
	res := dbc.Of(cr.db).
		Where("account_id = ?", accountID).
		Delete(&types.CartItem{})
	return res.RowsAffected, res.Error
}
