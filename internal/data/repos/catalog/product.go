package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/anish9011/plant/internal/domain"
	"github.com/anish9011/plant/internal/platform/dbctx"
	"github.com/anish9011/plant/internal/platform/logger"
)

type ProductRepo interface {
	Create(dbc dbctx.Context, products []*types.Product) ([]*types.Product, error)
	GetByProductIDs(dbc dbctx.Context, productIDs []string) ([]*types.Product, error)
	GetByProductID(dbc dbctx.Context, productID string) (*types.Product, error)
	ProductIDExists(dbc dbctx.Context, productID string) (bool, error)
	List(dbc dbctx.Context) ([]*types.Product, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	repoLog := baseLog.With("repo", "ProductRepo")
	return &productRepo{db: db, log: repoLog}
}

func (pr *productRepo) Create(dbc dbctx.Context, products []*types.Product) ([]*types.Product, error) {
	if len(products) == 0 {
		return []*types.Product{}, nil
	}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
	}
	if err := dbc.Of(pr.db).Create(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (pr *productRepo) GetByProductIDs(dbc dbctx.Context, productIDs []string) ([]*types.Product, error) {
	var results []*types.Product
	if len(productIDs) == 0 {
		return results, nil
	}
	if err := dbc.Of(pr.db).
		Where("product_id IN ?", productIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByProductID returns nil, nil when the catalog key is unknown.
func (pr *productRepo) GetByProductID(dbc dbctx.Context, productID string) (*types.Product, error) {
	found, err := pr.GetByProductIDs(dbc, []string{productID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (pr *productRepo) ProductIDExists(dbc dbctx.Context, productID string) (bool, error) {
	var count int64
	if err := dbc.Of(pr.db).
		Model(&types.Product{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns the whole catalog, newest first.
func (pr *productRepo) List(dbc dbctx.Context) ([]*types.Product, error) {
	var results []*types.Product
	if err := dbc.Of(pr.db).
		Order("created_at DESC").
		Order("product_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
