package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/anish9011/plant/internal/data/db"
	"github.com/anish9011/plant/internal/data/repos"
	types "github.com/anish9011/plant/internal/domain"
	"github.com/anish9011/plant/internal/observability"
	"github.com/anish9011/plant/internal/platform/apierr"
	"github.com/anish9011/plant/internal/platform/dbctx"
	"github.com/anish9011/plant/internal/platform/logger"
	"github.com/anish9011/plant/internal/platform/media"
)

const (
	CodeProductExists   = "product_exists"
	CodeProductNotFound = "product_not_found"
	CodeInvalidImage    = "invalid_image"
)

// ProductCache is a read-through cache in front of the catalog. Lookups
// report ok=false on a miss.
type ProductCache interface {
	GetList(ctx context.Context) ([]*types.Product, bool, error)
	SetList(ctx context.Context, products []*types.Product) error
	Get(ctx context.Context, productID string) (*types.Product, bool, error)
	Set(ctx context.Context, p *types.Product) error
	Invalidate(ctx context.Context, productIDs ...string) error
}

type AddProductInput struct {
	ProductID   string
	Name        string
	Price       string
	Description string
	Detail      string
	Highlights  []string
	Image       []byte
}

type CatalogService interface {
	AddProduct(ctx context.Context, in AddProductInput) (*types.Product, error)
	List(ctx context.Context) ([]*types.Product, error)
	Get(ctx context.Context, productID string) (*types.Product, error)
}

type catalogService struct {
	log           *logger.Logger
	products      repos.ProductRepo
	cache         ProductCache
	maxImageBytes int
}

// NewCatalogService builds the catalog. cache may be nil.
func NewCatalogService(log *logger.Logger, products repos.ProductRepo, cache ProductCache, maxImageBytes int) CatalogService {
	return &catalogService{
		log:           log.With("service", "CatalogService"),
		products:      products,
		cache:         cache,
		maxImageBytes: maxImageBytes,
	}
}

// ParseHighlights accepts a JSON array of strings or a newline/comma
// separated list.
func ParseHighlights(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var arr []string
	if strings.HasPrefix(raw, "[") && json.Unmarshal([]byte(raw), &arr) == nil {
		return compactStrings(arr)
	}
	sep := ","
	if strings.Contains(raw, "\n") {
		sep = "\n"
	}
	return compactStrings(strings.Split(raw, sep))
}

func compactStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseMoney(field, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, apierr.Validation(CodeInvalidRequest, field+" is required")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apierr.Validation(CodeInvalidRequest, field+" must be a number")
	}
	if d.IsNegative() {
		return decimal.Zero, apierr.Validation(CodeInvalidRequest, field+" must not be negative")
	}
	return d.Round(2), nil
}

func (cs *catalogService) AddProduct(ctx context.Context, in AddProductInput) (*types.Product, error) {
	productID := strings.TrimSpace(in.ProductID)
	name := strings.TrimSpace(in.Name)
	if productID == "" || name == "" {
		return nil, apierr.Validation(CodeInvalidRequest, "id and name are required")
	}
	price, err := parseMoney("price", in.Price)
	if err != nil {
		return nil, err
	}
	info, err := media.Inspect(in.Image, cs.maxImageBytes)
	if err != nil {
		return nil, apierr.Validation(CodeInvalidImage, err.Error())
	}
	highlights, err := json.Marshal(compactStrings(in.Highlights))
	if err != nil {
		return nil, apierr.Internal(CodeInternal, err)
	}

	dbc := dbctx.Context{Ctx: ctx}
	exists, err := cs.products.ProductIDExists(dbc, productID)
	if err != nil {
		return nil, apierr.Internal(CodeInternal, err)
	}
	if exists {
		return nil, apierr.Validation(CodeProductExists, "product already exists")
	}

	created, err := cs.products.Create(dbc, []*types.Product{{
		ID:               uuid.New(),
		ProductID:        productID,
		Name:             name,
		Price:            price,
		Description:      strings.TrimSpace(in.Description),
		Detail:           strings.TrimSpace(in.Detail),
		Highlights:       datatypes.JSON(highlights),
		Image:            in.Image,
		ImageContentType: info.ContentType,
	}})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apierr.Validation(CodeProductExists, "product already exists")
		}
		cs.log.Error("create product failed", "product_id", productID, "error", err)
		return nil, apierr.Internal(CodeInternal, err)
	}
	cs.invalidate(ctx, productID)
	cs.log.Info("product added", "product_id", productID)
	return created[0], nil
}

func (cs *catalogService) List(ctx context.Context) ([]*types.Product, error) {
	if cs.cache != nil {
		cached, ok, err := cs.cache.GetList(ctx)
		if err != nil {
			observability.Current().IncProductCache("error")
			cs.log.Warn("product cache read failed", "error", err)
		} else if ok {
			observability.Current().IncProductCache("hit")
			return cached, nil
		} else {
			observability.Current().IncProductCache("miss")
		}
	}
	products, err := cs.products.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apierr.Internal(CodeInternal, err)
	}
	if cs.cache != nil {
		if err := cs.cache.SetList(ctx, products); err != nil {
			cs.log.Warn("product cache write failed", "error", err)
		}
	}
	return products, nil
}

func (cs *catalogService) Get(ctx context.Context, productID string) (*types.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, apierr.Validation(CodeInvalidRequest, "id is required")
	}
	if cs.cache != nil {
		cached, ok, err := cs.cache.Get(ctx, productID)
		if err != nil {
			observability.Current().IncProductCache("error")
			cs.log.Warn("product cache read failed", "product_id", productID, "error", err)
		} else if ok {
			observability.Current().IncProductCache("hit")
			return cached, nil
		} else {
			observability.Current().IncProductCache("miss")
		}
	}
	p, err := cs.products.GetByProductID(dbctx.Context{Ctx: ctx}, productID)
	if err != nil {
		return nil, apierr.Internal(CodeInternal, err)
	}
	if p == nil {
		return nil, apierr.NotFound(CodeProductNotFound, "Product not found")
	}
	if cs.cache != nil {
		if err := cs.cache.Set(ctx, p); err != nil {
			cs.log.Warn("product cache write failed", "product_id", productID, "error", err)
		}
	}
	return p, nil
}

func (cs *catalogService) invalidate(ctx context.Context, productIDs ...string) {
	if cs.cache == nil {
		return
	}
	if err := cs.cache.Invalidate(ctx, productIDs...); err != nil {
		cs.log.Warn("product cache invalidate failed", "error", err)
	}
}
