package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/anish9011/plant/internal/domain"
	"github.com/anish9011/plant/internal/platform/logger"
)

// cachedProduct mirrors types.Product including the fields hidden from the
// public JSON shape.
type cachedProduct struct {
	Product          *types.Product `json:"product"`
	Image            []byte         `json:"image"`
	ImageContentType string         `json:"image_content_type"`
}

type ProductCache struct {
	log    *logger.Logger
	rdb    goredis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewProductCache(log *logger.Logger, rdb goredis.Cmdable, cfg Config) *ProductCache {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "plant"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ProductCache{
		log:    log.With("service", "RedisProductCache"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *ProductCache) listKey() string { return c.prefix + ":products:all" }

func (c *ProductCache) productKey(productID string) string {
	return c.prefix + ":products:id:" + productID
}

func encodeProducts(in []*types.Product) ([]byte, error) {
	out := make([]cachedProduct, 0, len(in))
	for _, p := range in {
		if p == nil {
			continue
		}
		out = append(out, cachedProduct{Product: p, Image: p.Image, ImageContentType: p.ImageContentType})
	}
	return json.Marshal(out)
}

func decodeProducts(raw []byte) ([]*types.Product, error) {
	var in []cachedProduct
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, err
	}
	out := make([]*types.Product, 0, len(in))
	for _, cp := range in {
		if cp.Product == nil {
			continue
		}
		cp.Product.Image = cp.Image
		cp.Product.ImageContentType = cp.ImageContentType
		out = append(out, cp.Product)
	}
	return out, nil
}

// GetList reports ok=false on a miss.
func (c *ProductCache) GetList(ctx context.Context) ([]*types.Product, bool, error) {
	raw, err := c.rdb.Get(ctx, c.listKey()).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	products, err := decodeProducts(raw)
	if err != nil {
		return nil, false, fmt.Errorf("decode cached products: %w", err)
	}
	return products, true, nil
}

func (c *ProductCache) SetList(ctx context.Context, products []*types.Product) error {
	raw, err := encodeProducts(products)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.listKey(), raw, c.ttl).Err()
}

func (c *ProductCache) Get(ctx context.Context, productID string) (*types.Product, bool, error) {
	raw, err := c.rdb.Get(ctx, c.productKey(productID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	products, err := decodeProducts(raw)
	if err != nil {
		return nil, false, fmt.Errorf("decode cached product: %w", err)
	}
	if len(products) != 1 {
		return nil, false, nil
	}
	return products[0], true, nil
}

func (c *ProductCache) Set(ctx context.Context, p *types.Product) error {
	if p == nil {
		return nil
	}
	raw, err := encodeProducts([]*types.Product{p})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.productKey(p.ProductID), raw, c.ttl).Err()
}

// Invalidate drops the list entry and the given products.
func (c *ProductCache) Invalidate(ctx context.Context, productIDs ...string) error {
	keys := []string{c.listKey()}
	for _, id := range productIDs {
		keys = append(keys, c.productKey(id))
	}
	return c.rdb.Del(ctx, keys...).Err()
}
