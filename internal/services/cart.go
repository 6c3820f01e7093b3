package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

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
	CodeCartItemNotFound = "cart_item_not_found"
	CodeInvalidQuantity  = "invalid_quantity"
)

// AddCartItemInput describes a line to add. Image is either a reference
// string (ImageSrc) or a raw blob (Image); at least one is required.
type AddCartItemInput struct {
	Email     string
	ProductID string
	Name      string
	Price     string
	ImageSrc  string
	Image     []byte
	Quantity  int
}

// AddCartItemResult reports the outcome of Add. When Created is false the
// cart already held the product and nothing was changed; CurrentQuantity is
// the quantity already in the cart.
type AddCartItemResult struct {
	Created         bool
	Item            *types.CartItem
	CurrentQuantity int
}

type CartService interface {
	Add(ctx context.Context, in AddCartItemInput) (*AddCartItemResult, error)
	Update(ctx context.Context, email, productID string, quantity int) (*types.CartItem, error)
	List(ctx context.Context, email string) ([]*types.CartItem, error)
	Remove(ctx context.Context, email, productID string) (bool, error)
	Clear(ctx context.Context, email string) (int64, error)
}

type cartService struct {
	db            *gorm.DB
	log           *logger.Logger
	accounts      repos.AccountRepo
	items         repos.CartItemRepo
	maxImageBytes int
	now           func() time.Time
}

func NewCartService(db *gorm.DB, log *logger.Logger, accounts repos.AccountRepo, items repos.CartItemRepo, maxImageBytes int) CartService {
	return &cartService{
		db:            db,
		log:           log.With("service", "CartService"),
		accounts:      accounts,
		items:         items,
		maxImageBytes: maxImageBytes,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func validQuantity(q int) error {
	if q < 1 {
		return apierr.Validation(CodeInvalidQuantity, "quantity must be a positive integer")
	}
	return nil
}

func (cs *cartService) Add(ctx context.Context, in AddCartItemInput) (*AddCartItemResult, error) {
	productID := strings.TrimSpace(in.ProductID)
	name := strings.TrimSpace(in.Name)
	imageSrc := strings.TrimSpace(in.ImageSrc)
	if productID == "" || name == "" || (imageSrc == "" && len(in.Image) == 0) {
		return nil, apierr.Validation(CodeInvalidRequest, "Missing required fields")
	}
	price, err := parseMoney("price", in.Price)
	if err != nil {
		return nil, err
	}
	if err := validQuantity(in.Quantity); err != nil {
		return nil, err
	}
	var contentType string
	if len(in.Image) > 0 {
		info, err := media.Inspect(in.Image, cs.maxImageBytes)
		if err != nil {
			return nil, apierr.Validation(CodeInvalidImage, err.Error())
		}
		contentType = info.ContentType
	}

	dbc := dbctx.Context{Ctx: ctx}
	acct, err := requireAccount(dbc, cs.accounts, in.Email)
	if err != nil {
		return nil, err
	}

	existing, err := cs.items.Get(dbc, acct.ID, productID)
	if err != nil {
		return nil, apierr.Internal(CodeInternal, err)
	}
	if existing != nil {
		observability.Current().IncCartAdd("already_in_cart")
		return conflictResult(existing), nil
	}

	created, err := cs.items.Create(dbc, &types.CartItem{
		ID:               uuid.New(),
		AccountID:        acct.ID,
		ProductID:        productID,
		Name:             name,
		Price:            price,
		ImageSrc:         imageSrc,
		Image:            in.Image,
		ImageContentType: contentType,
		Quantity:         in.Quantity,
		AddedAt:          cs.now(),
	})
	if err != nil {
		if !db.IsUniqueViolation(err) {
			cs.log.Error("create cart item failed", "account_id", acct.ID, "product_id", productID, "error", err)
			return nil, apierr.Internal(CodeInternal, err)
		}
		// A concurrent add won; report its line as the conflict.
		existing, gerr := cs.items.Get(dbc, acct.ID, productID)
		if gerr != nil || existing == nil {
			return nil, apierr.Internal(CodeInternal, err)
		}
		observability.Current().IncCartAdd("already_in_cart")
		return conflictResult(existing), nil
	}
	observability.Current().IncCartAdd("created")
	cs.log.Debug("cart item added", "account_id", acct.ID, "product_id", productID, "quantity", in.Quantity)
	return &AddCartItemResult{Created: true, Item: created, CurrentQuantity: created.Quantity}, nil
}

func conflictResult(existing *types.CartItem) *AddCartItemResult {
	return &AddCartItemResult{Created: false, Item: existing, CurrentQuantity: existing.Quantity}
}

func (cs *cartService) Update(ctx context.Context, email, productID string, quantity int) (*types.CartItem, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, apierr.Validation(CodeInvalidRequest, "id is required")
	}
	if err := validQuantity(quantity); err != nil {
		return nil, err
	}

	var out *types.CartItem
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		acct, err := requireAccount(dbc, cs.accounts, email)
		if err != nil {
			return err
		}
		n, err := cs.items.UpdateQuantity(dbc, acct.ID, productID, quantity)
		if err != nil {
			return apierr.Internal(CodeInternal, err)
		}
		if n == 0 {
			return apierr.NotFound(CodeCartItemNotFound, "Cart item not found")
		}
		item, err := cs.items.Get(dbc, acct.ID, productID)
		if err != nil {
			return apierr.Internal(CodeInternal, err)
		}
		if item == nil {
			return apierr.NotFound(CodeCartItemNotFound, "Cart item not found")
		}
		out = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (cs *cartService) List(ctx context.Context, email string) ([]*types.CartItem, error) {
	dbc := dbctx.Context{Ctx: ctx}
	acct, err := requireAccount(dbc, cs.accounts, email)
	if err != nil {
		return nil, err
	}
	items, err := cs.items.ListByAccount(dbc, acct.ID)
	if err != nil {
		return nil, apierr.Internal(CodeInternal, err)
	}
	return items, nil
}

// Remove deletes the line if present. Removing an absent line succeeds and
// reports false.
func (cs *cartService) Remove(ctx context.Context, email, productID string) (bool, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return false, apierr.Validation(CodeInvalidRequest, "id is required")
	}
	dbc := dbctx.Context{Ctx: ctx}
	acct, err := requireAccount(dbc, cs.accounts, email)
	if err != nil {
		return false, err
	}
	n, err := cs.items.Delete(dbc, acct.ID, productID)
	if err != nil {
		return false, apierr.Internal(CodeInternal, err)
	}
	return n > 0, nil
}

// Clear empties the account's cart. Checkout never calls it; clients do so
// explicitly once an order is placed.
func (cs *cartService) Clear(ctx context.Context, email string) (int64, error) {
	dbc := dbctx.Context{Ctx: ctx}
	acct, err := requireAccount(dbc, cs.accounts, email)
	if err != nil {
		return 0, err
	}
	n, err := cs.items.DeleteByAccount(dbc, acct.ID)
	if err != nil {
		return 0, apierr.Internal(CodeInternal, err)
	}
	cs.log.Info("cart cleared", "account_id", acct.ID, "removed", n)
	return n, nil
}
