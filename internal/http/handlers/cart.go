package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	types "github.com/anish9011/plant/internal/domain"
	"github.com/anish9011/plant/internal/http/response"
	"github.com/anish9011/plant/internal/platform/logger"
	"github.com/anish9011/plant/internal/platform/media"
	"github.com/anish9011/plant/internal/services"
)

type CartHandler struct {
	log           *logger.Logger
	cart          services.CartService
	maxImageBytes int
}

func NewCartHandler(log *logger.Logger, cart services.CartService, maxImageBytes int) *CartHandler {
	return &CartHandler{log: log.With("handler", "CartHandler"), cart: cart, maxImageBytes: maxImageBytes}
}

type cartItemView struct {
	ID        uuid.UUID       `json:"_id"`
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageSrc  string          `json:"imageSrc"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"addedAt"`
}

// toCartItemView renders blob-backed lines as data URIs so clients always
// get a displayable imageSrc.
func toCartItemView(it *types.CartItem) cartItemView {
	src := it.ImageSrc
	if src == "" && len(it.Image) > 0 {
		src = media.DataURI(it.ImageContentType, it.Image)
	}
	return cartItemView{
		ID:        it.ID,
		ProductID: it.ProductID,
		Name:      it.Name,
		Price:     it.Price,
		ImageSrc:  src,
		Quantity:  it.Quantity,
		AddedAt:   it.AddedAt,
	}
}

type addCartItemRequest struct {
	Email     string      `json:"email"`
	ProductID string      `json:"id"`
	ImageSrc  string      `json:"imageSrc"`
	Name      string      `json:"name"`
	Price     json.Number `json:"price"`
	Quantity  json.Number `json:"quantity"`
}

type updateCartItemRequest struct {
	Email    string      `json:"email"`
	Quantity json.Number `json:"quantity"`
}

type emailRequest struct {
	Email string `json:"email"`
}

// respondAdd writes 201 for a new line and 200 with the existing quantity
// when the product was already in the cart.
func respondAdd(c *gin.Context, res *services.AddCartItemResult) {
	if !res.Created {
		response.RespondOK(c, gin.H{
			"message":         "Item already in cart",
			"currentQuantity": res.CurrentQuantity,
		})
		return
	}
	response.RespondCreated(c, gin.H{
		"message": "Item added to cart",
		"item":    toCartItemView(res.Item),
	})
}

// POST /cart
func (h *CartHandler) Add(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	qty, err := parseQuantity(numberString(req.Quantity))
	if err != nil {
		response.RespondServiceError(c, h.log, codeInvalidRequest, err)
		return
	}
	res, err := h.cart.Add(c.Request.Context(), services.AddCartItemInput{
		Email:     req.Email,
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     numberString(req.Price),
		ImageSrc:  req.ImageSrc,
		Quantity:  qty,
	})
	if err != nil {
		response.RespondServiceError(c, h.log, "add_cart_item_failed", err)
		return
	}
	respondAdd(c, res)
}

// PUT /cart/:id
func (h *CartHandler) Update(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, codeInvalidRequest, err)
		return
	}
	qty, err := parseQuantity(numberString(req.Quantity))
	if err != nil {
		response.RespondServiceError(c, h.log, codeInvalidRequest, err)
		return
	}
	item, err := h.cart.Update(c.Request.Context(), emailFrom(c, req.Email), c.Param("id"), qty)
	if err != nil {
		response.RespondServiceError(c, h.log, "update_cart_item_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"message": "Quantity updated",
		"item":    toCartItemView(item),
	})
}

// GET /cart?email=
func (h *CartHandler) List(c *gin.Context) {
	items, err := h.cart.List(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.RespondServiceError(c, h.log, "list_cart_failed", err)
		return
	}
	out := make([]cartItemView, 0, len(items))
	for _, it := range items {
		out = append(out, toCartItemView(it))
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /cart/:id
func (h *CartHandler) Remove(c *gin.Context) {
	var req emailRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.RespondServiceError(c, h.log, codeInvalidRequest, err)
		return
	}
	removed, err := h.cart.Remove(c.Request.Context(), emailFrom(c, req.Email), c.Param("id"))
	if err != nil {
		response.RespondServiceError(c, h.log, "remove_cart_item_failed", err)
		return
	}
	msg := "Item removed from cart"
	if !removed {
		msg = "Item not in cart"
	}
	response.RespondOK(c, gin.H{"message": msg, "removed": removed})
}

// DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	var req emailRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		response.RespondServiceError(c, h.log, codeInvalidRequest, err)
		return
	}
	n, err := h.cart.Clear(c.Request.Context(), emailFrom(c, req.Email))
	if err != nil {
		response.RespondServiceError(c, h.log, "clear_cart_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Cart cleared", "removed": n})
}
