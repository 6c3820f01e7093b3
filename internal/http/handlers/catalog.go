package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	types "github.com/anish9011/plant/internal/domain"
	"github.com/anish9011/plant/internal/http/response"
	"github.com/anish9011/plant/internal/platform/logger"
	"github.com/anish9011/plant/internal/platform/media"
	"github.com/anish9011/plant/internal/services"
)

type CatalogHandler struct {
	log           *logger.Logger
	catalog       services.CatalogService
	maxImageBytes int
}

func NewCatalogHandler(log *logger.Logger, catalog services.CatalogService, maxImageBytes int) *CatalogHandler {
	return &CatalogHandler{log: log.With("handler", "CatalogHandler"), catalog: catalog, maxImageBytes: maxImageBytes}
}

type productView struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Desc       string          `json:"desc"`
	Detail     string          `json:"detail"`
	Highlights json.RawMessage `json:"highlights"`
	Image      string          `json:"image"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func toProductView(p *types.Product) productView {
	highlights := json.RawMessage(p.Highlights)
	if len(highlights) == 0 {
		highlights = json.RawMessage("[]")
	}
	return productView{
		ID:         p.ProductID,
		Name:       p.Name,
		Price:      p.Price,
		Desc:       p.Description,
		Detail:     p.Detail,
		Highlights: highlights,
		Image:      media.DataURI(p.ImageContentType, p.Image),
		CreatedAt:  p.CreatedAt,
	}
}

// POST /admin/addproduct (multipart: id, name, price, desc, detail, highlights, image)
func (h *CatalogHandler) AddProduct(c *gin.Context) {
	image, err := formFile(c, "image", h.maxImageBytes)
	if err != nil {
		response.RespondServiceError(c, h.log, "add_product_failed", err)
		return
	}
	p, err := h.catalog.AddProduct(c.Request.Context(), services.AddProductInput{
		ProductID:   c.PostForm("id"),
		Name:        c.PostForm("name"),
		Price:       c.PostForm("price"),
		Description: c.PostForm("desc"),
		Detail:      c.PostForm("detail"),
		Highlights:  services.ParseHighlights(c.PostForm("highlights")),
		Image:       image,
	})
	if err != nil {
		response.RespondServiceError(c, h.log, "add_product_failed", err)
		return
	}
	response.RespondOK(c, gin.H{
		"message": "Product added successfully",
		"product": toProductView(p),
	})
}

// GET /getproduct, GET /admin/getproduct
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, h.log, "list_products_failed", err)
		return
	}
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, toProductView(p))
	}
	c.JSON(http.StatusOK, out)
}

// GET /getproductdetail/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	p, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondServiceError(c, h.log, "get_product_failed", err)
		return
	}
	response.RespondOK(c, toProductView(p))
}
