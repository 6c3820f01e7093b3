package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/anish9011/plant/internal/http/response"
	"github.com/anish9011/plant/internal/services"
)

// The bag routes are the multipart flavour of the cart used by the admin
// storefront. They share the cart ledger and its rules.

// POST /admin/addtobag (multipart: email, id, name, price, quantity, image)
func (h *CartHandler) AddToBag(c *gin.Context) {
	image, err := formFile(c, "image", h.maxImageBytes)
	if err != nil {
		response.RespondServiceError(c, h.log, codeInvalidRequest, err)
		return
	}
	qty, err := parseQuantity(c.PostForm("quantity"))
	if err != nil {
		response.RespondServiceError(c, h.log, codeInvalidRequest, err)
		return
	}
	res, err := h.cart.Add(c.Request.Context(), services.AddCartItemInput{
		Email:     c.PostForm("email"),
		ProductID: c.PostForm("id"),
		Name:      c.PostForm("name"),
		Price:     c.PostForm("price"),
		ImageSrc:  c.PostForm("imageSrc"),
		Image:     image,
		Quantity:  qty,
	})
	if err != nil {
		response.RespondServiceError(c, h.log, "add_to_bag_failed", err)
		return
	}
	respondAdd(c, res)
}
