package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anish9011/plant/internal/http/response"
	"github.com/anish9011/plant/internal/platform/apierr"
	"github.com/anish9011/plant/internal/platform/logger"
	"github.com/anish9011/plant/internal/services"
)

type CheckoutHandler struct {
	log           *logger.Logger
	checkout      services.CheckoutService
	delivery      services.DeliveryService
	maxImageBytes int
}

func NewCheckoutHandler(log *logger.Logger, checkout services.CheckoutService, delivery services.DeliveryService, maxImageBytes int) *CheckoutHandler {
	return &CheckoutHandler{
		log:           log.With("handler", "CheckoutHandler"),
		checkout:      checkout,
		delivery:      delivery,
		maxImageBytes: maxImageBytes,
	}
}

// POST /checkout
//
// Multipart form. Shipping fields are scalar; line items arrive as the
// repeated fields name, price, quantity and image, matched by position.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	lines, err := h.readLines(c)
	if err != nil {
		response.RespondServiceError(c, h.log, codeInvalidRequest, err)
		return
	}
	order, err := h.checkout.Submit(c.Request.Context(), services.CheckoutInput{
		Email:                c.PostForm("email"),
		FullName:             c.PostForm("fullName"),
		AddressLine1:         c.PostForm("addressLine1"),
		AddressLine2:         c.PostForm("addressLine2"),
		City:                 c.PostForm("city"),
		State:                c.PostForm("state"),
		PostalCode:           c.PostForm("postalCode"),
		Country:              c.PostForm("country"),
		PhoneNumber:          c.PostForm("phoneNumber"),
		PaymentMethod:        c.PostForm("paymentMethod"),
		DeliveryInstructions: c.PostForm("deliveryInstructions"),
		ExpectedDeliveryDate: c.PostForm("expectedDeliveryDate"),
		TotalAmount:          c.PostForm("totalAmount"),
		Lines:                lines,
	})
	if err != nil {
		response.RespondServiceError(c, h.log, services.CodeCheckoutFailed, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"message":     "Order placed successfully",
		"orderId":     order.ID,
		"totalAmount": order.TotalAmount,
	})
}

func (h *CheckoutHandler) readLines(c *gin.Context) ([]services.CheckoutLine, error) {
	if _, err := c.MultipartForm(); err != nil {
		return nil, apierr.Validation(codeInvalidRequest, "checkout expects a multipart form")
	}
	names := formValues(c, "name")
	prices := formValues(c, "price")
	quantities := formValues(c, "quantity")
	images := formFiles(c, "image")

	n := len(names)
	if len(prices) != n || len(quantities) != n || len(images) != n {
		return nil, apierr.Validation(codeInvalidRequest, fmt.Sprintf(
			"line item fields differ in length: name=%d price=%d quantity=%d image=%d",
			len(names), len(prices), len(quantities), len(images)))
	}

	lines := make([]services.CheckoutLine, 0, n)
	for i := 0; i < n; i++ {
		qty, err := parseQuantity(quantities[i])
		if err != nil {
			return nil, apierr.Validation(services.CodeInvalidQuantity, fmt.Sprintf("line %d: quantity must be a positive integer", i))
		}
		raw, err := readFileHeader(images[i], h.maxImageBytes)
		if err != nil {
			return nil, err
		}
		lines = append(lines, services.CheckoutLine{
			Name:     names[i],
			Price:    prices[i],
			Quantity: qty,
			Image:    raw,
		})
	}
	return lines, nil
}

// GET /checkout/delivery-date
func (h *CheckoutHandler) DeliveryDate(c *gin.Context) {
	d := h.delivery.SuggestDate()
	c.JSON(http.StatusOK, gin.H{"expectedDeliveryDate": d.Format("2006-01-02")})
}
