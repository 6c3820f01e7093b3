package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anish9011/plant/internal/http/response"
	"github.com/anish9011/plant/internal/platform/logger"
	"github.com/anish9011/plant/internal/services"
)

type OrderHandler struct {
	log    *logger.Logger
	orders services.OrderService
}

func NewOrderHandler(log *logger.Logger, orders services.OrderService) *OrderHandler {
	return &OrderHandler{log: log.With("handler", "OrderHandler"), orders: orders}
}

// GET /myorders?email=
func (h *OrderHandler) MyOrders(c *gin.Context) {
	out, err := h.orders.ListForAccount(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.RespondServiceError(c, h.log, "list_orders_failed", err)
		return
	}
	c.JSON(http.StatusOK, nonNilOrders(out))
}

// GET /admin
func (h *OrderHandler) AllOrders(c *gin.Context) {
	out, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, h.log, "list_orders_failed", err)
		return
	}
	c.JSON(http.StatusOK, nonNilOrders(out))
}

func nonNilOrders(in []*services.OrderView) []*services.OrderView {
	if in == nil {
		return []*services.OrderView{}
	}
	return in
}
