package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"retail-core/models"
	"retail-core/retail"
)

type OrderHandler struct {
	manager *retail.Manager
}

func NewOrderHandler(manager *retail.Manager) *OrderHandler {
	return &OrderHandler{manager: manager}
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders := h.manager.OrderHistory()
	c.JSON(http.StatusOK, gin.H{
		"data":  models.NewOrders(orders),
		"total": len(orders),
	})
}

// GetOrder handles GET /orders/:orderId
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := positiveIDParam(c, "orderId", "Order ID")
	if !ok {
		return
	}
	order, err := h.manager.Order(id)
	if err != nil {
		respondError(c, "Order not found", err)
		return
	}
	c.JSON(http.StatusOK, models.NewOrder(order))
}
