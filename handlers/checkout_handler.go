package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retail-core/models"
	"retail-core/retail"
)

const publishTimeout = 5 * time.Second

// OrderPublisher delivers confirmed orders to the warehouse.
type OrderPublisher interface {
	PublishOrder(ctx context.Context, msg models.OrderMessage) error
}

type CheckoutHandler struct {
	manager   *retail.Manager
	publisher OrderPublisher
	logger    *zap.Logger
}

// NewCheckoutHandler creates the handler. A nil publisher disables order events.
func NewCheckoutHandler(manager *retail.Manager, publisher OrderPublisher, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		manager:   manager,
		publisher: publisher,
		logger:    logger,
	}
}

// Checkout handles POST /cart/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	order, err := h.manager.Checkout()
	if err != nil {
		respondError(c, "Cannot checkout", err)
		return
	}

	published := h.publish(c.Request.Context(), order)

	c.JSON(http.StatusCreated, models.CheckoutResponse{
		Order:     models.NewOrder(order),
		Published: published,
	})
}

// publish reports whether the order reached the warehouse queue. The order
// stays confirmed either way.
func (h *CheckoutHandler) publish(ctx context.Context, order *retail.Order) bool {
	if h.publisher == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := h.publisher.PublishOrder(ctx, models.NewOrderMessage(order)); err != nil {
		h.logger.Error("failed to publish order to warehouse",
			zap.Int64("order_id", order.ID()),
			zap.Error(err))
		return false
	}
	return true
}
