package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retail-core/models"
	"retail-core/retail"
)

type CartHandler struct {
	manager *retail.Manager
	logger  *zap.Logger
}

func NewCartHandler(manager *retail.Manager, logger *zap.Logger) *CartHandler {
	return &CartHandler{manager: manager, logger: logger}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewShoppingCart(h.manager.Cart()))
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c, "Invalid request body", err.Error())
		return
	}

	if err := h.manager.AddToCart(req.ProductID, req.Quantity); err != nil {
		h.logger.Info("add to cart rejected",
			zap.Int("product_id", req.ProductID),
			zap.Int("quantity", req.Quantity),
			zap.Error(err))
		respondError(c, "Cannot add product to cart", err)
		return
	}

	c.JSON(http.StatusOK, models.NewShoppingCart(h.manager.Cart()))
}

// RemoveItem handles DELETE /cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := positiveIDParam(c, "productId", "Product ID")
	if !ok {
		return
	}

	if err := h.manager.RemoveFromCart(int(id)); err != nil {
		respondError(c, "Cannot remove product from cart", err)
		return
	}

	c.JSON(http.StatusOK, models.NewShoppingCart(h.manager.Cart()))
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.manager.ClearCart()
	c.Status(http.StatusNoContent)
}

// CartDiscount handles GET /cart/discount?rate=
func (h *CartHandler) CartDiscount(c *gin.Context) {
	rate, ok := rateQuery(c)
	if !ok {
		return
	}

	discounted, err := h.manager.ApplyCartDiscount(rate)
	if err != nil {
		respondError(c, "Invalid discount rate", err)
		return
	}
	c.JSON(http.StatusOK, models.DiscountResponse{
		Original:   h.manager.Cart().Total(),
		Rate:       rate,
		Discounted: discounted,
	})
}
