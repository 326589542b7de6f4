package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retail-core/retail"
)

// NewRouter wires every route of the retail service.
func NewRouter(manager *retail.Manager, publisher OrderPublisher, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	catalogHandler := NewCatalogHandler(manager, logger)
	cartHandler := NewCartHandler(manager, logger)
	checkoutHandler := NewCheckoutHandler(manager, publisher, logger)
	orderHandler := NewOrderHandler(manager)

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.Use(gin.Recovery())

	router.POST("/product", catalogHandler.CreateProduct)
	router.GET("/products", catalogHandler.ListProducts)
	router.GET("/products/:productId", catalogHandler.GetProduct)
	router.PATCH("/products/:productId", catalogHandler.UpdateProduct)
	router.GET("/products/:productId/discount", catalogHandler.ProductDiscount)

	router.GET("/cart", cartHandler.GetCart)
	router.DELETE("/cart", cartHandler.ClearCart)
	router.POST("/cart/items", cartHandler.AddItem)
	router.DELETE("/cart/items/:productId", cartHandler.RemoveItem)
	router.GET("/cart/discount", cartHandler.CartDiscount)
	router.POST("/cart/checkout", checkoutHandler.Checkout)

	router.GET("/orders", orderHandler.ListOrders)
	router.GET("/orders/:orderId", orderHandler.GetOrder)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	return router
}
