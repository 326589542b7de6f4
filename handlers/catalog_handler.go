package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"retail-core/models"
	"retail-core/retail"
)

type CatalogHandler struct {
	manager *retail.Manager
	logger  *zap.Logger
}

func NewCatalogHandler(manager *retail.Manager, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{manager: manager, logger: logger}
}

// CreateProduct handles POST /product
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c, "Invalid request body", err.Error())
		return
	}

	var (
		item retail.Item
		err  error
	)
	if req.Kind == string(retail.ItemElectronics) {
		item, err = retail.NewElectronics(req.ProductID, req.Name, req.Price, req.Stock, req.WarrantyMonths, req.Brand)
	} else {
		item, err = retail.NewProduct(req.ProductID, req.Name, req.Price, req.Stock)
	}
	if err != nil {
		respondError(c, "Invalid product fields", err)
		return
	}
	if err := h.manager.AddCatalogItem(item); err != nil {
		respondError(c, "Cannot add product to the catalog", err)
		return
	}

	c.JSON(http.StatusCreated, models.NewProduct(item))
}

// ListProducts handles GET /products. With sort=price the listing is ordered
// by ascending price.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	items := h.manager.Catalog()
	if c.Query("sort") == "price" {
		retail.SortByPrice(items)
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  models.NewProducts(items),
		"total": len(items),
	})
}

// GetProduct handles GET /products/:productId
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	item, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.NewProduct(item))
}

// UpdateProduct handles PATCH /products/:productId. Price and stock are
// validated before either is applied.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	item, ok := h.lookup(c)
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidInput(c, "Invalid request body", err.Error())
		return
	}
	if err := validateUpdate(req); err != nil {
		respondInvalidInput(c, "Invalid product fields", err.Error())
		return
	}
	if req.Price != nil {
		if err := item.SetPrice(*req.Price); err != nil {
			respondError(c, "Invalid price", err)
			return
		}
	}
	if req.Stock != nil {
		if err := item.SetStock(*req.Stock); err != nil {
			respondError(c, "Invalid stock", err)
			return
		}
	}

	h.logger.Info("product updated",
		zap.Int("product_id", item.ID()),
		zap.String("price", item.Price().StringFixed(2)),
		zap.Int("stock", item.Stock()))
	c.JSON(http.StatusOK, models.NewProduct(item))
}

// ProductDiscount handles GET /products/:productId/discount?rate=
func (h *CatalogHandler) ProductDiscount(c *gin.Context) {
	item, ok := h.lookup(c)
	if !ok {
		return
	}
	rate, ok := rateQuery(c)
	if !ok {
		return
	}

	discounted, err := item.ApplyDiscount(rate)
	if err != nil {
		respondError(c, "Invalid discount rate", err)
		return
	}
	c.JSON(http.StatusOK, models.DiscountResponse{
		Original:   item.Price(),
		Rate:       rate,
		Discounted: discounted,
	})
}

func (h *CatalogHandler) lookup(c *gin.Context) (retail.Item, bool) {
	id, ok := positiveIDParam(c, "productId", "Product ID")
	if !ok {
		return nil, false
	}
	item, err := h.manager.Product(int(id))
	if err != nil {
		respondError(c, "Product not found", err)
		return nil, false
	}
	return item, true
}

func validateUpdate(req models.UpdateProductRequest) error {
	if req.Price != nil && req.Price.IsNegative() {
		return errors.New("price must be non-negative")
	}
	if req.Stock != nil && *req.Stock < 0 {
		return errors.New("stock must be non-negative")
	}
	return nil
}
