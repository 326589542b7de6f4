package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"retail-core/config"
	"retail-core/models"
	"retail-core/retail"
)

type fakePublisher struct {
	mu   sync.Mutex
	sent []models.OrderMessage
	err  error
}

func (f *fakePublisher) PublishOrder(ctx context.Context, msg models.OrderMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func setupRouter(t *testing.T, publisher OrderPublisher) (*gin.Engine, *retail.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := retail.NewManager(retail.WithClock(func() time.Time {
		return time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	}))
	items, err := config.BuildItems(config.DefaultCatalog())
	require.NoError(t, err)
	for _, item := range items {
		require.NoError(t, m.AddCatalogItem(item))
	}
	return NewRouter(m, publisher, zap.NewNop()), m
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	router, _ := setupRouter(t, nil)
	w := doRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestID_Propagated(t *testing.T) {
	router, _ := setupRouter(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCreateProduct(t *testing.T) {
	router, m := setupRouter(t, nil)

	w := doRequest(router, http.MethodPost, "/product", gin.H{
		"product_id": 301, "name": "Headphones", "price": "59.90", "stock": 4,
		"kind": "electronics", "warranty_months": 6, "brand": "Sony",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "electronics", created.Kind)
	assert.Equal(t, "Sony", created.Brand)

	item, err := m.Product(301)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Stock())
}

func TestCreateProduct_Rejects(t *testing.T) {
	router, _ := setupRouter(t, nil)

	w := doRequest(router, http.MethodPost, "/product", gin.H{"name": "No id"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", decodeError(t, w).Error)

	w = doRequest(router, http.MethodPost, "/product", gin.H{
		"product_id": 302, "name": "Broken", "price": "-1", "stock": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w).Error)

	w = doRequest(router, http.MethodPost, "/product", gin.H{
		"product_id": 101, "name": "Duplicate", "price": "1", "stock": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w).Error)
}

func TestListProducts_SortByPrice(t *testing.T) {
	router, _ := setupRouter(t, nil)

	w := doRequest(router, http.MethodGet, "/products?sort=price", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data  []models.Product `json:"data"`
		Total int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.Total)
	assert.Equal(t, []int{201, 102, 101},
		[]int{resp.Data[0].ProductID, resp.Data[1].ProductID, resp.Data[2].ProductID})
}

func TestGetProduct(t *testing.T) {
	router, _ := setupRouter(t, nil)

	w := doRequest(router, http.MethodGet, "/products/102", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, w).Error)

	w = doRequest(router, http.MethodGet, "/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProduct(t *testing.T) {
	router, m := setupRouter(t, nil)

	w := doRequest(router, http.MethodPatch, "/products/201", gin.H{"price": "39.99", "stock": 5})
	require.Equal(t, http.StatusOK, w.Code)
	item, _ := m.Product(201)
	assert.Equal(t, "39.99", item.Price().StringFixed(2))
	assert.Equal(t, 5, item.Stock())

	w = doRequest(router, http.MethodPatch, "/products/201", gin.H{"price": "1.00", "stock": -2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "39.99", item.Price().StringFixed(2), "nothing applied on rejection")
}

func TestProductDiscount(t *testing.T) {
	router, _ := setupRouter(t, nil)

	w := doRequest(router, http.MethodGet, "/products/101/discount?rate=0.1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.DiscountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1299.99", resp.Original.StringFixed(2))
	assert.Equal(t, "1104.99", resp.Discounted.StringFixed(2))

	w = doRequest(router, http.MethodGet, "/products/201/discount?rate=1.5", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, w).Error)

	w = doRequest(router, http.MethodGet, "/products/201/discount?rate=lots", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", decodeError(t, w).Error)
}

func TestCartFlow(t *testing.T) {
	router, m := setupRouter(t, nil)

	w := doRequest(router, http.MethodPost, "/cart/items", gin.H{"product_id": 201, "quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	var cart models.ShoppingCart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Equal(t, 1, cart.ItemCount)
	assert.Equal(t, "149.97", cart.Total.StringFixed(2))

	book, _ := m.Product(201)
	assert.Equal(t, 17, book.Stock())

	w = doRequest(router, http.MethodGet, "/cart/discount?rate=0.5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var discount models.DiscountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &discount))
	assert.Equal(t, "74.99", discount.Discounted.StringFixed(2))

	w = doRequest(router, http.MethodDelete, "/cart/items/201", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 20, book.Stock())

	w = doRequest(router, http.MethodDelete, "/cart/items/201", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddItem_Errors(t *testing.T) {
	router, _ := setupRouter(t, nil)

	tests := []struct {
		name   string
		body   gin.H
		status int
		code   string
	}{
		{"missing product", gin.H{"quantity": 1}, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown product", gin.H{"product_id": 999, "quantity": 1}, http.StatusNotFound, "NOT_FOUND"},
		{"zero quantity", gin.H{"product_id": 201, "quantity": 0}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"too many", gin.H{"product_id": 101, "quantity": 11}, http.StatusConflict, "INSUFFICIENT_STOCK"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodPost, "/cart/items", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w).Error)
		})
	}
}

func TestClearCart(t *testing.T) {
	router, m := setupRouter(t, nil)
	doRequest(router, http.MethodPost, "/cart/items", gin.H{"product_id": 102, "quantity": 2})

	w := doRequest(router, http.MethodDelete, "/cart", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	phone, _ := m.Product(102)
	assert.Equal(t, 15, phone.Stock())
	assert.True(t, m.Cart().IsEmpty())
}

func TestCheckout_PublishesOrder(t *testing.T) {
	publisher := &fakePublisher{}
	router, m := setupRouter(t, publisher)

	doRequest(router, http.MethodPost, "/cart/items", gin.H{"product_id": 101, "quantity": 1})
	doRequest(router, http.MethodPost, "/cart/items", gin.H{"product_id": 201, "quantity": 2})

	w := doRequest(router, http.MethodPost, "/cart/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Published)
	assert.Equal(t, int64(1), resp.Order.OrderID)
	assert.Equal(t, "2024-01-15", resp.Order.Date)
	assert.Equal(t, "Confirmed", resp.Order.Status)
	assert.Equal(t, "1399.97", resp.Order.Total.StringFixed(2))

	require.Len(t, publisher.sent, 1)
	assert.Equal(t, int64(1), publisher.sent[0].OrderID)

	laptop, _ := m.Product(101)
	assert.Equal(t, 10, laptop.Stock(), "clearing after checkout returns the reservation")
	assert.True(t, m.Cart().IsEmpty())

	w = doRequest(router, http.MethodGet, "/orders/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doRequest(router, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestCheckout_PublishFailureStillConfirms(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker down")}
	router, m := setupRouter(t, publisher)
	doRequest(router, http.MethodPost, "/cart/items", gin.H{"product_id": 201, "quantity": 1})

	w := doRequest(router, http.MethodPost, "/cart/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Published)
	assert.Len(t, m.OrderHistory(), 1)
}

func TestCheckout_EmptyCart(t *testing.T) {
	router, m := setupRouter(t, &fakePublisher{})

	w := doRequest(router, http.MethodPost, "/cart/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_CART", decodeError(t, w).Error)
	assert.Empty(t, m.OrderHistory())
}

func TestGetOrder_NotFound(t *testing.T) {
	router, _ := setupRouter(t, nil)

	w := doRequest(router, http.MethodGet, "/orders/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/orders/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
