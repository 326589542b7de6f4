package models

import (
	"github.com/shopspring/decimal"

	"retail-core/retail"
)

type ShoppingCart struct {
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

type CartItem struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// AddItemRequest leaves quantity unchecked so the cart reports non-positive
// quantities itself.
type AddItemRequest struct {
	ProductID int `json:"product_id" binding:"required,min=1"`
	Quantity  int `json:"quantity"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func NewShoppingCart(cart *retail.Cart) ShoppingCart {
	entries := cart.Entries()
	items := make([]CartItem, len(entries))
	for i, e := range entries {
		item := CartItem{
			ProductID: e.Item().ID(),
			Name:      e.Item().Name(),
			Quantity:  e.Quantity(),
			UnitPrice: e.Item().Price(),
			LineTotal: e.LineTotal(),
		}
		if el, ok := e.Item().(*retail.Electronics); ok {
			item.Brand = el.Brand()
		}
		items[i] = item
	}
	return ShoppingCart{Items: items, Total: cart.Total(), ItemCount: len(items)}
}
