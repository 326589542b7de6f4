package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"retail-core/retail"
)

// Order is the HTTP view of a confirmed order.
type Order struct {
	OrderID int64           `json:"order_id"`
	Date    string          `json:"date"`
	Status  string          `json:"status"`
	Items   []OrderItem     `json:"items"`
	Total   decimal.Decimal `json:"total"`
}

type OrderItem struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CheckoutResponse struct {
	Order     Order `json:"order"`
	Published bool  `json:"published"`
}

// OrderMessage is the order document sent to the warehouse queue.
type OrderMessage struct {
	MessageID string          `json:"message_id"`
	OrderID   int64           `json:"order_id"`
	Date      string          `json:"date"`
	Status    string          `json:"status"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
}

func newOrderItems(order *retail.Order) []OrderItem {
	lines := order.Lines()
	items := make([]OrderItem, len(lines))
	for i, l := range lines {
		items[i] = OrderItem{
			ProductID: l.ItemID,
			Name:      l.Name,
			Brand:     l.Brand,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}
	return items
}

func NewOrder(order *retail.Order) Order {
	return Order{
		OrderID: order.ID(),
		Date:    order.Date(),
		Status:  string(order.Status()),
		Items:   newOrderItems(order),
		Total:   order.Total(),
	}
}

func NewOrders(orders []*retail.Order) []Order {
	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = NewOrder(o)
	}
	return out
}

// NewOrderMessage wraps order for publishing under a fresh message id.
func NewOrderMessage(order *retail.Order) OrderMessage {
	return OrderMessage{
		MessageID: uuid.NewString(),
		OrderID:   order.ID(),
		Date:      order.Date(),
		Status:    string(order.Status()),
		Items:     newOrderItems(order),
		Total:     order.Total(),
	}
}
