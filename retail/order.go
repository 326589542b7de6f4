package retail

import (
	"sync/atomic"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const OrderConfirmed OrderStatus = "Confirmed"

// OrderIDs hands out order ids starting at 1. Ids are never reused.
type OrderIDs struct {
	last atomic.Int64
}

func NewOrderIDs() *OrderIDs {
	return &OrderIDs{}
}

func (s *OrderIDs) Next() int64 {
	return s.last.Add(1)
}

// OrderLine is a value copy of a cart entry taken at checkout.
type OrderLine struct {
	ItemID    int
	Name      string
	Kind      ItemKind
	Brand     string
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
}

func newOrderLine(e Entry) OrderLine {
	price := e.item.Price()
	line := OrderLine{
		ItemID:    e.item.ID(),
		Name:      e.item.Name(),
		Kind:      e.item.Kind(),
		UnitPrice: price,
		Quantity:  e.quantity,
		LineTotal: price.Mul(decimal.NewFromInt(int64(e.quantity))),
	}
	if el, ok := e.item.(*Electronics); ok {
		line.Brand = el.Brand()
	}
	return line
}

// Order is the permanent record of a checked out cart. It never changes after
// creation.
type Order struct {
	id     int64
	lines  []OrderLine
	total  decimal.Decimal
	status OrderStatus
	date   string
}

// CreateOrder records the cart's current entries under the next id. The cart
// is left as it is.
func CreateOrder(ids *OrderIDs, cart *Cart, date string) (*Order, error) {
	if cart == nil {
		return nil, nullReference("cannot create an order without a cart")
	}
	lines, total := cart.Snapshot()
	if len(lines) == 0 {
		return nil, errEmptyCart()
	}
	return newOrder(ids.Next(), lines, total, date), nil
}

func newOrder(id int64, lines []OrderLine, total decimal.Decimal, date string) *Order {
	return &Order{
		id:     id,
		lines:  lines,
		total:  total,
		status: OrderConfirmed,
		date:   date,
	}
}

func (o *Order) ID() int64 {
	return o.id
}

// Lines returns a copy of the ordered lines.
func (o *Order) Lines() []OrderLine {
	out := make([]OrderLine, len(o.lines))
	copy(out, o.lines)
	return out
}

func (o *Order) Total() decimal.Decimal {
	return o.total
}

func (o *Order) Status() OrderStatus {
	return o.status
}

func (o *Order) Date() string {
	return o.date
}
