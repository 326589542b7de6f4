package consumer

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"retail-core/models"
)

// OrderTracker tallies the orders received by the warehouse. It is safe for
// concurrent use by workers.
type OrderTracker struct {
	mu                sync.Mutex
	seen              map[string]struct{}
	productQuantities map[int]int64
	revenue           decimal.Decimal
}

func NewOrderTracker() *OrderTracker {
	return &OrderTracker{
		seen:              make(map[string]struct{}),
		productQuantities: make(map[int]int64),
	}
}

// RecordOrder adds msg to the tally. Redelivered messages are ignored and
// reported as false.
func (t *OrderTracker) RecordOrder(msg models.OrderMessage) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := deliveryKey(msg)
	if _, dup := t.seen[key]; dup {
		return false
	}
	t.seen[key] = struct{}{}

	for _, item := range msg.Items {
		t.productQuantities[item.ProductID] += int64(item.Quantity)
	}
	t.revenue = t.revenue.Add(msg.Total)
	return true
}

// deliveryKey identifies a message across redeliveries. Order ids restart
// with the retail service, so they are only used when no message id was sent.
func deliveryKey(msg models.OrderMessage) string {
	if msg.MessageID != "" {
		return msg.MessageID
	}
	return "order-" + strconv.FormatInt(msg.OrderID, 10)
}

func (t *OrderTracker) TotalOrders() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}

func (t *OrderTracker) ProductQuantity(productID int) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.productQuantities[productID]
}

func (t *OrderTracker) Revenue() decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.revenue
}

// WriteSummary prints the final tally, products in id order.
func (t *OrderTracker) WriteSummary(w io.Writer) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]int, 0, len(t.productQuantities))
	for id := range t.productQuantities {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "WAREHOUSE SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total Orders Processed: %d\n", len(t.seen))
	fmt.Fprintf(w, "Total Revenue: $%s\n", t.revenue.StringFixed(2))
	for _, id := range ids {
		fmt.Fprintf(w, "  Product %d: %d units\n", id, t.productQuantities[id])
	}
	fmt.Fprintln(w, rule)
}
