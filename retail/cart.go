package retail

import (
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Entry pairs a catalog item with a quantity held in a cart.
type Entry struct {
	item     Item
	quantity int
}

func (e Entry) Item() Item {
	return e.item
}

func (e Entry) Quantity() int {
	return e.quantity
}

func (e Entry) LineTotal() decimal.Decimal {
	return e.item.Price().Mul(decimal.NewFromInt(int64(e.quantity)))
}

// Cart reserves catalog stock as entries are added and releases it as they
// are removed.
type Cart struct {
	mu      sync.Mutex
	entries *Container[*Entry]
	total   decimal.Decimal
	logger  *zap.Logger
}

func NewCart(logger *zap.Logger) *Cart {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cart{
		entries: NewContainer(func(a, b *Entry) bool { return SameItem(a.item, b.item) }),
		total:   decimal.Zero,
		logger:  logger,
	}
}

// AddProduct reserves quantity units of item, merging with an existing entry
// for the same item id.
func (c *Cart) AddProduct(item Item, quantity int) error {
	if isNilItem(item) {
		return nullReference("cannot add a missing product to the cart")
	}
	if quantity <= 0 {
		return validationf("quantity must be positive, got %d", quantity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	change, err := item.UpdateStock(-quantity)
	if err != nil {
		return err
	}

	if entry, ok := c.findEntry(item.ID()); ok {
		entry.quantity += quantity
	} else {
		c.entries.Add(&Entry{item: item, quantity: quantity})
	}
	c.recalculate()

	if change.HandlingFee.IsPositive() {
		c.logger.Info("handling fee reported",
			zap.Int("product_id", item.ID()),
			zap.String("fee", change.HandlingFee.StringFixed(2)))
	}
	c.logger.Info("added to cart",
		zap.Int("product_id", item.ID()),
		zap.Int("quantity", quantity),
		zap.Int("stock_left", change.After),
		zap.String("total", c.total.StringFixed(2)))
	return nil
}

// RemoveProduct drops the whole entry for item and returns its quantity to stock.
func (c *Cart) RemoveProduct(item Item) error {
	if isNilItem(item) {
		return nullReference("cannot remove a missing product from the cart")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.findEntry(item.ID())
	if !ok {
		return notFoundf("product %d is not in the cart", item.ID())
	}
	if _, err := entry.item.UpdateStock(entry.quantity); err != nil {
		return err
	}
	c.entries.Remove(entry)
	c.recalculate()

	c.logger.Info("removed from cart",
		zap.Int("product_id", item.ID()),
		zap.Int("quantity", entry.quantity),
		zap.String("total", c.total.StringFixed(2)))
	return nil
}

// ApplyDiscount computes the discounted total without changing the cart.
func (c *Cart) ApplyDiscount(rate float64) (decimal.Decimal, error) {
	total := c.Total()
	r, err := discountRate(rate)
	if err != nil {
		return total, err
	}
	return discounted(total, r), nil
}

// Clear returns every reserved quantity to stock and empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	released := 0
	for _, entry := range c.entries.All() {
		if _, err := entry.item.UpdateStock(entry.quantity); err != nil {
			c.logger.Error("failed to release reserved stock",
				zap.Int("product_id", entry.item.ID()),
				zap.Int("quantity", entry.quantity),
				zap.Error(err))
			continue
		}
		released += entry.quantity
	}
	c.reset()

	c.logger.Info("cart cleared", zap.Int("released_units", released))
}

// Total is the sum of the line totals at the items' current prices.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recalculate()
	return c.total
}

// Entries returns copies of the entries in insertion order.
func (c *Cart) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	all := c.entries.All()
	out := make([]Entry, len(all))
	for i, e := range all {
		out[i] = *e
	}
	return out
}

// Len is the number of distinct items in the cart.
func (c *Cart) Len() int {
	return c.entries.Size()
}

func (c *Cart) IsEmpty() bool {
	return c.entries.IsEmpty()
}

// Snapshot captures the current entries as order lines. The total is the sum
// of those lines.
func (c *Cart) Snapshot() ([]OrderLine, decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	all := c.entries.All()
	lines := make([]OrderLine, len(all))
	total := decimal.Zero
	for i, e := range all {
		lines[i] = newOrderLine(*e)
		total = total.Add(lines[i].LineTotal)
	}
	return lines, total
}

func (c *Cart) findEntry(itemID int) (*Entry, bool) {
	return c.entries.FindBy(func(e *Entry) bool { return e.item.ID() == itemID })
}

// recalculate rebuilds the total from the entries.
func (c *Cart) recalculate() {
	total := decimal.Zero
	for _, e := range c.entries.All() {
		total = total.Add(e.LineTotal())
	}
	c.total = total
}

func (c *Cart) reset() {
	c.entries.Reset()
	c.total = decimal.Zero
}
