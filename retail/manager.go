package retail

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const orderDateLayout = "2006-01-02"

// Manager owns the catalog, the active cart and the order history, and routes
// id based requests to the cart.
type Manager struct {
	mu      sync.RWMutex
	catalog *Container[Item]
	cart    *Cart
	orders  []*Order
	ids     *OrderIDs
	now     func() time.Time
	logger  *zap.Logger
}

type Option func(*Manager)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithOrderIDs replaces the manager's own order id sequence.
func WithOrderIDs(ids *OrderIDs) Option {
	return func(m *Manager) {
		if ids != nil {
			m.ids = ids
		}
	}
}

// WithClock sets the clock used for order date labels.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		catalog: NewContainer(SameItem),
		ids:     NewOrderIDs(),
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cart = NewCart(m.logger.Named("cart"))
	return m
}

// AddCatalogItem stores item in the catalog. Ids must be unique.
func (m *Manager) AddCatalogItem(item Item) error {
	if isNilItem(item) {
		return nullReference("cannot add a missing product to the catalog")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.catalog.Contains(item) {
		return validationf("product %d already exists in the catalog", item.ID())
	}
	m.catalog.Add(item)

	m.logger.Info("added to catalog",
		zap.Int("product_id", item.ID()),
		zap.String("name", item.Name()),
		zap.String("kind", string(item.Kind())))
	return nil
}

// Product looks up a catalog item by id.
func (m *Manager) Product(productID int) (Item, error) {
	item, ok := m.catalog.FindBy(func(it Item) bool { return it.ID() == productID })
	if !ok {
		return nil, notFoundf("product with ID %d not found in inventory", productID)
	}
	return item, nil
}

// Catalog lists the catalog items in insertion order.
func (m *Manager) Catalog() []Item {
	return m.catalog.All()
}

func (m *Manager) Cart() *Cart {
	return m.cart
}

func (m *Manager) AddToCart(productID, quantity int) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, err := m.Product(productID)
	if err != nil {
		return err
	}
	return m.cart.AddProduct(item, quantity)
}

func (m *Manager) RemoveFromCart(productID int) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, err := m.Product(productID)
	if err != nil {
		return err
	}
	return m.cart.RemoveProduct(item)
}

// ClearCart releases every reservation held by the cart.
func (m *Manager) ClearCart() {
	m.mu.RLock()
	defer m.mu.RUnlock()
	m.cart.Clear()
}

func (m *Manager) ApplyCartDiscount(rate float64) (decimal.Decimal, error) {
	return m.cart.ApplyDiscount(rate)
}

// Checkout turns the cart into a confirmed order, appends it to the history
// and clears the cart.
func (m *Manager) Checkout() (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, err := CreateOrder(m.ids, m.cart, m.now().Format(orderDateLayout))
	if err != nil {
		m.logger.Warn("checkout rejected", zap.Error(err))
		return nil, err
	}
	m.orders = append(m.orders, order)
	m.cart.Clear()

	m.logger.Info("order confirmed",
		zap.Int64("order_id", order.ID()),
		zap.Int("lines", len(order.lines)),
		zap.String("total", order.Total().StringFixed(2)))
	return order, nil
}

// OrderHistory returns the orders in creation order.
func (m *Manager) OrderHistory() []*Order {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Order, len(m.orders))
	copy(out, m.orders)
	return out
}

func (m *Manager) Order(orderID int64) (*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, o := range m.orders {
		if o.ID() == orderID {
			return o, nil
		}
	}
	return nil, notFoundf("order %d not found", orderID)
}
