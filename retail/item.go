package retail

import (
	"math"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

type ItemKind string

const (
	ItemStandard    ItemKind = "standard"
	ItemElectronics ItemKind = "electronics"
)

// ParseItemKind maps a kind label to an ItemKind. An empty label is standard.
func ParseItemKind(s string) (ItemKind, error) {
	switch ItemKind(s) {
	case "", ItemStandard:
		return ItemStandard, nil
	case ItemElectronics:
		return ItemElectronics, nil
	default:
		return "", validationf("unknown item kind %q", s)
	}
}

// Item is a sellable catalog entry. The set of implementations is closed:
// *Product and *Electronics.
type Item interface {
	ID() int
	Name() string
	Price() decimal.Decimal
	Stock() int
	Kind() ItemKind

	SetPrice(price decimal.Decimal) error
	SetStock(stock int) error
	UpdateStock(delta int) (StockChange, error)
	ApplyDiscount(rate float64) (decimal.Decimal, error)

	sealed()
}

// StockChange describes an applied stock mutation.
type StockChange struct {
	ItemID      int
	Before      int
	After       int
	HandlingFee decimal.Decimal
}

// Product is the base catalog item.
type Product struct {
	mu    sync.RWMutex
	id    int
	name  string
	price decimal.Decimal
	stock int
}

func NewProduct(id int, name string, price decimal.Decimal, stock int) (*Product, error) {
	if err := validateItemFields(id, price, stock); err != nil {
		return nil, err
	}
	return &Product{id: id, name: name, price: price, stock: stock}, nil
}

func validateItemFields(id int, price decimal.Decimal, stock int) error {
	if id <= 0 {
		return validationf("item id must be positive, got %d", id)
	}
	if price.IsNegative() {
		return validationf("price cannot be negative")
	}
	if stock < 0 {
		return validationf("stock cannot be negative")
	}
	return nil
}

func (p *Product) sealed() {}

func (p *Product) ID() int {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Kind() ItemKind {
	return ItemStandard
}

func (p *Product) Price() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.price
}

func (p *Product) Stock() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stock
}

func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return validationf("price cannot be negative, got %s", price.StringFixed(2))
	}
	p.mu.Lock()
	p.price = price
	p.mu.Unlock()
	return nil
}

func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return validationf("stock cannot be negative, got %d", stock)
	}
	p.mu.Lock()
	p.stock = stock
	p.mu.Unlock()
	return nil
}

// UpdateStock applies delta when the result stays non-negative. The check and
// the write happen under one lock.
func (p *Product) UpdateStock(delta int) (StockChange, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stock+delta < 0 {
		return StockChange{}, &InsufficientStockError{
			ItemID:    p.id,
			Available: p.stock,
			Requested: -delta,
		}
	}
	before := p.stock
	p.stock += delta
	return StockChange{ItemID: p.id, Before: before, After: p.stock}, nil
}

// ApplyDiscount returns the price reduced by rate. The price itself is not
// changed; an invalid rate yields the original price and an error.
func (p *Product) ApplyDiscount(rate float64) (decimal.Decimal, error) {
	price := p.Price()
	r, err := discountRate(rate)
	if err != nil {
		return price, err
	}
	return discounted(price, r), nil
}

func discountRate(rate float64) (decimal.Decimal, error) {
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return decimal.Zero, validationf("invalid discount rate %v: must be between 0.0 and 1.0", rate)
	}
	return decimal.NewFromFloat(rate), nil
}

func discounted(value, rate decimal.Decimal) decimal.Decimal {
	return value.Mul(one.Sub(rate))
}

// SameItem reports whether a and b refer to the same catalog item. Items are
// identified by id only.
func SameItem(a, b Item) bool {
	if isNilItem(a) || isNilItem(b) {
		return false
	}
	return a.ID() == b.ID()
}

// ComparePrice orders items by ascending price.
func ComparePrice(a, b Item) int {
	return a.Price().Cmp(b.Price())
}

func SortByPrice(items []Item) {
	slices.SortStableFunc(items, ComparePrice)
}

// isNilItem also catches typed nil pointers stored in the interface.
func isNilItem(item Item) bool {
	switch v := item.(type) {
	case nil:
		return true
	case *Product:
		return v == nil
	case *Electronics:
		return v == nil
	default:
		return false
	}
}
