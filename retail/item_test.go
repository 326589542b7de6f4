package retail

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustProduct(t *testing.T, id int, name, price string, stock int) *Product {
	t.Helper()
	p, err := NewProduct(id, name, decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	return p
}

func mustElectronics(t *testing.T, id int, name, price string, stock, warranty int, brand string) *Electronics {
	t.Helper()
	e, err := NewElectronics(id, name, decimal.RequireFromString(price), stock, warranty, brand)
	require.NoError(t, err)
	return e
}

func TestNewProduct_Validation(t *testing.T) {
	tests := []struct {
		name  string
		id    int
		price string
		stock int
	}{
		{"zero id", 0, "1.00", 1},
		{"negative price", 1, "-0.01", 1},
		{"negative stock", 1, "1.00", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.id, "x", decimal.RequireFromString(tt.price), tt.stock)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	_, err := NewElectronics(1, "x", decimal.NewFromInt(1), 1, -3, "ASUS")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProduct_SetPrice(t *testing.T) {
	book := mustProduct(t, 201, "C++ Programming Book", "49.99", 20)

	require.NoError(t, book.SetPrice(decimal.RequireFromString("39.99")))
	assert.Equal(t, "39.99", book.Price().StringFixed(2))

	err := book.SetPrice(decimal.RequireFromString("-10.00"))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "39.99", book.Price().StringFixed(2))

	require.NoError(t, book.SetPrice(decimal.Zero))
	assert.True(t, book.Price().IsZero())
}

func TestProduct_SetStock(t *testing.T) {
	book := mustProduct(t, 201, "C++ Programming Book", "49.99", 20)

	err := book.SetStock(-5)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 20, book.Stock())

	require.NoError(t, book.SetStock(0))
	assert.Equal(t, 0, book.Stock())
}

func TestProduct_UpdateStock(t *testing.T) {
	book := mustProduct(t, 201, "C++ Programming Book", "49.99", 20)

	change, err := book.UpdateStock(-2)
	require.NoError(t, err)
	assert.Equal(t, StockChange{ItemID: 201, Before: 20, After: 18}, change)
	assert.True(t, change.HandlingFee.IsZero())

	_, err = book.UpdateStock(-19)
	var stockErr *InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 18, stockErr.Available)
	assert.Equal(t, 19, stockErr.Requested)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 18, book.Stock())

	_, err = book.UpdateStock(-18)
	require.NoError(t, err)
	assert.Equal(t, 0, book.Stock())
}

func TestElectronics_UpdateStockReportsHandlingFee(t *testing.T) {
	laptop := mustElectronics(t, 101, "Gaming Laptop", "1299.99", 10, 24, "ASUS")

	change, err := laptop.UpdateStock(-1)
	require.NoError(t, err)
	assert.Equal(t, 9, change.After)
	assert.Equal(t, "5.00", change.HandlingFee.StringFixed(2))

	change, err = laptop.UpdateStock(3)
	require.NoError(t, err)
	assert.Equal(t, 12, change.After)
	assert.True(t, change.HandlingFee.IsZero())

	_, err = laptop.UpdateStock(-13)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 12, laptop.Stock())
}

func TestStockNeverNegative(t *testing.T) {
	items := []Item{
		mustProduct(t, 1, "a", "1.00", 3),
		mustElectronics(t, 2, "b", "1.00", 3, 12, "X"),
	}
	deltas := []int{-1, -5, 2, -4, -1, 7, -10, -7, 0}
	for _, item := range items {
		for _, d := range deltas {
			_, _ = item.UpdateStock(d)
			assert.GreaterOrEqual(t, item.Stock(), 0)
		}
		_ = item.SetStock(-1)
		assert.GreaterOrEqual(t, item.Stock(), 0)
	}
}

func TestApplyDiscount(t *testing.T) {
	base := mustProduct(t, 1, "Book", "100.00", 1)
	special := mustElectronics(t, 2, "Phone", "100.00", 1, 12, "Samsung")

	got, err := base.ApplyDiscount(0.10)
	require.NoError(t, err)
	assert.Equal(t, "90.00", got.StringFixed(2))

	got, err = special.ApplyDiscount(0.10)
	require.NoError(t, err)
	assert.Equal(t, "85.00", got.StringFixed(2))

	got, err = special.ApplyDiscount(0.98)
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "bonus is capped at a full discount")

	got, err = special.ApplyDiscount(0)
	require.NoError(t, err)
	assert.Equal(t, "95.00", got.StringFixed(2))
}

func TestApplyDiscount_InvalidRate(t *testing.T) {
	items := []Item{
		mustProduct(t, 1, "Book", "49.99", 1),
		mustElectronics(t, 2, "Phone", "799.99", 1, 12, "Samsung"),
	}
	for _, item := range items {
		for _, rate := range []float64{-0.1, 1.5, math.NaN()} {
			got, err := item.ApplyDiscount(rate)
			assert.ErrorIs(t, err, ErrValidation)
			assert.True(t, got.Equal(item.Price()), "original price returned")
		}
	}
}

func TestApplyDiscount_Idempotent(t *testing.T) {
	phone := mustElectronics(t, 102, "Smartphone", "799.99", 15, 12, "Samsung")

	first, err := phone.ApplyDiscount(0.15)
	require.NoError(t, err)
	second, err := phone.ApplyDiscount(0.15)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, "799.99", phone.Price().StringFixed(2))
	assert.Equal(t, 15, phone.Stock())
}

func TestSameItemAndOrdering(t *testing.T) {
	laptop := mustElectronics(t, 101, "Gaming Laptop", "1299.99", 10, 24, "ASUS")
	anotherLaptop := mustElectronics(t, 101, "Gaming Laptop", "1299.99", 5, 24, "ASUS")
	phone := mustElectronics(t, 102, "Smartphone", "799.99", 15, 12, "Samsung")
	book := mustProduct(t, 201, "C++ Programming Book", "49.99", 20)

	assert.True(t, SameItem(laptop, anotherLaptop))
	assert.False(t, SameItem(laptop, phone))
	assert.False(t, SameItem(laptop, nil))
	assert.False(t, SameItem((*Product)(nil), book))

	assert.Equal(t, 1, ComparePrice(laptop, phone))
	assert.Equal(t, -1, ComparePrice(book, laptop))

	items := []Item{laptop, book, phone}
	SortByPrice(items)
	assert.Equal(t, []int{201, 102, 101}, []int{items[0].ID(), items[1].ID(), items[2].ID()})
}

func TestParseItemKind(t *testing.T) {
	k, err := ParseItemKind("")
	require.NoError(t, err)
	assert.Equal(t, ItemStandard, k)

	k, err = ParseItemKind("electronics")
	require.NoError(t, err)
	assert.Equal(t, ItemElectronics, k)

	_, err = ParseItemKind("furniture")
	assert.ErrorIs(t, err, ErrValidation)
}
