package retail

import (
	"errors"
	"fmt"
)

// Sentinel errors for comparison using errors.Is().
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNullReference     = errors.New("missing reference")
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindInsufficientStock
	KindEmptyCart
	KindNullReference
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindInsufficientStock:
		return "INSUFFICIENT_STOCK"
	case KindEmptyCart:
		return "EMPTY_CART"
	case KindNullReference:
		return "NULL_REFERENCE"
	default:
		return "UNKNOWN"
	}
}

// KindOf classifies err by the sentinel it wraps.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInsufficientStock):
		return KindInsufficientStock
	case errors.Is(err, ErrEmptyCart):
		return KindEmptyCart
	case errors.Is(err, ErrNullReference):
		return KindNullReference
	default:
		return KindUnknown
	}
}

// InsufficientStockError reports a request for more units than an item holds.
type InsufficientStockError struct {
	ItemID    int
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %d: available %d, requested %d",
		e.ItemID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func nullReference(msg string) error {
	return fmt.Errorf("%w: %s", ErrNullReference, msg)
}

func errEmptyCart() error {
	return fmt.Errorf("%w: cannot checkout an empty shopping cart", ErrEmptyCart)
}
