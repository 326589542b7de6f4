package retail

import "sync"

// Container is an insertion-ordered collection with linear lookup. It backs
// both the catalog and the entries of a cart.
type Container[T any] struct {
	mu    sync.RWMutex
	items []T
	equal func(a, b T) bool
}

// NewContainer creates an empty container that compares elements with equal.
func NewContainer[T any](equal func(a, b T) bool) *Container[T] {
	return &Container[T]{equal: equal}
}

// Equal is the identity comparison for comparable element types.
func Equal[T comparable](a, b T) bool {
	return a == b
}

func (c *Container[T]) Add(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// Remove deletes the first element equal to item and reports whether one was found.
func (c *Container[T]) Remove(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.items {
		if c.equal(existing, item) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Container[T]) Contains(item T) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, existing := range c.items {
		if c.equal(existing, item) {
			return true
		}
	}
	return false
}

// FindBy returns the first element matching pred.
func (c *Container[T]) FindBy(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, existing := range c.items {
		if pred(existing) {
			return existing, true
		}
	}
	var zero T
	return zero, false
}

// All returns a snapshot of the elements in insertion order.
func (c *Container[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Container[T]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Container[T]) IsEmpty() bool {
	return c.Size() == 0
}

// Reset drops every element.
func (c *Container[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
