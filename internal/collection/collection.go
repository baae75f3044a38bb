// Package collection provides the growable, order-preserving list used for
// the repository's accounts and for every collection an account owns.
//
// Capacity is tracked explicitly: when an append would overflow it, the
// collection grows to cap*2+1. An optional maximum capacity bounds that growth,
// and a growth that cannot be satisfied fails without modifying the collection.
// When a key function is supplied, keys are unique and lookups or removals by
// key are available; removal left-shifts the remaining items so they stay dense.
package collection

import "errors"

var (
	ErrDuplicateKey = errors.New("collection: duplicate key")
	ErrNotFound     = errors.New("collection: item not found")
	ErrGrowthFailed = errors.New("collection: growth failed")
	ErrUnkeyed      = errors.New("collection: collection has no key function")
)

// KeyFunc extracts the unique key of an item.
type KeyFunc[T any] func(T) string

type options struct {
	maxCapacity int
}

// Option configures a Collection.
type Option func(*options)

// WithMaxCapacity bounds growth. Zero means unbounded; a negative value
// fixes the collection at its initial capacity.
func WithMaxCapacity(max int) Option {
	return func(o *options) {
		o.maxCapacity = max
	}
}

type Collection[T any] struct {
	items       []T
	capacity    int
	maxCapacity int
	key         KeyFunc[T]
}

// New creates an empty collection with the given initial capacity. key may be
// nil, in which case no uniqueness is enforced.
func New[T any](capacity int, key KeyFunc[T], opts ...Option) *Collection[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if capacity < 0 {
		capacity = 0
	}
	if o.maxCapacity > 0 && capacity > o.maxCapacity {
		capacity = o.maxCapacity
	}
	return &Collection[T]{
		items:       make([]T, 0, capacity),
		capacity:    capacity,
		maxCapacity: o.maxCapacity,
		key:         key,
	}
}

// Append adds item at the end, growing the collection when it is full.
func (c *Collection[T]) Append(item T) error {
	if c.key != nil {
		k := c.key(item)
		if _, ok := c.indexOf(k); ok {
			return ErrDuplicateKey
		}
	}

	if len(c.items) >= c.capacity {
		if err := c.grow(); err != nil {
			return err
		}
	}

	c.items = append(c.items, item)
	return nil
}

func (c *Collection[T]) grow() error {
	if c.maxCapacity < 0 {
		return ErrGrowthFailed
	}
	newCapacity := c.capacity*2 + 1
	if c.maxCapacity > 0 && newCapacity > c.maxCapacity {
		newCapacity = c.maxCapacity
	}
	if newCapacity <= len(c.items) {
		return ErrGrowthFailed
	}

	grown := make([]T, len(c.items), newCapacity)
	copy(grown, c.items)
	c.items = grown
	c.capacity = newCapacity
	return nil
}

// Remove deletes the item stored under key and returns it.
func (c *Collection[T]) Remove(key string) (T, error) {
	var zero T
	if c.key == nil {
		return zero, ErrUnkeyed
	}

	i, ok := c.indexOf(key)
	if !ok {
		return zero, ErrNotFound
	}

	removed := c.items[i]
	copy(c.items[i:], c.items[i+1:])
	c.items[len(c.items)-1] = zero
	c.items = c.items[:len(c.items)-1]
	return removed, nil
}

// Find returns the first item matching key.
func (c *Collection[T]) Find(key string) (T, bool) {
	var zero T
	if c.key == nil {
		return zero, false
	}
	i, ok := c.indexOf(key)
	if !ok {
		return zero, false
	}
	return c.items[i], true
}

// FindFunc returns the first item for which match reports true.
func (c *Collection[T]) FindFunc(match func(T) bool) (T, bool) {
	for _, item := range c.items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Contains reports whether an item is stored under key.
func (c *Collection[T]) Contains(key string) bool {
	_, ok := c.Find(key)
	return ok
}

// At returns the item at index i.
func (c *Collection[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(c.items) {
		return zero, false
	}
	return c.items[i], true
}

// Last returns the most recently appended item.
func (c *Collection[T]) Last() (T, bool) {
	return c.At(len(c.items) - 1)
}

// Items returns a copy of the stored items in insertion order.
func (c *Collection[T]) Items() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Len() int {
	return len(c.items)
}

func (c *Collection[T]) Cap() int {
	return c.capacity
}

func (c *Collection[T]) IsFull() bool {
	return len(c.items) >= c.capacity
}

// Clear empties the collection and keeps its capacity. release, if not nil,
// is called for every item before it is dropped.
func (c *Collection[T]) Clear(release func(T)) {
	var zero T
	for i, item := range c.items {
		if release != nil {
			release(item)
		}
		c.items[i] = zero
	}
	c.items = c.items[:0]
}

func (c *Collection[T]) indexOf(key string) (int, bool) {
	for i, item := range c.items {
		if c.key(item) == key {
			return i, true
		}
	}
	return -1, false
}
