package core

import (
	"slices"
	"sync"
)

// Catalog is the ordered, append-only collection of every product loaded
// during a session. It is safe for concurrent use; readers always receive
// a copy.
type Catalog struct {
	mu       sync.RWMutex
	products []Product
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Append adds products after the existing ones, in the given order.
// Nothing is deduplicated.
func (c *Catalog) Append(products ...Product) {
	if len(products) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = append(c.products, products...)
}

// Products returns a snapshot of the catalog in insertion order.
func (c *Catalog) Products() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.products)
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.products)
}
