package core

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Search returns the products whose name contains query, ignoring case,
// in catalog order. An empty query returns the whole catalog.
func (c *Catalog) Search(query string) []Product {
	products := c.Products()
	if query == "" {
		return products
	}
	return FilterByName(products, query)
}

// FilterByName keeps the products whose lower-cased name contains the
// lower-cased query. Order is preserved.
func FilterByName(products []Product, query string) []Product {
	lower := cases.Lower(language.Und)
	needle := lower.String(query)

	result := make([]Product, 0)
	for _, p := range products {
		if strings.Contains(lower.String(p.Name), needle) {
			result = append(result, p)
		}
	}
	return result
}

// SortByUnitPrice orders products by ascending unit price in place.
// Products with equal unit prices keep their relative order.
func SortByUnitPrice(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].UnitPrice < products[j].UnitPrice
	})
}
