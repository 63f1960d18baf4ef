package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func product(name string, unit float64) Product {
	return Product{Name: name, Price: unit, Weight: 1, SourceFile: "price.csv", UnitPrice: unit}
}

func TestCatalogAppend(t *testing.T) {
	c := NewCatalog()
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Products())

	c.Append(product("A", 1), product("B", 2))
	c.Append()
	c.Append(product("A", 1))

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"A", "B", "A"}, names(c.Products()))
}

func TestCatalogProductsIsSnapshot(t *testing.T) {
	c := NewCatalog()
	c.Append(product("A", 1))

	snap := c.Products()
	snap[0].Name = "changed"

	assert.Equal(t, "A", c.Products()[0].Name)
}

func TestCatalogConcurrentAppend(t *testing.T) {
	c := NewCatalog()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Append(product("x", 1))
			_ = c.Search("x")
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, c.Len())
}

func TestCatalogSearch(t *testing.T) {
	c := NewCatalog()
	c.Append(
		product("APPLE Juice", 3),
		product("Pear", 1),
		product("Green apple", 2),
		product("Яблоко", 4),
	)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query returns all", "", []string{"APPLE Juice", "Pear", "Green apple", "Яблоко"}},
		{"case insensitive", "apple", []string{"APPLE Juice", "Green apple"}},
		{"upper query", "PEAR", []string{"Pear"}},
		{"cyrillic case folding", "ЯБЛ", []string{"Яблоко"}},
		{"no match", "banana", []string{}},
		{"substring in middle", "n a", []string{"Green apple"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(c.Search(tt.query)))
		})
	}
}

func TestFilterByName_NoMatchIsEmptyNotNil(t *testing.T) {
	got := FilterByName([]Product{product("Pear", 1)}, "plum")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSortByUnitPrice(t *testing.T) {
	products := []Product{product("c", 30), product("a", 10), product("b", 20)}
	SortByUnitPrice(products)
	assert.Equal(t, []string{"a", "b", "c"}, names(products))
}

func TestSortByUnitPrice_Stable(t *testing.T) {
	products := []Product{product("first", 5), product("cheap", 1), product("second", 5), product("third", 5)}
	SortByUnitPrice(products)
	assert.Equal(t, []string{"cheap", "first", "second", "third"}, names(products))
}
