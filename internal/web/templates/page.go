// Package templates holds the templ components of the HTTP view.
package templates

import "github.com/JonMunkholm/pricelist/internal/core"

//go:generate templ generate

// PageData is what the catalog page shows.
type PageData struct {
	Query    string
	Total    int // products in the whole catalog
	Products []core.Product
}
