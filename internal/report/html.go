package report

import (
	"context"
	"fmt"
	"os"

	"github.com/JonMunkholm/pricelist/internal/core"
)

//go:generate templ generate

// WriteHTMLFile writes Document(products) to path, replacing any existing file.
func WriteHTMLFile(ctx context.Context, path string, products []core.Product) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Document(products).Render(ctx, f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}
