package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/pricelist/internal/config"
	"github.com/JonMunkholm/pricelist/internal/core"
)

func TestExport(t *testing.T) {
	dir := t.TempDir()
	cfg := config.ExportConfig{
		HTMLPath: filepath.Join(dir, "output.html"),
		XLSXPath: filepath.Join(dir, "output.xlsx"),
	}
	products := []core.Product{{Name: "Apple", Price: 100, Weight: 2, SourceFile: "price.csv", UnitPrice: 50}}

	require.NoError(t, export(context.Background(), cfg, products))

	html, err := os.ReadFile(cfg.HTMLPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<td>Apple</td>")
	assert.FileExists(t, cfg.XLSXPath)
}

func TestExport_HTMLOnly(t *testing.T) {
	dir := t.TempDir()
	cfg := config.ExportConfig{HTMLPath: filepath.Join(dir, "output.html")}

	require.NoError(t, export(context.Background(), cfg, nil))
	assert.FileExists(t, cfg.HTMLPath)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
