package core

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// ============================================================================
// Row Parsing Benchmarks
// ============================================================================

// BenchmarkParseNumber benchmarks price and weight parsing.
// This runs twice per data row.
func BenchmarkParseNumber(b *testing.B) {
	testCases := []string{
		"100",
		"45.5",
		" 0.25 ",
		"1e3",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			parseNumber(tc)
		}
	}
}

// BenchmarkUnitPrice benchmarks the decimal division and rounding.
func BenchmarkUnitPrice(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		UnitPrice(45.5, 0.35)
	}
}

// BenchmarkResolveHeaders benchmarks header resolution on a wide header row.
func BenchmarkResolveHeaders(b *testing.B) {
	headers := make([]string, 0, 40)
	for i := 0; i < 37; i++ {
		headers = append(headers, fmt.Sprintf("col%d", i))
	}
	headers = append(headers, "наименование", "розница", "вес")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ResolveHeaders(headers)
	}
}

// ============================================================================
// File Parsing Benchmarks
// ============================================================================

// BenchmarkParse benchmarks parsing a price list held in memory.
func BenchmarkParse(b *testing.B) {
	l, _ := NewLoader(LoaderOptions{})
	data := generatePriceList(1000)
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Parse(ctx, bytes.NewReader(data), "price.csv")
	}
}

// BenchmarkLoad_Workers compares sequential and parallel load passes.
func BenchmarkLoad_Workers(b *testing.B) {
	dir := b.TempDir()
	data := generatePriceList(2000)
	for i := 0; i < 8; i++ {
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("price_%d.csv", i)), data, 0o644); err != nil {
			b.Fatal(err)
		}
	}

	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			l, _ := NewLoader(LoaderOptions{Workers: workers})
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := l.Load(context.Background(), dir); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// ============================================================================
// Search Benchmarks
// ============================================================================

// BenchmarkSearch benchmarks a case-insensitive search over a large catalog.
func BenchmarkSearch(b *testing.B) {
	c := NewCatalog()
	for i := 0; i < 10000; i++ {
		c.Append(Product{Name: fmt.Sprintf("Товар номер %d", i), Price: 1, Weight: 1, UnitPrice: float64(i % 97)})
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		SortByUnitPrice(c.Search("НОМЕР 12"))
	}
}

// ============================================================================
// Helper Functions
// ============================================================================

// generatePriceList generates a price list with the specified number of rows.
func generatePriceList(rows int) []byte {
	var buf bytes.Buffer
	buf.WriteString("наименование,поставщик,розница,фасовка\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&buf, "Продукт %d,ООО Ромашка,%d.50,0.%d\n", i, 10+i%90, 1+i%9)
	}
	return buf.Bytes()
}
