package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func newTestLoader(t *testing.T, opts LoaderOptions) *Loader {
	t.Helper()
	l, err := NewLoader(opts)
	require.NoError(t, err)
	return l
}

func names(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestNewLoader_Defaults(t *testing.T) {
	l := newTestLoader(t, LoaderOptions{})
	assert.Equal(t, DefaultKeyword, l.keyword)
	assert.Equal(t, PolicyFail, l.policy)
	assert.Equal(t, 1, l.workers)
}

func TestNewLoader_InvalidOptions(t *testing.T) {
	_, err := NewLoader(LoaderOptions{Encoding: "klingon"})
	assert.ErrorContains(t, err, "unsupported encoding")

	_, err = NewLoader(LoaderOptions{Policy: "retry"})
	assert.ErrorContains(t, err, "unknown error policy")
}

func TestDiscover(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b_price.csv":   "",
		"a_price.txt":   "",
		"Price.csv":     "",
		"inventory.csv": "",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old_prices"), 0o755))

	got, err := newTestLoader(t, LoaderOptions{}).Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a_price.txt", "b_price.csv"}, got)
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := newTestLoader(t, LoaderOptions{}).Discover(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_SingleFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"price_1.csv": "название,цена,фасовка\nApple,100,2\n",
	})

	result, err := newTestLoader(t, LoaderOptions{}).Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, result.Products, 1)
	assert.Equal(t, Product{Name: "Apple", Price: 100, Weight: 2, SourceFile: "price_1.csv", UnitPrice: 50}, result.Products[0])
	assert.Equal(t, []FileResult{{Name: "price_1.csv", Products: 1}}, result.Files)
	assert.Empty(t, result.Issues)
	assert.NotEmpty(t, result.PassID)
	assert.Equal(t, dir, result.Dir)
}

func TestLoad_NoMatchingFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{"stock.csv": "название,цена,фасовка\nApple,100,2\n"})

	result, err := newTestLoader(t, LoaderOptions{}).Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, result.Products)
	assert.Empty(t, result.Files)
}

func TestLoad_OrderAcrossFiles(t *testing.T) {
	files := map[string]string{
		"price_a.csv": "товар,масса,розница\nA1,1,10\nA2,2,10\n",
		"price_b.csv": "название,цена,вес\nB1,10,1\n",
		"price_c.csv": "продукт,цена,фасовка\nC1,3,1\nC2,4,1\nC3,5,1\n",
	}

	for _, workers := range []int{1, 4} {
		dir := writeFiles(t, files)
		result, err := newTestLoader(t, LoaderOptions{Workers: workers}).Load(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"A1", "A2", "B1", "C1", "C2", "C3"}, names(result.Products), "workers=%d", workers)
	}
}

func TestLoad_ReorderedHeaders(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"price.csv": "товар,масса,розница\nSugar,0.5,45\n",
	})

	result, err := newTestLoader(t, LoaderOptions{}).Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	p := result.Products[0]
	assert.Equal(t, 45.0, p.Price)
	assert.Equal(t, 0.5, p.Weight)
	assert.Equal(t, 90.0, p.UnitPrice)
}

func TestLoad_FailPolicy(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		wantMsg string
	}{
		{"missing column", "название,цена\nApple,100\n", ErrMissingColumn, "price.csv"},
		{"empty file", "", ErrMissingColumn, "price.csv"},
		{"malformed price", "название,цена,фасовка\nApple,abc,2\n", ErrMalformedNumber, "line 2"},
		{"zero weight", "название,цена,фасовка\nApple,1,2\nAir,1,0\n", ErrZeroWeight, "line 3"},
		{"short row", "название,цена,фасовка\nApple,100\n", ErrShortRow, "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{
				"a_price.csv": "название,цена,фасовка\nGood,1,1\n",
				"price.csv":   tt.content,
			})

			result, err := newTestLoader(t, LoaderOptions{}).Load(context.Background(), dir)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Nil(t, result)
		})
	}
}

func TestLoad_SkipRowPolicy(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"price_1.csv": "название,цена,фасовка\nApple,100,2\nBad,x,1\nAir,1,0\nShort\nPear,30,1\n",
		"price_2.csv": "name,price,weight\nOops,1,1\n",
	})

	result, err := newTestLoader(t, LoaderOptions{Policy: PolicySkipRow}).Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Apple", "Pear"}, names(result.Products))
	assert.Equal(t, []FileResult{
		{Name: "price_1.csv", Products: 2, Skipped: 3},
		{Name: "price_2.csv", Failed: true},
	}, result.Files)

	require.Len(t, result.Issues, 4)
	assert.Equal(t, 3, result.Issues[0].Line)
	assert.Contains(t, result.Issues[0].Reason, "invalid number")
	assert.Equal(t, 4, result.Issues[1].Line)
	assert.Equal(t, 5, result.Issues[2].Line)
	assert.Equal(t, "price_2.csv", result.Issues[3].File)
	assert.Zero(t, result.Issues[3].Line)
	assert.Contains(t, result.Issues[3].Reason, "missing required column")
}

func TestLoad_SkipFilePolicy(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"price_1.csv": "название,цена,фасовка\nApple,100,2\nAir,1,0\n",
		"price_2.csv": "название,цена,фасовка\nPear,30,1\n",
	})

	result, err := newTestLoader(t, LoaderOptions{Policy: PolicySkipFile}).Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Pear"}, names(result.Products))
	require.Len(t, result.Issues, 1)
	assert.Equal(t, LoadIssue{File: "price_1.csv", Line: 3, Reason: "zero weight"}, result.Issues[0])
	assert.True(t, result.Files[0].Failed)
}

func TestLoad_Cancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"price.csv": "название,цена,фасовка\nApple,100,2\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestLoader(t, LoaderOptions{Policy: PolicySkipFile}).Load(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParse_CancelledMidFile(t *testing.T) {
	var b strings.Builder
	b.WriteString("название,цена,фасовка\n")
	for i := 0; i < 2*ContextCheckInterval; i++ {
		b.WriteString("Apple,100,2\n")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	products, _, err := newTestLoader(t, LoaderOptions{}).Parse(ctx, strings.NewReader(b.String()), "price.csv")
	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "price.csv line 100")
	assert.Nil(t, products)
}

func TestParse(t *testing.T) {
	l := newTestLoader(t, LoaderOptions{})

	t.Run("blank lines and trailing whitespace", func(t *testing.T) {
		input := "название,цена,фасовка \r\nApple,100,2\r\n\r\n  \nPear, 30 ,1.5\t\n"
		products, issues, err := l.Parse(context.Background(), strings.NewReader(input), "price.csv")
		require.NoError(t, err)
		assert.Empty(t, issues)
		require.Len(t, products, 2)
		assert.Equal(t, "Pear", products[1].Name)
		assert.Equal(t, 30.0, products[1].Price)
		assert.Equal(t, 20.0, products[1].UnitPrice)
	})

	t.Run("line ends are trimmed but inner fields are not", func(t *testing.T) {
		input := "название,цена,фасовка\n  Green Tea ,10,1\t\n"
		products, _, err := l.Parse(context.Background(), strings.NewReader(input), "price.csv")
		require.NoError(t, err)
		assert.Equal(t, "Green Tea ", products[0].Name)
		assert.Equal(t, 10.0, products[0].UnitPrice)
	})

	t.Run("header with leading whitespace resolves", func(t *testing.T) {
		input := " название,цена,фасовка\nApple,100,2\n"
		products, _, err := l.Parse(context.Background(), strings.NewReader(input), "price.csv")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Apple", products[0].Name)
		assert.Equal(t, 50.0, products[0].UnitPrice)
	})

	t.Run("utf-8 bom is stripped", func(t *testing.T) {
		input := "\xEF\xBB\xBFназвание,цена,фасовка\nApple,100,2\n"
		products, _, err := l.Parse(context.Background(), strings.NewReader(input), "price.csv")
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("quoted comma is not special", func(t *testing.T) {
		input := "название,цена,фасовка\n\"Nuts, salted\",10,1\n"
		_, _, err := l.Parse(context.Background(), strings.NewReader(input), "price.csv")
		assert.ErrorIs(t, err, ErrMalformedNumber)
	})
}

func TestParse_Windows1251(t *testing.T) {
	raw, err := charmap.Windows1251.NewEncoder().String("товар,цена,вес\nСахар,90,1\n")
	require.NoError(t, err)

	l := newTestLoader(t, LoaderOptions{Encoding: "windows-1251"})
	products, _, err := l.Parse(context.Background(), strings.NewReader(raw), "price.csv")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Сахар", products[0].Name)
}

func TestParseNumber(t *testing.T) {
	valid := map[string]float64{
		"2":     2,
		" 2.5 ": 2.5,
		"1e2":   100,
		"-3":    -3,
		".5":    0.5,
	}
	for in, want := range valid {
		got, err := parseNumber(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "abc", "1,5", "NaN", "inf", "12kg"} {
		_, err := parseNumber(in)
		assert.ErrorIs(t, err, ErrMalformedNumber, in)
	}
}
