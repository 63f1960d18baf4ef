// Package report renders products for people: a bordered console table,
// a static HTML document and an XLSX workbook. All three share the same
// six columns and number formatting.
package report

import (
	"math"
	"strconv"
	"strings"

	"github.com/JonMunkholm/pricelist/internal/core"
)

// Column captions.
var (
	ConsoleHeaders  = []string{"№", "Наименование", "цена", "вес", "файл", "цена за кг"}
	DocumentHeaders = []string{"Номер", "Название", "Цена", "Фасовка", "Файл", "Цена за кг"}
)

// DocumentTitle is the <title> of the HTML export.
const DocumentTitle = "Позиции продуктов"

// FormatNumber renders f the way price lists are shown to users: the
// shortest representation that round-trips, always with a fractional part
// ("100.0", "2.5"), switching to exponent form below 1e-4 and from 1e16 up.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Row returns the six display cells of p at zero-based position index.
func Row(index int, p core.Product) []string {
	return []string{
		strconv.Itoa(index),
		p.Name,
		FormatNumber(p.Price),
		FormatNumber(p.Weight),
		p.SourceFile,
		FormatNumber(p.UnitPrice),
	}
}
