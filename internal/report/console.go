package report

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/JonMunkholm/pricelist/internal/core"
)

// consoleStyle is the ASCII box style with captions printed as given.
func consoleStyle() table.Style {
	style := table.StyleDefault
	style.Format.Header = text.FormatDefault
	return style
}

// NewProductTable builds the console table for products, numbering rows
// from zero in the given order. Every column is centered.
//
//	+---+--------------+-------+
//	| № | Наименование |  цена | ...
//	+---+--------------+-------+
//	| 0 |     Apple    | 100.0 | ...
//	+---+--------------+-------+
func NewProductTable(products []core.Product) table.Writer {
	t := table.NewWriter()
	t.SetStyle(consoleStyle())

	configs := make([]table.ColumnConfig, len(ConsoleHeaders))
	for i := range ConsoleHeaders {
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignCenter,
			AlignHeader: text.AlignCenter,
		}
	}
	t.SetColumnConfigs(configs)

	t.AppendHeader(toRow(ConsoleHeaders))
	for i, p := range products {
		t.AppendRow(toRow(Row(i, p)))
	}
	return t
}

// WriteProductTable renders the product table to w, ending with a newline.
func WriteProductTable(w io.Writer, products []core.Product) error {
	_, err := io.WriteString(w, NewProductTable(products).Render()+"\n")
	return err
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
