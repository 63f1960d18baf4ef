package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/pricelist/internal/core"
)

// SheetName is the worksheet holding the exported products.
const SheetName = "Products"

// NewWorkbook builds a workbook with one sheet: the document captions in
// row 1 and one row per product below. Numbers are stored as numbers.
// The caller must Close the returned file.
func NewWorkbook(products []core.Product) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(DocumentHeaders))
	for i, h := range DocumentHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		err = f.SetRowStyle(SheetName, 1, 1, bold)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []any{i, p.Name, p.Price, p.Weight, p.SourceFile, p.UnitPrice}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.SetColWidth(SheetName, "B", "B", 32); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// WriteXLSX streams the workbook for products to w.
func WriteXLSX(w io.Writer, products []core.Product) error {
	f, err := NewWorkbook(products)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteXLSXFile saves the workbook for products to path, replacing any
// existing file.
func WriteXLSXFile(path string, products []core.Product) error {
	f, err := NewWorkbook(products)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
