package core

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WorkbookExt is the extension of price lists stored as spreadsheets.
const WorkbookExt = ".xlsx"

func isWorkbook(name string) bool {
	return strings.EqualFold(filepath.Ext(name), WorkbookExt)
}

// ParseWorkbook reads a price list from the first sheet of an XLSX
// workbook. Row 1 is the header row; rows follow the same rules as Parse.
// Cell values are taken raw, without number formats applied.
func (l *Loader) ParseWorkbook(ctx context.Context, r io.Reader, sourceFile string) ([]Product, []LoadIssue, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, &FileError{File: sourceFile, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, &FileError{File: sourceFile, Err: fmt.Errorf("%w: workbook has no sheets", ErrMissingColumn)}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, &FileError{File: sourceFile, Err: fmt.Errorf("read sheet %s: %w", sheets[0], err)}
	}

	return l.parseRecords(ctx, &sheetSource{rows: rows}, sourceFile)
}

// sheetSource walks rows already read from a worksheet.
type sheetSource struct {
	rows [][]string
	pos  int
}

func (s *sheetSource) Next() bool {
	if s.pos >= len(s.rows) {
		return false
	}
	s.pos++
	return true
}

func (s *sheetSource) Record() (int, []string) {
	fields := s.rows[s.pos-1]
	if s.pos > 1 && blankRow(fields) {
		return s.pos, nil
	}
	return s.pos, fields
}

func (s *sheetSource) Err() error {
	return nil
}

func blankRow(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
