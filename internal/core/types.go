package core

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Product is one priced item from one source file.
type Product struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Weight     float64 `json:"weight"`      // kilograms
	SourceFile string  `json:"source_file"` // base name, not path
	UnitPrice  float64 `json:"unit_price"`  // price per kilogram, 2 decimals
}

// NewProduct builds a Product and derives its unit price.
func NewProduct(name string, price, weight float64, sourceFile string) (Product, error) {
	unit, err := UnitPrice(price, weight)
	if err != nil {
		return Product{}, err
	}
	return Product{
		Name:       name,
		Price:      price,
		Weight:     weight,
		SourceFile: sourceFile,
		UnitPrice:  unit,
	}, nil
}

// exactExponent is the smallest binary exponent of a float64; converting with
// it keeps every bit of the value.
const exactExponent = -1074

// UnitPrice returns price/weight rounded half to even to 2 places. Rounding
// applies to the exact binary quotient, so 0.615 (stored just below the tie)
// becomes 0.61 and 0.125 (an exact tie) becomes 0.12.
func UnitPrice(price, weight float64) (float64, error) {
	if !finite(price) || !finite(weight) {
		return 0, ErrMalformedNumber
	}
	if weight == 0 {
		return 0, ErrZeroWeight
	}
	q := price / weight
	if !finite(q) {
		return 0, ErrMalformedNumber
	}
	f, _ := decimal.NewFromFloatWithExponent(q, exactExponent).RoundBank(2).Float64()
	return f, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Field identifies one of the columns every price list must provide.
type Field int

const (
	FieldName Field = iota
	FieldPrice
	FieldWeight

	fieldCount
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldPrice:
		return "price"
	case FieldWeight:
		return "weight"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// HeaderMapping holds the column index of each Field, resolved per file.
type HeaderMapping [fieldCount]int

// Index returns the column position of f.
func (m HeaderMapping) Index(f Field) int {
	return m[f]
}

// minColumns is the number of fields a row needs for every mapped index to exist.
func (m HeaderMapping) minColumns() int {
	highest := 0
	for _, idx := range m {
		if idx > highest {
			highest = idx
		}
	}
	return highest + 1
}

// ErrorPolicy decides how a load pass reacts to bad input.
type ErrorPolicy string

const (
	PolicyFail     ErrorPolicy = "fail"
	PolicySkipRow  ErrorPolicy = "skip-row"
	PolicySkipFile ErrorPolicy = "skip-file"
)

// ParsePolicy converts a configured policy name. Empty means PolicyFail.
func ParsePolicy(s string) (ErrorPolicy, error) {
	switch ErrorPolicy(s) {
	case "", PolicyFail:
		return PolicyFail, nil
	case PolicySkipRow:
		return PolicySkipRow, nil
	case PolicySkipFile:
		return PolicySkipFile, nil
	default:
		return "", fmt.Errorf("unknown error policy %q", s)
	}
}

// LoadIssue describes input skipped by a tolerant load pass.
// Line is zero when the whole file was skipped.
type LoadIssue struct {
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	Reason string `json:"reason"`
}

// FileResult summarizes one file of a load pass.
type FileResult struct {
	Name     string `json:"name"`
	Products int    `json:"products"`
	Skipped  int    `json:"skipped_rows"`
	Failed   bool   `json:"failed"`
}

// LoadResult contains the outcome of one load pass.
type LoadResult struct {
	PassID   string        `json:"pass_id"`
	Dir      string        `json:"dir"`
	Files    []FileResult  `json:"files"`
	Products []Product     `json:"products"`
	Issues   []LoadIssue   `json:"issues,omitempty"`
	Duration time.Duration `json:"duration"`
}
