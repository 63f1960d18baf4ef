package core

import (
	"fmt"
	"slices"
	"strings"
)

// headerSynonyms lists the accepted header texts per field. Matching is
// exact and case-sensitive.
var headerSynonyms = [fieldCount][]string{
	FieldName:   {"название", "продукт", "товар", "наименование"},
	FieldPrice:  {"цена", "розница"},
	FieldWeight: {"фасовка", "масса", "вес"},
}

// Synonyms returns the header texts accepted for f.
func Synonyms(f Field) []string {
	if f < 0 || f >= fieldCount {
		return nil
	}
	return slices.Clone(headerSynonyms[f])
}

// ResolveHeaders locates the name, price and weight columns in a header row.
//
// Columns are scanned left to right. When several columns match the same
// field the last one wins. If any field is left unmatched the result is an
// error wrapping ErrMissingColumn and no partial mapping is returned.
func ResolveHeaders(headers []string) (HeaderMapping, error) {
	m := HeaderMapping{-1, -1, -1}

	for col, h := range headers {
		for f, names := range headerSynonyms {
			if slices.Contains(names, h) {
				m[f] = col
			}
		}
	}

	var missing []string
	for f, idx := range m {
		if idx < 0 {
			missing = append(missing, Field(f).String())
		}
	}
	if len(missing) > 0 {
		return HeaderMapping{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return m, nil
}
