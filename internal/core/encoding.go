package core

// encoding.go turns raw price-list bytes into UTF-8 text.
//
// Files exported from Windows spreadsheets commonly carry a UTF-8 BOM or are
// written in a legacy Cyrillic code page. The decoder is chosen once per
// Loader from a WHATWG label:
//
//   - "utf-8" (default): BOM stripped, invalid bytes become U+FFFD
//   - "windows-1251", "koi8-r", ...: decoded through the matching charmap

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LookupEncoding resolves a charset label.
func LookupEncoding(label string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	return enc, nil
}

// NewDecodingReader wraps r so that reads yield UTF-8.
func NewDecodingReader(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, enc.NewDecoder())
}
