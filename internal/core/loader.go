package core

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"

	"github.com/JonMunkholm/pricelist/internal/logging"
)

// DefaultKeyword is the substring a file name must contain to be loaded.
const DefaultKeyword = "price"

// ContextCheckInterval is how often (in lines) parsing checks for cancellation.
const ContextCheckInterval = 100

// maxLineSize bounds a single line of a price list.
const maxLineSize = 1 << 20

// LoaderOptions configures a Loader. Zero values select the defaults.
type LoaderOptions struct {
	Keyword  string      // default: DefaultKeyword
	Encoding string      // WHATWG label, default: utf-8
	Policy   ErrorPolicy // default: PolicyFail
	Workers  int         // files parsed in parallel, default: 1
}

// Loader discovers and parses price lists.
type Loader struct {
	keyword string
	policy  ErrorPolicy
	workers int
	enc     encoding.Encoding
}

// NewLoader validates opts and returns a ready Loader.
func NewLoader(opts LoaderOptions) (*Loader, error) {
	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	policy, err := ParsePolicy(string(opts.Policy))
	if err != nil {
		return nil, err
	}

	l := &Loader{
		keyword: opts.Keyword,
		policy:  policy,
		workers: opts.Workers,
		enc:     enc,
	}
	if l.keyword == "" {
		l.keyword = DefaultKeyword
	}
	if l.workers < 1 {
		l.workers = 1
	}
	return l, nil
}

// Discover returns the names of the entries of dir that qualify as price
// lists: non-directories whose name contains the keyword. Names come back in
// directory order.
func (l *Loader) Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.Contains(entry.Name(), l.keyword) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// fileOutcome is what parsing one file produced.
type fileOutcome struct {
	result   FileResult
	products []Product
	issues   []LoadIssue
}

// Load runs one load pass over dir and returns everything it parsed.
// The caller decides where the products go; Load itself has no side effects
// beyond reading files.
func (l *Loader) Load(ctx context.Context, dir string) (*LoadResult, error) {
	start := time.Now()
	passID := uuid.New().String()
	logger := logging.WithFields(ctx, "pass_id", passID, "dir", dir)

	names, err := l.Discover(dir)
	if err != nil {
		return nil, err
	}
	logger.Info("load started", "files", len(names), "policy", l.policy, "workers", l.workers)

	outcomes := make([]fileOutcome, len(names))
	errs := make([]error, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for i, name := range names {
		g.Go(func() error {
			out, err := l.loadFile(gctx, filepath.Join(dir, name), name, logger)
			if err == nil {
				outcomes[i] = out
				return nil
			}

			if l.policy == PolicyFail || isCancellation(err) {
				errs[i] = err
				return err
			}

			issue := issueFromError(name, err)
			logger.Warn("file skipped", "file", name, "line", issue.Line, "reason", issue.Reason)
			outcomes[i] = fileOutcome{
				result: FileResult{Name: name, Failed: true},
				issues: append(out.issues, issue),
			}
			return nil
		})
	}

	if waitErr := g.Wait(); waitErr != nil {
		err := firstError(errs, waitErr)
		logger.Warn("load aborted", "error", err)
		return nil, err
	}

	result := &LoadResult{PassID: passID, Dir: dir}
	for _, out := range outcomes {
		result.Files = append(result.Files, out.result)
		result.Products = append(result.Products, out.products...)
		result.Issues = append(result.Issues, out.issues...)
	}
	result.Duration = time.Since(start)

	logger.Info("load finished",
		"products", len(result.Products),
		"issues", len(result.Issues),
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// firstError picks the error of the earliest file in discovery order,
// ignoring cancellations caused by another file failing first.
func firstError(errs []error, fallback error) error {
	for _, err := range errs {
		if err != nil && !isCancellation(err) {
			return err
		}
	}
	return fallback
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (l *Loader) loadFile(ctx context.Context, path, name string, logger *slog.Logger) (fileOutcome, error) {
	if err := ctx.Err(); err != nil {
		return fileOutcome{}, fmt.Errorf("operation cancelled: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fileOutcome{}, &FileError{File: name, Err: err}
	}
	defer f.Close()

	var (
		products []Product
		issues   []LoadIssue
	)
	if isWorkbook(name) {
		products, issues, err = l.ParseWorkbook(ctx, f, name)
	} else {
		products, issues, err = l.Parse(ctx, f, name)
	}
	if err != nil {
		return fileOutcome{issues: issues}, err
	}

	for _, issue := range issues {
		logger.Warn("row skipped", "file", name, "line", issue.Line, "reason", issue.Reason)
	}
	logger.Debug("file parsed", "file", name, "products", len(products), "skipped", len(issues))

	return fileOutcome{
		result:   FileResult{Name: name, Products: len(products), Skipped: len(issues)},
		products: products,
		issues:   issues,
	}, nil
}

// Parse reads one comma-separated price list from r. The first line is the
// header row; every following non-blank line is a product. sourceFile is
// recorded on each product.
//
// Under PolicySkipRow a bad row is returned as an issue and parsing goes
// on. Under any other policy the first bad row ends parsing with a
// *RowError. A bad header always yields a *FileError.
func (l *Loader) Parse(ctx context.Context, r io.Reader, sourceFile string) ([]Product, []LoadIssue, error) {
	return l.parseRecords(ctx, newTextSource(r, l.enc), sourceFile)
}

func (l *Loader) parseRecords(ctx context.Context, src recordSource, sourceFile string) ([]Product, []LoadIssue, error) {
	var header []string
	if src.Next() {
		_, header = src.Record()
	}
	if err := src.Err(); err != nil {
		return nil, nil, &FileError{File: sourceFile, Err: fmt.Errorf("reading header: %w", err)}
	}

	mapping, err := ResolveHeaders(header)
	if err != nil {
		return nil, nil, &FileError{File: sourceFile, Err: err}
	}
	minCols := mapping.minColumns()

	var (
		products []Product
		issues   []LoadIssue
	)
	for src.Next() {
		lineNum, fields := src.Record()
		if lineNum%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, issues, fmt.Errorf("operation cancelled at %s line %d: %w", sourceFile, lineNum, err)
			}
		}
		if len(fields) == 0 {
			continue
		}

		p, err := parseRow(fields, mapping, minCols, sourceFile)
		if err != nil {
			rowErr := &RowError{File: sourceFile, Line: lineNum, Err: err}
			if l.policy == PolicySkipRow {
				issues = append(issues, issueFromError(sourceFile, rowErr))
				continue
			}
			return nil, issues, rowErr
		}
		products = append(products, p)
	}
	if err := src.Err(); err != nil {
		return nil, issues, &FileError{File: sourceFile, Err: fmt.Errorf("reading rows: %w", err)}
	}

	return products, issues, nil
}

// recordSource yields the rows of a price list, header first. Record
// returns nil fields for a blank row.
type recordSource interface {
	Next() bool
	Record() (line int, fields []string)
	Err() error
}

// textSource splits decoded text into lines and lines into fields on every
// comma. Quotes carry no meaning.
type textSource struct {
	scanner *bufio.Scanner
	line    int
	fields  []string
}

func newTextSource(r io.Reader, enc encoding.Encoding) *textSource {
	scanner := bufio.NewScanner(NewDecodingReader(r, enc))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &textSource{scanner: scanner}
}

func (s *textSource) Next() bool {
	if !s.scanner.Scan() {
		return false
	}
	s.line++

	text := strings.TrimSpace(s.scanner.Text())
	if text == "" && s.line > 1 {
		s.fields = nil
	} else {
		s.fields = strings.Split(text, ",")
	}
	return true
}

func (s *textSource) Record() (int, []string) {
	return s.line, s.fields
}

func (s *textSource) Err() error {
	return s.scanner.Err()
}

func parseRow(fields []string, m HeaderMapping, minCols int, sourceFile string) (Product, error) {
	if len(fields) < minCols {
		return Product{}, fmt.Errorf("%w: %d fields, need %d", ErrShortRow, len(fields), minCols)
	}

	price, err := parseNumber(fields[m.Index(FieldPrice)])
	if err != nil {
		return Product{}, fmt.Errorf("price: %w", err)
	}
	weight, err := parseNumber(fields[m.Index(FieldWeight)])
	if err != nil {
		return Product{}, fmt.Errorf("weight: %w", err)
	}

	return NewProduct(fields[m.Index(FieldName)], price, weight, sourceFile)
}

// parseNumber accepts what a float literal parser would, surrounded by
// optional whitespace. NaN and infinities are rejected.
func parseNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w %q", ErrMalformedNumber, raw)
	}
	return f, nil
}
