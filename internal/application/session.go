// Package application runs the interactive console session: a table of
// everything loaded, then a search prompt until the exit word.
package application

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/JonMunkholm/pricelist/internal/core"
	"github.com/JonMunkholm/pricelist/internal/report"
)

// Prompt is printed before every search.
const Prompt = "Введите название товара: "

// Farewell is printed when the loop ends.
const Farewell = "the end"

// DefaultExitWord ends the loop when no other word is configured.
const DefaultExitWord = "exit"

// ErrSessionUsed is returned by a second call to Run.
var ErrSessionUsed = errors.New("session already run")

// Searcher finds products by name, cheapest per kilogram first.
type Searcher interface {
	SearchSorted(text string) []core.Product
}

// Session reads search terms from in and prints result tables to out.
type Session struct {
	searcher Searcher
	in       *bufio.Reader
	out      io.Writer
	exitWord string
	ran      atomic.Bool
}

// NewSession creates a Session. An empty exitWord selects DefaultExitWord.
func NewSession(searcher Searcher, in io.Reader, out io.Writer, exitWord string) *Session {
	if exitWord == "" {
		exitWord = DefaultExitWord
	}
	return &Session{
		searcher: searcher,
		in:       bufio.NewReader(in),
		out:      out,
		exitWord: exitWord,
	}
}

// ShowProducts prints products as a numbered table.
func (s *Session) ShowProducts(products []core.Product) error {
	return report.WriteProductTable(s.out, products)
}

// Run prompts until the exit word is entered or input ends, then prints
// the farewell line. The input line is matched exactly; only the line
// terminator is removed. Cancelling ctx interrupts a pending prompt and
// Run returns ctx.Err() without the farewell.
//
// Run is single-use: a read left pending on in when Run returns still owns
// the reader, so later calls return ErrSessionUsed.
func (s *Session) Run(ctx context.Context) error {
	if !s.ran.CompareAndSwap(false, true) {
		return ErrSessionUsed
	}

	lines := make(chan inputLine)
	done := make(chan struct{})
	defer close(done)
	go s.readLines(lines, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := io.WriteString(s.out, Prompt); err != nil {
			return err
		}

		var in inputLine
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in = <-lines:
		}
		if in.err != nil && !errors.Is(in.err, io.EOF) {
			return fmt.Errorf("read search term: %w", in.err)
		}
		text := strings.TrimSuffix(strings.TrimSuffix(in.text, "\n"), "\r")

		if text == s.exitWord {
			break
		}
		if in.err != nil && text == "" {
			// End of input without a final term.
			if _, err := io.WriteString(s.out, "\n"); err != nil {
				return err
			}
			break
		}

		results := s.searcher.SearchSorted(text)
		slog.Debug("search", "query", text, "results", len(results))
		if err := s.ShowProducts(results); err != nil {
			return err
		}

		if in.err != nil {
			break
		}
	}

	_, err := fmt.Fprintln(s.out, Farewell)
	return err
}

type inputLine struct {
	text string
	err  error
}

// readLines feeds lines to out until input fails or done is closed.
func (s *Session) readLines(out chan<- inputLine, done <-chan struct{}) {
	for {
		text, err := s.in.ReadString('\n')
		select {
		case out <- inputLine{text: text, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}
