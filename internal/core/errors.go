package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for bad price-list input. Messages double as the
// patterns MapError matches on.
var (
	ErrMissingColumn   = errors.New("missing required column")
	ErrMalformedNumber = errors.New("invalid number")
	ErrZeroWeight      = errors.New("zero weight")
	ErrShortRow        = errors.New("short row")
)

// RowError locates a failure on one data line of a file.
type RowError struct {
	File string
	Line int // 1-based, the header is line 1
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s line %d: %v", e.File, e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// FileError is a failure that invalidates a whole file.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func issueFromError(file string, err error) LoadIssue {
	issue := LoadIssue{File: file, Reason: err.Error()}

	var rowErr *RowError
	if errors.As(err, &rowErr) {
		issue.Line = rowErr.Line
		issue.Reason = rowErr.Err.Error()
		return issue
	}

	var fileErr *FileError
	if errors.As(err, &fileErr) {
		issue.Reason = fileErr.Err.Error()
	}
	return issue
}
