// Package core provides the business logic for price-list scanning.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. The console and the HTTP view show the message, the action and
// the code; the technical error is logged.
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL002 - Invalid number: a price or weight is not a number
//	         Action: Use digits with a dot as decimal separator
//	         Patterns: "invalid number"
//
//	VAL004 - Missing column: name, price or weight header not found
//	         Action: Name the columns with one of the accepted headers
//	         Patterns: "missing required column"
//
//	VAL007 - Zero weight: a row has weight 0 so no unit price exists
//	         Action: Fix the weight or remove the row
//	         Patterns: "zero weight"
//
//	VAL008 - Short row: a row has fewer fields than the header requires
//	         Action: Check for missing commas in the row
//	         Patterns: "short row"
//
// # File Errors (FILE001-FILE099)
//
//	FILE003 - Encoding error: the configured charset is unknown
//	          Action: Set PRICES_ENCODING to utf-8, windows-1251 or koi8-r
//	          Patterns: "unsupported encoding"
//
//	FILE006 - Not found: the price directory or a file does not exist
//	          Action: Check PRICES_DIR
//	          Patterns: "no such file or directory", "cannot find"
//
//	FILE007 - Permission denied: a file could not be opened
//	          Action: Check file permissions
//	          Patterns: "permission denied"
//
//	FILE008 - Line too long: a line exceeds the reader buffer
//	          Action: Make sure the file is a text price list
//	          Patterns: "token too long"
//
// # Load Errors (LOAD001-LOAD099)
//
//	LOAD001 - Cancelled: the load pass was cancelled
//	          Patterns: "context canceled", "operation cancelled"
//
//	LOAD002 - Timed out: the load pass took longer than LOAD_TIMEOUT
//	          Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: too many requests to the HTTP view
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches:
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or check the logs
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns come first.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so order matters.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Validation Errors
	// =========================================================================
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing from the price list",
			Action:  "Name the columns with one of the accepted headers (e.g. название, цена, фасовка)",
			Code:    "VAL004",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "Invalid number format detected",
			Action:  "Use digits with a dot as decimal separator",
			Code:    "VAL002",
		},
	},
	{
		pattern: "zero weight",
		msg: UserMessage{
			Message: "A product has zero weight",
			Action:  "Fix the weight or remove the row",
			Code:    "VAL007",
		},
	},
	{
		pattern: "short row",
		msg: UserMessage{
			Message: "A row has fewer fields than the header requires",
			Action:  "Check the row for missing commas",
			Code:    "VAL008",
		},
	},

	// =========================================================================
	// File Errors
	// =========================================================================
	{
		pattern: "unsupported encoding",
		msg: UserMessage{
			Message: "The configured file encoding is not supported",
			Action:  "Set PRICES_ENCODING to utf-8, windows-1251 or koi8-r",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no such file or directory",
		msg: UserMessage{
			Message: "Price directory or file not found",
			Action:  "Check PRICES_DIR",
			Code:    "FILE006",
		},
	},
	{
		pattern: "cannot find",
		msg: UserMessage{
			Message: "Price directory or file not found",
			Action:  "Check PRICES_DIR",
			Code:    "FILE006",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "A price list could not be opened",
			Action:  "Check file permissions",
			Code:    "FILE007",
		},
	},
	{
		pattern: "token too long",
		msg: UserMessage{
			Message: "A line in the price list is too long",
			Action:  "Make sure the file is a text price list",
			Code:    "FILE008",
		},
	},

	// =========================================================================
	// Load Errors
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Loading was cancelled",
			Action:  "Start the load again when ready",
			Code:    "LOAD001",
		},
	},
	{
		pattern: "operation cancelled",
		msg: UserMessage{
			Message: "Loading was cancelled",
			Action:  "Start the load again when ready",
			Code:    "LOAD001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Loading timed out",
			Action:  "Raise LOAD_TIMEOUT or split the price lists",
			Code:    "LOAD002",
		},
	},

	// =========================================================================
	// Rate Limiting
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
// This is the fallback for unexpected errors. Support staff should check
// application logs for the original technical error when users report ERR000.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the logs",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
//
// Example:
//
//	_, err := ResolveHeaders([]string{"товар", "цена"})
//	msg := MapError(err)
//	// msg.Code == "VAL004"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
//
// Example output: "A product has zero weight (Code: VAL007). Fix the weight or remove the row"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing checks if an error matches a known pattern and should be shown to users.
// Returns true if the error matches a specific pattern (not the generic ERR000 fallback).
// Use this to decide whether to show the raw error or the mapped user message.
//
// Example:
//
//	if IsUserFacing(err) {
//	    showToUser(FormatUserError(err))
//	} else {
//	    log.Error(err) // Log technical error
//	    showToUser("An error occurred. Please try again.")
//	}
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	msg := MapError(err)
	return msg.Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-friendly message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError creates a UserError by mapping a technical error to a user-friendly message.
// The returned UserError preserves the original technical error for logging via Unwrap(),
// while providing a clean user message via Error().
//
// Returns nil if err is nil.
//
// Example:
//
//	ue := NewUserError(loadErr)
//	slog.Error("load failed", "error", ue.Technical)
//	fmt.Println(ue.Error())   // "A row has fewer fields than the header requires"
//	fmt.Println(ue.User.Code) // "VAL008"
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
