// # Error Codes Reference
//
// This file defines the error taxonomy and user-friendly error messages with
// codes for support reference. When users encounter errors, they can quote
// the error code for faster diagnosis.
//
// Error codes are grouped by category:
//
// # Import Errors (IMP001-IMP099)
//
// Errors raised while parsing and committing catalog text:
//
//	IMP001 - Empty input: No data was provided
//	         Patterns: "no data provided"
//
//	IMP002 - Missing columns: Required columns absent from the header
//	         Patterns: "missing required columns"
//
//	IMP003 - Malformed text: Input could not be read as delimited text
//	         Patterns: "parse error", "bare \" in non-quoted-field"
//
//	IMP004 - No valid rows: Every data row failed validation
//	         Patterns: "no valid rows"
//
//	IMP005 - Unknown import: Rollback target does not exist
//	         Patterns: "import not found"
//
//	IMP006 - Already rolled back
//	         Patterns: "already rolled back"
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Duplicate key
//	DB002 - Connection refused
//	DB003 - Connection reset
//	DB004 - Timeout
//	DB005 - Deadlock
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large
//	FILE002 - File not found or unreadable
//	FILE003 - Encoding error (not valid UTF-8)
//
// # Request Errors (REQ001-REQ003)
//
//	REQ001 - Request cancelled ("context canceled")
//	REQ002 - Request timed out ("context deadline exceeded")
//	REQ003 - Importer busy ("too many concurrent imports")
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Check application logs for the
// original technical error when users report ERR000.
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns come before general ones.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned when import text contains no data at all.
var ErrEmptyInput = errors.New("no data provided")

// ErrNoValidRows is returned when a commit is attempted and every data row
// failed validation.
var ErrNoValidRows = errors.New("no valid rows to import")

// ErrImportNotFound is returned by stores when a rollback names an unknown
// import batch.
var ErrImportNotFound = errors.New("import not found")

// ErrAlreadyRolledBack is returned when a rollback targets a batch whose
// rows were already removed.
var ErrAlreadyRolledBack = errors.New("import already rolled back")

// MissingColumnsError is the fatal header-validation failure: one or more
// required columns could not be found. No rows are produced.
type MissingColumnsError struct {
	Columns []string // canonical keys, in canonical order
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

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

// errorPatterns maps technical error patterns (case-insensitive) to user
// messages. First match wins, so specific patterns come before general ones.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Import Errors (IMP001-IMP006)
	// Raised while parsing catalog text and managing import batches.
	// =========================================================================
	{
		pattern: "no data provided",
		msg: UserMessage{
			Message: "No catalog data was provided",
			Action:  "Paste the catalog table or point at a non-empty file",
			Code:    "IMP001",
		},
	},
	{
		pattern: "missing required columns",
		msg: UserMessage{
			Message: "The header is missing required columns",
			Action:  "Include model, capacity (tons), and efficiency columns",
			Code:    "IMP002",
		},
	},
	{
		pattern: "parse error",
		msg: UserMessage{
			Message: "The input could not be read as delimited text",
			Action:  "Check for stray quotes or mixed delimiters and retry",
			Code:    "IMP003",
		},
	},
	{
		pattern: `bare " in non-quoted-field`,
		msg: UserMessage{
			Message: "The input could not be read as delimited text",
			Action:  "Check for stray quotes or mixed delimiters and retry",
			Code:    "IMP003",
		},
	},
	{
		pattern: "no valid rows",
		msg: UserMessage{
			Message: "Every row failed validation",
			Action:  "Review the failed rows, fix the data, and import again",
			Code:    "IMP004",
		},
	},
	{
		pattern: "import not found",
		msg: UserMessage{
			Message: "That import batch does not exist",
			Action:  "List imports to find the right batch ID",
			Code:    "IMP005",
		},
	},
	{
		pattern: "already rolled back",
		msg: UserMessage{
			Message: "That import batch was already rolled back",
			Action:  "Nothing to undo; list imports to see batch status",
			Code:    "IMP006",
		},
	},

	// =========================================================================
	// Database Errors (DB001-DB005)
	// Constraint violations and connectivity failures from the row store.
	// =========================================================================
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this ID already exists",
			Action:  "Retry the import; if it persists, reset the catalog",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the database",
			Action:  "Check DATABASE_URL and try again in a few moments",
			Code:    "DB002",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "The database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB003",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The operation timed out",
			Action:  "Try a smaller import or try again later",
			Code:    "DB004",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "The database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE003)
	// Raised when reading catalog files from disk.
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The file exceeds the maximum import size",
			Action:  "Split the catalog into smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "The file could not be found",
			Action:  "Check the path and try again",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid utf-8",
		msg: UserMessage{
			Message: "The file contains invalid characters",
			Action:  "Save the file as UTF-8 and retry",
			Code:    "FILE003",
		},
	},

	// =========================================================================
	// Request Errors (REQ001-REQ003)
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The request timed out",
			Action:  "Try a smaller import or check your connection",
			Code:    "REQ002",
		},
	},
	{
		pattern: "too many concurrent imports",
		msg: UserMessage{
			Message: "The importer is busy with other batches",
			Action:  "Wait a few seconds and retry",
			Code:    "REQ003",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the logs",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. It searches
// the known patterns (case-insensitive) and returns the first match, falling
// back to ERR000.
//
// Example:
//
//	err := errors.New("missing required columns: model")
//	msg := MapError(err)
//	// msg.Code == "IMP002"
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
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether an error matches a known pattern (anything
// but the ERR000 fallback) and is safe to show verbatim alongside its
// mapped message.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError wraps a technical error with its user-facing message. The
// original error is preserved for logging while display code uses the
// mapped message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps a technical error into a UserError. Returns nil if err
// is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
