package core

// # Error Codes Reference
//
// User-facing messages for failures in the collaborators around the core.
// Join, flatten and serialize never fail; everything below comes from
// loading sources or exporting rows. Operators can quote the code.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: file exceeds the upload size limit
//	          Patterns: "file too large", "request body too large"
//	FILE002 - Invalid JSON: the file is not a {"value": [...]} document
//	          Patterns: "invalid json"
//	FILE004 - No file: no file was selected
//	          Patterns: "no file provided"
//	FILE005 - Empty file: the file has no content
//	          Patterns: "empty file"
//
// # Source Errors (SRC001-SRC099)
//
//	SRC002 - Connection refused: the remote endpoint is unreachable
//	         Patterns: "connection refused", "no such host"
//	SRC003 - Timeout: the remote endpoint did not answer in time
//	         Patterns: "deadline exceeded", "timeout"
//	SRC001 - Team fetch failed: the team list request was rejected
//	         Patterns: "teams fetch failed"
//	SRC004 - No endpoint: no remote base URL is configured
//	         Patterns: "no remote endpoint"
//
// # Load Errors (LOAD001-LOAD099)
//
//	LOAD001 - Busy: too many loads are running
//	          Patterns: "too many concurrent loads"
//	LOAD002 - Cancelled: the request was cancelled
//	          Patterns: "context canceled"
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - No rows: there is nothing to export
//	         Patterns: "no rows"
//	EXP002 - Unknown layout: the requested layout does not exist
//	         Patterns: "unknown layout"
//	EXP003 - Unknown format: the requested export format does not exist
//	         Patterns: "unknown format"
//
// # Fallback
//
//	ERR000 - Unexpected error: check the logs for the technical error

import (
	"fmt"
	"strings"
)

// UserMessage represents a user-friendly error message with guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is checked in order; the first match wins.
var errorPatterns = []errorPattern{
	// File errors
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Export fewer teams per file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Export fewer teams per file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid json",
		msg: UserMessage{
			Message: "File is not valid JSON",
			Action:  `Upload an export in {"value": [...]} format`,
			Code:    "FILE002",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a JSON file to load",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Upload a JSON export with at least a value list",
			Code:    "FILE005",
		},
	},

	// Source errors. Connection problems are listed before the generic
	// team fetch failure so the more specific cause is reported.
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the remote endpoint",
			Action:  "Check the endpoint URL and try again",
			Code:    "SRC002",
		},
	},
	{
		pattern: "no such host",
		msg: UserMessage{
			Message: "Unable to reach the remote endpoint",
			Action:  "Check the endpoint URL and try again",
			Code:    "SRC002",
		},
	},
	{
		pattern: "deadline exceeded",
		msg: UserMessage{
			Message: "The remote endpoint did not respond in time",
			Action:  "Try again later or raise REMOTE_TIMEOUT",
			Code:    "SRC003",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The remote endpoint did not respond in time",
			Action:  "Try again later or raise REMOTE_TIMEOUT",
			Code:    "SRC003",
		},
	},
	{
		pattern: "teams fetch failed",
		msg: UserMessage{
			Message: "The team list could not be fetched",
			Action:  "Check the access token and endpoint",
			Code:    "SRC001",
		},
	},
	{
		pattern: "no remote endpoint",
		msg: UserMessage{
			Message: "No remote endpoint is configured",
			Action:  "Set REMOTE_BASE_URL or pass --url",
			Code:    "SRC004",
		},
	},

	// Load errors
	{
		pattern: "too many concurrent loads",
		msg: UserMessage{
			Message: "Another load is still running",
			Action:  "Please wait a moment and try again",
			Code:    "LOAD001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "LOAD002",
		},
	},

	// Export errors
	{
		pattern: "no rows",
		msg: UserMessage{
			Message: "There is nothing to export",
			Action:  "Load sample data or a JSON file first",
			Code:    "EXP001",
		},
	},
	{
		pattern: "unknown layout",
		msg: UserMessage{
			Message: "The requested layout does not exist",
			Action:  "Use one of the listed layouts",
			Code:    "EXP002",
		},
	},
	{
		pattern: "unknown format",
		msg: UserMessage{
			Message: "The requested export format does not exist",
			Action:  "Use tsv or xlsx",
			Code:    "EXP003",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, the ERR000 fallback is returned.
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

// LoadFailedStatus is the status line shown after a failed load. The
// underlying error text is kept so decode errors reach the operator.
func LoadFailedStatus(err error) string {
	if err == nil {
		return ""
	}
	msg := MapError(err)
	return fmt.Sprintf("load failed: %s (Code: %s)", err.Error(), msg.Code)
}

// IsUserFacing reports whether an error matches a known pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	msg := MapError(err)
	return msg.Code != defaultMessage.Code
}
