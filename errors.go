package cpet

import "strings"

// FailureKind classifies analysis failures for callers that render
// user-facing diagnostics.
type FailureKind string

const (
	// MalformedInput covers empty or unparsable XML input.
	MalformedInput FailureKind = "malformed_input"
	// ExtractionFailure covers unexpected errors while walking the rows.
	ExtractionFailure FailureKind = "extraction_failure"
	// ValidationFailure covers semantic violations; Messages carries every
	// violation found, not just the first.
	ValidationFailure FailureKind = "validation_failure"
)

// Error is the structured failure returned across the analysis boundary.
// The analysis never partially succeeds: callers get either a full Report
// or an Error with the complete message list.
type Error struct {
	Kind     FailureKind
	Messages []string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + strings.Join(e.Messages, "; ")
}

func newError(kind FailureKind, messages ...string) *Error {
	return &Error{Kind: kind, Messages: messages}
}
