package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is a machine-readable workflow error category.
type ErrorKind string

const (
	// KindEmptyInput means the query was blank after trimming.
	KindEmptyInput ErrorKind = "empty_input"
	// KindNoCommandFound means the generator explicitly found nothing.
	KindNoCommandFound ErrorKind = "no_command_found"
	// KindGenerationError means the generator reported a semantic error.
	KindGenerationError ErrorKind = "generation_error"
	// KindProcessFailure means the generator crashed, failed to start or exited abnormally.
	KindProcessFailure ErrorKind = "process_failure"
	// KindMalformedOutput means the generator output was not parseable.
	KindMalformedOutput ErrorKind = "malformed_output"
	// KindUserCancelled means the user dismissed a prompt.
	KindUserCancelled ErrorKind = "user_cancelled"
)

// Error is a workflow error. Detail holds diagnostic or raw generator output.
type Error struct {
	Kind     ErrorKind
	Message  string
	Detail   string
	ExitCode int
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds a workflow error without a cause.
func NewError(kind ErrorKind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

// WrapError builds a workflow error around a cause.
func WrapError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf returns the workflow kind of err, or "" if err is not a workflow error.
func KindOf(err error) ErrorKind {
	var werr *Error
	if errors.As(err, &werr) {
		return werr.Kind
	}
	return ""
}

// IsKind reports whether err is a workflow error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// ErrCancelled is returned by prompters when the user dismisses a prompt.
var ErrCancelled = NewError(KindUserCancelled, "cancelled by user")
