// Package errors provides coded application errors shared by the
// repositories, services and Discord handlers.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code categorizes an error so callers can react without string matching
type Code string

const (
	CodeUnknown            Code = "unknown"
	CodeInvalidArgument    Code = "invalid_argument"
	CodeNotFound           Code = "not_found"
	CodeAlreadyExists      Code = "already_exists"
	CodePermissionDenied   Code = "permission_denied"
	CodeFailedPrecondition Code = "failed_precondition"
	CodeConflict           Code = "conflict"
	CodeInternal           Code = "internal"
	CodeUnavailable        Code = "unavailable"

	// CodeValidation marks user-correctable rule violations. The individual
	// messages live in Error.Messages.
	CodeValidation Code = "validation"
)

// metaMessages is the Meta key that mirrors Error.Messages for log output.
const metaMessages = "messages"

// Error is an application error with a code, optional cause and metadata
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any

	// Messages holds every violated rule for validation errors
	Messages []string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta attaches a key/value pair and returns the receiver for chaining
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates an error with the given code
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds context to err. Codes, metadata and validation messages of
// wrapped application errors are preserved.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return &Error{
			Code:     appErr.Code,
			Message:  message,
			Cause:    err,
			Meta:     copyMeta(appErr.Meta),
			Messages: append([]string(nil), appErr.Messages...),
		}
	}

	return &Error{Code: CodeUnknown, Message: message, Cause: err}
}

// Wrapf wraps err with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err and forces the code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

func NotFound(message string) *Error { return New(CodeNotFound, message) }

func NotFoundf(format string, args ...any) *Error { return Newf(CodeNotFound, format, args...) }

func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

func AlreadyExists(message string) *Error { return New(CodeAlreadyExists, message) }

func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

func PermissionDenied(message string) *Error { return New(CodePermissionDenied, message) }

func FailedPrecondition(message string) *Error { return New(CodeFailedPrecondition, message) }

func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// Conflict reports a write that lost a race with another writer
func Conflict(message string) *Error { return New(CodeConflict, message) }

func Conflictf(format string, args ...any) *Error { return Newf(CodeConflict, format, args...) }

func Internal(message string) *Error { return New(CodeInternal, message) }

func Internalf(format string, args ...any) *Error { return Newf(CodeInternal, format, args...) }

// Validation creates a validation error carrying a single message
func Validation(message string) *Error {
	return Validations(message)
}

// Validationf creates a validation error with a formatted message
func Validationf(format string, args ...any) *Error {
	return Validations(fmt.Sprintf(format, args...))
}

// Validations creates a validation error listing every violated rule.
// The error text joins the messages so logs stay readable.
func Validations(messages ...string) *Error {
	e := &Error{
		Code:     CodeValidation,
		Message:  strings.Join(messages, "; "),
		Messages: append([]string(nil), messages...),
	}
	return e.WithMeta(metaMessages, len(messages))
}

// Is reports whether err carries the given code
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsNotFound(err error) bool { return Is(err, CodeNotFound) }

func IsInvalidArgument(err error) bool { return Is(err, CodeInvalidArgument) }

func IsAlreadyExists(err error) bool { return Is(err, CodeAlreadyExists) }

func IsPermissionDenied(err error) bool { return Is(err, CodePermissionDenied) }

func IsFailedPrecondition(err error) bool { return Is(err, CodeFailedPrecondition) }

func IsConflict(err error) bool { return Is(err, CodeConflict) }

func IsInternal(err error) bool { return Is(err, CodeInternal) }

func IsValidation(err error) bool { return Is(err, CodeValidation) }

// GetCode returns the code of err, or CodeUnknown
func GetCode(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the metadata of err
func GetMeta(err error) map[string]any {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Meta
	}
	return nil
}

// ValidationMessages returns every message of a validation error. Other
// errors yield nil.
func ValidationMessages(err error) []string {
	var appErr *Error
	if !errors.As(err, &appErr) || appErr.Code != CodeValidation {
		return nil
	}
	// The outermost wrapper copies the messages of the innermost error.
	if len(appErr.Messages) > 0 {
		return appErr.Messages
	}
	return []string{appErr.Message}
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}
