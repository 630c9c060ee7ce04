package core

import (
	"errors"
	"strings"

	apperr "github.com/KirkDiggler/othership-bot/internal/errors"
)

// HandlerError represents an error that occurred during handler execution
type HandlerError struct {
	// The underlying error
	Err error

	// User-friendly message to display
	UserMessage string

	// Messages lists every problem for validation failures
	Messages []string

	// HTTP-like status code for categorization
	Code int
}

// Error implements the error interface
func (e *HandlerError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMessage
}

// Unwrap returns the underlying error
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// Display renders the message shown to the user
func (e *HandlerError) Display() string {
	if len(e.Messages) == 0 {
		return e.UserMessage
	}
	var b strings.Builder
	b.WriteString(e.UserMessage)
	for _, m := range e.Messages {
		b.WriteString("\n• ")
		b.WriteString(m)
	}
	return b.String()
}

// Common error codes
const (
	ErrorCodeBadRequest   = 400
	ErrorCodeForbidden    = 403
	ErrorCodeNotFound     = 404
	ErrorCodeConflict     = 409
	ErrorCodeRateLimited  = 429
	ErrorCodeInternal     = 500
	ErrorCodeUnavailable  = 503
	ErrorCodePrecondition = 412
)

// NewHandlerError creates a new handler error
func NewHandlerError(err error, userMessage string, code int) *HandlerError {
	return &HandlerError{
		Err:         err,
		UserMessage: userMessage,
		Code:        code,
	}
}

// NewInternalError creates an error whose cause is never shown to users
func NewInternalError(err error) *HandlerError {
	return &HandlerError{
		Err:         err,
		UserMessage: "Something went wrong. Please try again later.",
		Code:        ErrorCodeInternal,
	}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *HandlerError {
	return &HandlerError{
		UserMessage: message,
		Code:        ErrorCodeForbidden,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *HandlerError {
	return &HandlerError{
		UserMessage: message,
		Code:        ErrorCodeBadRequest,
	}
}

// FromError maps an application error onto what the user should see.
// Internal and unknown errors keep their cause out of the message.
func FromError(err error) *HandlerError {
	var handlerErr *HandlerError
	if errors.As(err, &handlerErr) {
		return handlerErr
	}

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return NewInternalError(err)
	}

	switch appErr.Code {
	case apperr.CodeValidation:
		messages := apperr.ValidationMessages(err)
		if len(messages) == 1 {
			return NewHandlerError(err, messages[0], ErrorCodeBadRequest)
		}
		return &HandlerError{
			Err:         err,
			UserMessage: "That doesn't work yet:",
			Messages:    messages,
			Code:        ErrorCodeBadRequest,
		}
	case apperr.CodeInvalidArgument:
		return NewHandlerError(err, rootMessage(appErr), ErrorCodeBadRequest)
	case apperr.CodeNotFound:
		return NewHandlerError(err, rootMessage(appErr), ErrorCodeNotFound)
	case apperr.CodeAlreadyExists:
		return NewHandlerError(err, rootMessage(appErr), ErrorCodeConflict)
	case apperr.CodePermissionDenied:
		return NewHandlerError(err, rootMessage(appErr), ErrorCodeForbidden)
	case apperr.CodeFailedPrecondition:
		return NewHandlerError(err, rootMessage(appErr), ErrorCodePrecondition)
	case apperr.CodeConflict:
		return NewHandlerError(err, "Someone else changed that at the same time. Please try again.", ErrorCodeConflict)
	case apperr.CodeUnavailable:
		return NewHandlerError(err, "The bot is having trouble reaching its storage. Please try again shortly.", ErrorCodeUnavailable)
	default:
		return NewInternalError(err)
	}
}

// rootMessage is the message of the innermost application error, which is
// the one written for the user; wrappers add operation context for logs
func rootMessage(e *apperr.Error) string {
	msg := e.Message
	var next *apperr.Error
	for cause := e.Cause; errors.As(cause, &next); cause = next.Cause {
		msg = next.Message
	}
	return msg
}
