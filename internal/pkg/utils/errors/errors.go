// Package errors extends the standard errors package.
// Errors created here carry a stack trace, see FormatWithStack.
// MultiError and NestedError allow collecting more errors and printing them as a bullet list.
package errors

import (
	"errors" // nolint: depguard
	"fmt"
)

type stackTracer interface {
	StackTrace() StackTrace
}

// withStack is an error with the stack trace of the place where it was created.
type withStack struct {
	error
	trace StackTrace
}

// wrappedError has its own message, the wrapped error is accessible via Unwrap.
type wrappedError struct {
	msg     string
	wrapped error
	trace   StackTrace
}

func New(message string) error {
	return &withStack{error: errors.New(message), trace: callers()} // nolint: forbidigo
}

func Errorf(format string, a ...any) error {
	return &withStack{error: fmt.Errorf(format, a...), trace: callers()} // nolint: forbidigo
}

// Wrap returns a new error with the message, the original error is accessible via Unwrap.
func Wrap(err error, message string) error {
	return &wrappedError{msg: message, wrapped: err, trace: callers()}
}

// WithStack adds the stack trace to the error, if it is not present.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	var tracer stackTracer
	if As(err, &tracer) {
		return err
	}
	return &withStack{error: err, trace: callers()}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func (e *withStack) Unwrap() error {
	return e.error
}

func (e *withStack) StackTrace() StackTrace {
	return e.trace
}

func (e *wrappedError) Error() string {
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.wrapped
}

func (e *wrappedError) StackTrace() StackTrace {
	return e.trace
}
