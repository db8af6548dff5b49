package errors

// NestedError is a main error with sub-errors, for example a prefix and the errors it describes.
type NestedError interface {
	error
	Len() int
	Unwrap() []error
	StackTrace() StackTrace
	MainError() error
	WrappedErrors() []error
	Append(errs ...error)
}

type nestedErrorGetter interface {
	MainError() error
	WrappedErrors() []error
}

type nestedError struct {
	main  error
	subs  MultiError
	trace StackTrace
}

// PrefixError returns "<prefix>: <err>", a long or multi error is written as a bullet list below the prefix.
func PrefixError(err error, prefix string) error {
	return NewNestedError(New(prefix), err)
}

func PrefixErrorf(err error, format string, a ...any) error {
	return NewNestedError(Errorf(format, a...), err)
}

func NewNestedError(main error, subErrs ...error) NestedError {
	if main == nil {
		panic("error cannot be nil")
	}
	subs := NewMultiError()
	subs.Append(subErrs...)
	return &nestedError{main: main, subs: subs, trace: callers()}
}

func (e *nestedError) Error() string {
	return Format(e)
}

func (e *nestedError) Len() int {
	return e.subs.Len()
}

// Unwrap returns the main error followed by the sub-errors, so errors.Is/As match both.
func (e *nestedError) Unwrap() []error {
	return append([]error{e.main}, e.subs.WrappedErrors()...)
}

func (e *nestedError) StackTrace() StackTrace {
	return e.trace
}

func (e *nestedError) MainError() error {
	return e.main
}

func (e *nestedError) WrappedErrors() []error {
	return e.subs.WrappedErrors()
}

func (e *nestedError) Append(errs ...error) {
	e.subs.Append(errs...)
}
