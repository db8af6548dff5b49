package errors

import (
	"bufio"
	"strings"
)

const (
	indent = "  "
	bullet = "- "
	// inlineMaxLength is the max length of a prefix with one sub-error, which is written on one line.
	inlineMaxLength = 60
)

// formatter writes an error tree to a string.
// Sub-errors of a prefix are written on the same line, if there is only one and it is short,
// otherwise they are written as an indented bullet list.
type formatter struct {
	config  FormatConfig
	message MessageFormatter
	prefix  PrefixFormatter
	out     strings.Builder
}

func newFormatter(opts ...FormatOption) *formatter {
	f := &formatter{message: defaultMessageFormatter(), prefix: defaultPrefixFormatter()}
	for _, o := range opts {
		o(&f.config)
	}
	return f
}

func (f *formatter) sub() *formatter {
	return &formatter{config: f.config, message: f.message, prefix: f.prefix}
}

func (f *formatter) writeError(level int, err error, trace StackTrace) {
	if err == nil {
		panic(New("error cannot be nil"))
	}

	if v, ok := err.(stackTracer); ok { // nolint: errorlint
		trace = v.StackTrace()
	}

	// nolint: errorlint
	switch v := err.(type) {
	case nestedErrorGetter:
		f.writeNested(level, v.MainError(), v.WrappedErrors(), trace)
	case multiErrorGetter:
		f.writeList(level, v.WrappedErrors())
	case *withStack:
		f.writeError(level, v.Unwrap(), trace)
	default:
		f.writeLines(level, f.message(v.Error(), trace, f.config))
	}
}

func (f *formatter) writeNested(level int, main error, errs []error, trace StackTrace) {
	mainOut := f.sub()
	mainOut.writeError(level, main, trace)
	if len(errs) == 0 {
		f.write(mainOut.out.String())
		return
	}

	prefix := f.prefix(mainOut.out.String())
	listOut := f.sub()
	listOut.writeList(level, errs)
	list := listOut.out.String()

	f.write(prefix)
	switch {
	case len(errs) == 1 && len(prefix)+len(list) <= inlineMaxLength && !strings.Contains(list, "\n"):
		f.write(" ")
		f.write(list)
	case len(errs) == 1:
		f.newLine(level)
		f.write(bullet)
		f.writeError(level+1, errs[0], nil)
	default:
		f.newLine(0)
		f.writeList(level, errs)
	}
}

func (f *formatter) writeList(level int, errs []error) {
	for i, err := range errs {
		if i > 0 {
			f.newLine(0)
		}
		if len(errs) > 1 {
			f.write(strings.Repeat(indent, level))
			f.write(bullet)
		}
		f.writeError(level+1, err, nil)
	}
}

// writeLines aligns following lines of a multi-line message to the level.
func (f *formatter) writeLines(level int, msg string) {
	scanner := bufio.NewScanner(strings.NewReader(msg))
	scanner.Scan()
	f.write(scanner.Text())
	for scanner.Scan() {
		f.newLine(level)
		f.write(scanner.Text())
	}
}

func (f *formatter) newLine(level int) {
	f.write("\n")
	f.write(strings.Repeat(indent, level))
}

func (f *formatter) write(s string) {
	_, _ = f.out.WriteString(s)
}
