package errors

import (
	"fmt"
	"strings"
)

// FormatConfig modifies the output of the Format function.
type FormatConfig struct {
	WithStack bool
}

type FormatOption func(c *FormatConfig)

// MessageFormatter formats each error message. The trace is used only if FormatConfig.WithStack is set.
type MessageFormatter func(msg string, trace StackTrace, config FormatConfig) string

// PrefixFormatter formats a prefix followed by a list of errors.
type PrefixFormatter func(prefix string) string

// FormatWithStack adds the place of the error creation to each message.
func FormatWithStack() FormatOption {
	return func(c *FormatConfig) {
		c.WithStack = true
	}
}

// Format error to string, nested errors are written as a bullet list.
func Format(err error, opts ...FormatOption) string {
	f := newFormatter(opts...)
	f.writeError(0, err, nil)
	return f.out.String()
}

func defaultMessageFormatter() MessageFormatter {
	return func(msg string, trace StackTrace, config FormatConfig) string {
		if config.WithStack {
			if file, line, ok := trace.Frame(); ok {
				msg = fmt.Sprintf("%s [%s:%d]", msg, file, line)
			}
		}
		return msg
	}
}

func defaultPrefixFormatter() PrefixFormatter {
	return func(prefix string) string {
		return strings.TrimRight(prefix, ".,:") + ":"
	}
}
