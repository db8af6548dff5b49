package telemetry

import (
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

const (
	attrErrorType       = attribute.Key("error.type")
	attrErrorCategory   = attribute.Key("error.category")
	attrErrorStackTrace = attribute.Key("error.stack")
)

type Span interface {
	End(errPtr *error, opts ...trace.SpanEndOption)
	SetAttributes(kv ...attribute.KeyValue)
}

type span struct {
	span     trace.Span
	disabled bool
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func (s *span) SetAttributes(kv ...attribute.KeyValue) {
	if s.disabled {
		return
	}
	s.span.SetAttributes(kv...)
}

// End closes the span, the status is set according to the error, if the pointer is not nil.
func (s *span) End(errPtr *error, opts ...trace.SpanEndOption) {
	if s.disabled {
		return
	}
	if errPtr != nil {
		if err := *errPtr; err != nil {
			s.recordError(err)
			s.span.SetStatus(codes.Error, err.Error())
		} else {
			s.span.SetStatus(codes.Ok, "")
		}
	}
	s.span.End(opts...)
}

func (s *span) recordError(err error) {
	s.span.RecordError(err)
	s.span.SetAttributes(
		attrErrorType.String(typeStr(err)),
		attrErrorCategory.String(ErrorType(err)),
	)
	if v, ok := err.(stackTracer); ok { //nolint: errorlint
		if pcs := v.StackTrace(); len(pcs) > 0 {
			s.span.SetAttributes(attrErrorStackTrace.String(formatStackTrace(pcs)))
		}
	}
}

func typeStr(i any) string {
	t := reflect.TypeOf(i)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "" && t.Name() == "" {
		return t.String() // build-in type
	}
	return fmt.Sprintf("%s.%s", t.PkgPath(), t.Name())
}

func formatStackTrace(pcs []uintptr) string {
	var builder strings.Builder
	frames := runtime.CallersFrames(pcs)
	for i := 0; ; i++ {
		frame, more := frames.Next()
		if i != 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(frame.Function)
		builder.WriteByte('\n')
		builder.WriteByte('\t')
		builder.WriteString(frame.File)
		builder.WriteByte(':')
		builder.WriteString(strconv.Itoa(frame.Line))
		if !more {
			break
		}
	}
	return builder.String()
}
