package telemetry

import (
	"context"
	"io/fs"

	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

// ErrorType returns a low-cardinality category of the error, usable as a span attribute.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "context_canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "deadline_exceeded"
	case errors.Is(err, fs.ErrNotExist):
		return "fs_not_exist"
	case errors.Is(err, fs.ErrExist):
		return "fs_exist"
	case errors.Is(err, fs.ErrPermission):
		return "fs_permission"
	default:
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return "fs"
		}
		return "other"
	}
}
