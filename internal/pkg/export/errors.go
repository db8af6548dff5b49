package export

import (
	"fmt"

	"github.com/plc-tools/tia-export/internal/pkg/model"
)

// UnsupportedKindError means there is no export rule for the entity, it is skipped, not failed.
type UnsupportedKindError struct {
	Scope    model.Scope
	Kind     model.Kind
	Language string
}

func (e UnsupportedKindError) Error() string {
	if e.Kind == model.BlockKind {
		return fmt.Sprintf(`programming language "%s" is not supported`, e.Language)
	}
	return fmt.Sprintf(`%s is not supported in the %s scope`, e.Kind.Desc(), e.Scope)
}

// SerializationError means the engineering tool failed to export the entity.
type SerializationError struct {
	Entity      string
	StagingPath string
	Destination string
	Err         error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf(`cannot serialize "%s" to "%s" (destination "%s"): %s`, e.Entity, e.StagingPath, e.Destination, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// IOError means a filesystem operation failed.
type IOError struct {
	Op     string
	Entity string
	Path   string
	Err    error
}

func (e *IOError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf(`cannot %s "%s": %s`, e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf(`cannot %s "%s" for "%s": %s`, e.Op, e.Path, e.Entity, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
