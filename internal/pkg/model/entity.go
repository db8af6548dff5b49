package model

import (
	"context"
	"fmt"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
)

// Entity is one exportable unit owned by the engineering tool, for example a program block.
// The engine only reads it, the implementation holds the handle to the tool.
type Entity interface {
	Name() string
	Kind() Kind
	// LanguageTag is the programming language of a block, for example SCL, DB, STL.
	// It is empty for other kinds.
	LanguageTag() string
	// ExportToFile serializes the entity to the file.
	// The file must not exist.
	ExportToFile(ctx context.Context, fs filesystem.Fs, path string) error
}

// Group is a named container of entities and sub-groups, for example a block group or a tag folder.
// Items are returned in the order defined by the engineering tool.
type Group interface {
	Name() string
	Entities() ([]Entity, error)
	Groups() ([]Group, error)
}

// EntityKey identifies an entity within one export run.
type EntityKey struct {
	Subject string
	Scope   Scope
	Group   string // sanitized path of the parent group
	Index   int    // position in the parent group
	Name    string
}

func (k EntityKey) String() string {
	return fmt.Sprintf("%s|%s|%s|%03d|%s", k.Scope, k.Subject, k.Group, k.Index, k.Name)
}

func (k EntityKey) Desc() string {
	return fmt.Sprintf(`"%s" in "%s"`, k.Name, k.Group)
}
