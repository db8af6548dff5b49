package export

import (
	"context"

	"github.com/plc-tools/tia-export/internal/pkg/log"
	"github.com/plc-tools/tia-export/internal/pkg/model"
	"github.com/plc-tools/tia-export/internal/pkg/naming"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

// Node is an entity visited by the Walker.
type Node struct {
	Entity model.Entity
	// GroupPath is the sanitized slash separated path of the parent group, relative to the root group.
	GroupPath string
	// Index is the position of the entity in the parent group.
	Index int
}

type EmitFunc func(ctx context.Context, node Node) error

// Walker visits all entities of a group tree in pre-order:
// entities of a group first, then sub-groups, everything in the order defined by the engineering tool.
// A failure in one group or entity does not stop the traversal.
type Walker struct {
	logger log.Logger
}

func NewWalker(logger log.Logger) *Walker {
	return &Walker{logger: logger}
}

// Walk returns all collected errors as a multi error, or nil.
// The traversal stops only if the context is cancelled.
func (w *Walker) Walk(ctx context.Context, root model.Group, emit EmitFunc) error {
	errs := errors.NewMultiError()
	w.walk(ctx, root, "", emit, errs)
	return errs.ErrorOrNil()
}

func (w *Walker) walk(ctx context.Context, group model.Group, path string, emit EmitFunc, errs errors.MultiError) {
	if ctx.Err() != nil {
		return
	}

	w.logger.Debugf(ctx, `Handling group "%s".`, groupDesc(path))

	entities, err := listEntities(group)
	if err != nil {
		errs.AppendWithPrefixf(err, `cannot list entities of group "%s"`, groupDesc(path))
	}
	for i, entity := range entities {
		if err := ctx.Err(); err != nil {
			errs.Append(errors.PrefixError(err, "export interrupted"))
			return
		}
		if err := emitNode(ctx, emit, Node{Entity: entity, GroupPath: path, Index: i}); err != nil {
			errs.Append(err)
		}
	}

	groups, err := listGroups(group)
	if err != nil {
		errs.AppendWithPrefixf(err, `cannot list sub-groups of group "%s"`, groupDesc(path))
	}
	for _, child := range groups {
		childPath, err := groupPath(path, child)
		if err != nil {
			errs.AppendWithPrefixf(err, `cannot read sub-group of group "%s"`, groupDesc(path))
			continue
		}
		w.walk(ctx, child, childPath, emit, errs)
	}
}

func emitNode(ctx context.Context, emit EmitFunc, node Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf(`panic while exporting entity in group "%s": %v`, groupDesc(node.GroupPath), r)
		}
	}()
	return emit(ctx, node)
}

func listEntities(group model.Group) (entities []model.Entity, err error) {
	defer recoverTo(&err)
	return group.Entities()
}

func listGroups(group model.Group) (groups []model.Group, err error) {
	defer recoverTo(&err)
	return group.Groups()
}

func groupPath(parent string, group model.Group) (path string, err error) {
	defer recoverTo(&err)
	return naming.GroupPath(parent, group.Name()), nil
}

func recoverTo(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = errors.Errorf("panic: %v", r)
	}
}

func groupDesc(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
