package snapshot

import (
	"github.com/plc-tools/tia-export/internal/pkg/model"
)

// Group of entities, it implements model.Group.
type Group struct {
	GroupName string    `yaml:"name"`
	Items     []*Entity `yaml:"entities,omitempty" validate:"dive"`
	Children  []*Group  `yaml:"groups,omitempty" validate:"dive"`
}

func (g *Group) Name() string {
	return g.GroupName
}

func (g *Group) Entities() ([]model.Entity, error) {
	out := make([]model.Entity, len(g.Items))
	for i, e := range g.Items {
		out[i] = e
	}
	return out, nil
}

func (g *Group) Groups() ([]model.Group, error) {
	out := make([]model.Group, len(g.Children))
	for i, child := range g.Children {
		out[i] = child
	}
	return out, nil
}

func (g *Group) bind(s *Snapshot, scope model.Scope) {
	if g == nil {
		return
	}
	for _, e := range g.Items {
		e.snapshot = s
		e.scope = scope
	}
	for _, child := range g.Children {
		child.bind(s, scope)
	}
}
