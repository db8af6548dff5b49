package model

// StaticGroup is a Group with a fixed content.
type StaticGroup struct {
	GroupName   string
	Items       []Entity
	ChildGroups []Group
}

// FlatGroup wraps a plain collection, for example user-defined types, which has no sub-groups.
func FlatGroup(name string, entities ...Entity) *StaticGroup {
	return &StaticGroup{GroupName: name, Items: entities}
}

func NewGroup(name string, entities []Entity, groups ...Group) *StaticGroup {
	return &StaticGroup{GroupName: name, Items: entities, ChildGroups: groups}
}

func (g *StaticGroup) Name() string {
	return g.GroupName
}

func (g *StaticGroup) Entities() ([]Entity, error) {
	return g.Items, nil
}

func (g *StaticGroup) Groups() ([]Group, error) {
	return g.ChildGroups, nil
}
