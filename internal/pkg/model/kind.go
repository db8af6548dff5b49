package model

import (
	"slices"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
)

// Kind of the exported entity.
type Kind string

const (
	BlockKind    Kind = "block"
	TypeKind     Kind = "type"
	TagTableKind Kind = "tagTable"
	TextListKind Kind = "textList"
)

// Scope is the type of the software container the entity belongs to.
type Scope string

const (
	LogicScope         Scope = "logic"
	VisualizationScope Scope = "visualization"
)

func AllKinds() []Kind {
	return []Kind{BlockKind, TypeKind, TagTableKind, TextListKind}
}

func (k Kind) String() string {
	return string(k)
}

// Desc returns a human-readable name of the kind, for example "tag table".
func (k Kind) Desc() string {
	if k == TypeKind {
		return "user-defined type"
	}
	return strcase.ToDelimited(string(k), ' ')
}

func (k Kind) IsValid() bool {
	return slices.Contains(AllKinds(), k)
}

func (s Scope) String() string {
	return string(s)
}

func (s Scope) IsValid() bool {
	return s == LogicScope || s == VisualizationScope
}

// KindSet is a set of kinds, the empty set contains all kinds.
type KindSet map[Kind]bool

func NewKindSet(kinds ...Kind) KindSet {
	out := make(KindSet, len(kinds))
	for _, k := range kinds {
		out[k] = true
	}
	return out
}

func (s KindSet) Has(k Kind) bool {
	if len(s) == 0 {
		return true
	}
	return s[k]
}

func (s KindSet) String() string {
	if len(s) == 0 {
		return "*"
	}
	var kinds []string
	for k := range s {
		kinds = append(kinds, k.String())
	}
	sort.Strings(kinds)
	return strings.Join(kinds, ",")
}
