// Package rules maps an exported entity to the file extension and the folder it is written to.
package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plc-tools/tia-export/internal/pkg/model"
)

// Rule defines where and how an entity kind is exported.
type Rule struct {
	Extension string // with the leading dot, for example ".scl"
	Folder    string // relative to the subject root, slash separated, may be empty
	// Flatten writes all entities directly to the Folder, the group path is not used.
	Flatten bool
}

// Key identifies a rule. Language is used only for blocks.
type Key struct {
	Scope    model.Scope
	Kind     model.Kind
	Language string
}

func NewKey(scope model.Scope, kind model.Kind, language string) Key {
	if kind == model.BlockKind {
		language = strings.ToUpper(strings.TrimSpace(language))
	} else {
		language = ""
	}
	return Key{Scope: scope, Kind: kind, Language: language}
}

func (k Key) String() string {
	if k.Language == "" {
		return fmt.Sprintf("%s/%s", k.Scope, k.Kind)
	}
	return fmt.Sprintf("%s/%s/%s", k.Scope, k.Kind, k.Language)
}

// Table of the export rules. The table is not modified during the export.
type Table struct {
	rules map[Key]Rule
}

func New() *Table {
	return &Table{rules: make(map[Key]Rule)}
}

// Default returns the built-in layout: blocks in "<device>/<language folder>/<groups>", types in "<device>/udt",
// tag tables flat in "<device>/tag_tables/xml" and "hmi_tag_tables/xml", text lists in "hmi_text_lists/xml".
func Default() *Table {
	t := New()
	t.Set(NewKey(model.LogicScope, model.BlockKind, "SCL"), Rule{Extension: ".scl", Folder: "scl"})
	t.Set(NewKey(model.LogicScope, model.BlockKind, "DB"), Rule{Extension: ".db", Folder: "db"})
	t.Set(NewKey(model.LogicScope, model.BlockKind, "STL"), Rule{Extension: ".awl", Folder: "stl"})
	t.Set(NewKey(model.LogicScope, model.TypeKind, ""), Rule{Extension: ".udt", Folder: "udt"})
	t.Set(NewKey(model.LogicScope, model.TagTableKind, ""), Rule{Extension: ".xml", Folder: "tag_tables/xml", Flatten: true})
	t.Set(NewKey(model.VisualizationScope, model.TagTableKind, ""), Rule{Extension: ".xml", Folder: "hmi_tag_tables/xml", Flatten: true})
	t.Set(NewKey(model.VisualizationScope, model.TextListKind, ""), Rule{Extension: ".xml", Folder: "hmi_text_lists/xml"})
	return t
}

func (t *Table) Set(key Key, rule Rule) {
	t.rules[NewKey(key.Scope, key.Kind, key.Language)] = rule
}

func (t *Table) Delete(key Key) {
	delete(t.rules, NewKey(key.Scope, key.Kind, key.Language))
}

// Lookup returns the rule for the entity, false means the entity is not supported.
func (t *Table) Lookup(scope model.Scope, kind model.Kind, language string) (Rule, bool) {
	rule, found := t.rules[NewKey(scope, kind, language)]
	return rule, found
}

func (t *Table) Len() int {
	return len(t.rules)
}

// Keys returns all keys in a stable order.
func (t *Table) Keys() []Key {
	keys := make([]Key, 0, len(t.rules))
	for k := range t.rules {
		keys = append(keys, k)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

func (t *Table) Clone() *Table {
	out := New()
	for k, v := range t.rules {
		out.rules[k] = v
	}
	return out
}
