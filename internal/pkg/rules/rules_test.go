package rules

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/filesystem/aferofs"
	"github.com/plc-tools/tia-export/internal/pkg/log"
	"github.com/plc-tools/tia-export/internal/pkg/model"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cases := []struct {
		scope    model.Scope
		kind     model.Kind
		language string
		rule     Rule
	}{
		{model.LogicScope, model.BlockKind, "SCL", Rule{Extension: ".scl", Folder: "scl"}},
		{model.LogicScope, model.BlockKind, "scl", Rule{Extension: ".scl", Folder: "scl"}},
		{model.LogicScope, model.BlockKind, "DB", Rule{Extension: ".db", Folder: "db"}},
		{model.LogicScope, model.BlockKind, "STL", Rule{Extension: ".awl", Folder: "stl"}},
		{model.LogicScope, model.TypeKind, "", Rule{Extension: ".udt", Folder: "udt"}},
		{model.LogicScope, model.TypeKind, "ignored", Rule{Extension: ".udt", Folder: "udt"}},
		{model.LogicScope, model.TagTableKind, "", Rule{Extension: ".xml", Folder: "tag_tables/xml", Flatten: true}},
		{model.VisualizationScope, model.TagTableKind, "", Rule{Extension: ".xml", Folder: "hmi_tag_tables/xml", Flatten: true}},
		{model.VisualizationScope, model.TextListKind, "", Rule{Extension: ".xml", Folder: "hmi_text_lists/xml"}},
	}

	table := Default()
	assert.Equal(t, 7, table.Len())
	for _, c := range cases {
		rule, found := table.Lookup(c.scope, c.kind, c.language)
		assert.True(t, found, "%s/%s/%s", c.scope, c.kind, c.language)
		assert.Equal(t, c.rule, rule)
	}
}

func TestDefault_Unsupported(t *testing.T) {
	t.Parallel()
	table := Default()

	_, found := table.Lookup(model.LogicScope, model.BlockKind, "LAD")
	assert.False(t, found)
	_, found = table.Lookup(model.LogicScope, model.BlockKind, "")
	assert.False(t, found)
	_, found = table.Lookup(model.LogicScope, model.TextListKind, "")
	assert.False(t, found)
	_, found = table.Lookup(model.VisualizationScope, model.BlockKind, "SCL")
	assert.False(t, found)
}

func TestTable_Keys(t *testing.T) {
	t.Parallel()
	var keys []string
	for _, k := range Default().Keys() {
		keys = append(keys, k.String())
	}
	assert.Equal(t, []string{
		"logic/block/DB",
		"logic/block/SCL",
		"logic/block/STL",
		"logic/tagTable",
		"logic/type",
		"visualization/tagTable",
		"visualization/textList",
	}, keys)
}

func TestTable_Clone(t *testing.T) {
	t.Parallel()
	original := Default()
	clone := original.Clone()
	clone.Delete(NewKey(model.LogicScope, model.BlockKind, "SCL"))
	assert.Equal(t, 7, original.Len())
	assert.Equal(t, 6, clone.Len())
}

func TestLoad_Merge(t *testing.T) {
	t.Parallel()
	data := `
rules:
  - scope: logic
    kind: block
    language: lad
    extension: .xml
    folder: lad/
  - scope: logic
    kind: tagTable
    extension: .xml
    folder: tags
    flatten: true
`
	table, err := Load(context.Background(), []byte(data), Default())
	require.NoError(t, err)
	assert.Equal(t, 8, table.Len())

	rule, found := table.Lookup(model.LogicScope, model.BlockKind, "LAD")
	assert.True(t, found)
	assert.Equal(t, Rule{Extension: ".xml", Folder: "lad"}, rule)

	rule, found = table.Lookup(model.LogicScope, model.TagTableKind, "")
	assert.True(t, found)
	assert.Equal(t, Rule{Extension: ".xml", Folder: "tags", Flatten: true}, rule)

	// The base table is not modified
	rule, _ = Default().Lookup(model.LogicScope, model.TagTableKind, "")
	assert.Equal(t, "tag_tables/xml", rule.Folder)
}

func TestLoad_Replace(t *testing.T) {
	t.Parallel()
	data := `
replace: true
rules:
  - scope: visualization
    kind: textList
    extension: .txt
`
	table, err := Load(context.Background(), []byte(data), Default())
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	rule, found := table.Lookup(model.VisualizationScope, model.TextListKind, "")
	assert.True(t, found)
	assert.Equal(t, Rule{Extension: ".txt"}, rule)
}

func TestLoad_Empty(t *testing.T) {
	t.Parallel()
	table, err := Load(context.Background(), nil, Default())
	require.NoError(t, err)
	assert.Equal(t, 7, table.Len())
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()
	data := `
rules:
  - scope: cloud
    kind: block
    language: SCL
    extension: scl
    folder: ../outside
  - scope: visualization
    kind: screen
    extension: .xml
`
	_, err := Load(context.Background(), []byte(data), Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"rules[0].scope" must be one of [logic visualization]`)
	assert.Contains(t, err.Error(), `"rules[1].kind" must be one of [block type tagTable textList]`)
	assert.Contains(t, err.Error(), `"rules[0].extension" must start with a dot and cannot contain a path separator`)
	assert.Contains(t, err.Error(), `"rules[0].folder" must be a relative slash separated path`)
}

func TestLoad_Disabled(t *testing.T) {
	t.Parallel()
	data := `
rules:
  - scope: logic
    kind: block
    language: stl
    disabled: true
  - scope: visualization
    kind: textList
    disabled: true
`
	table, err := Load(context.Background(), []byte(data), Default())
	require.NoError(t, err)
	assert.Equal(t, 5, table.Len())
	_, found := table.Lookup(model.LogicScope, model.BlockKind, "STL")
	assert.False(t, found)
	_, found = table.Lookup(model.VisualizationScope, model.TextListKind, "")
	assert.False(t, found)
	_, found = table.Lookup(model.LogicScope, model.BlockKind, "SCL")
	assert.True(t, found)
}

func TestLoad_UnknownField(t *testing.T) {
	t.Parallel()
	_, err := Load(context.Background(), []byte("rulez: []\n"), Default())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "cannot decode YAML"))
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fs, err := aferofs.NewMemoryFs(ctx, log.NewNopLogger(), "")
	require.NoError(t, err)

	_, err = LoadFile(ctx, fs, "rules.yaml", Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot read rules file "rules.yaml"`)

	require.NoError(t, fs.WriteFile(filesystem.NewRawFile("rules.yaml", "rules:\n  - scope: logic\n    kind: type\n")))
	_, err = LoadFile(ctx, fs, "rules.yaml", Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `rules file "rules.yaml" is not valid`)
	assert.Contains(t, err.Error(), `"rules[0].extension" is a required field`)

	require.NoError(t, fs.WriteFile(filesystem.NewRawFile("rules.yaml", "rules:\n  - scope: logic\n    kind: type\n    extension: .typ\n")))
	table, err := LoadFile(ctx, fs, "rules.yaml", Default())
	require.NoError(t, err)
	rule, _ := table.Lookup(model.LogicScope, model.TypeKind, "")
	assert.Equal(t, ".typ", rule.Extension)
}
