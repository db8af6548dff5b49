package export

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plc-tools/tia-export/internal/pkg/log"
	"github.com/plc-tools/tia-export/internal/pkg/model"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

type visit struct {
	Path string
	Name string
}

func collect(visits *[]visit) EmitFunc {
	return func(_ context.Context, node Node) error {
		*visits = append(*visits, visit{Path: node.GroupPath, Name: node.Entity.Name()})
		return nil
	}
}

func TestWalker_PreOrder(t *testing.T) {
	t.Parallel()

	root := model.NewGroup("Program blocks",
		[]model.Entity{block("Recipe", "DB", "")},
		model.NewGroup("Main",
			[]model.Entity{block("Motor1", "SCL", ""), block("Motor2", "SCL", "")},
			model.NewGroup("Sub", []model.Entity{block("Data1", "DB", "")}),
		),
		model.NewGroup("A/B", []model.Entity{block("Valve", "STL", "")}),
		model.NewGroup("Empty", nil),
	)

	var visits []visit
	require.NoError(t, NewWalker(log.NewNopLogger()).Walk(context.Background(), root, collect(&visits)))
	assert.Equal(t, []visit{
		{Path: "", Name: "Recipe"},
		{Path: "Main", Name: "Motor1"},
		{Path: "Main", Name: "Motor2"},
		{Path: "Main/Sub", Name: "Data1"},
		{Path: "A_B", Name: "Valve"},
	}, visits)
}

func TestWalker_Coverage(t *testing.T) {
	t.Parallel()

	// 3 levels, each group has 4 entities and 3 sub-groups
	var build func(name string, level int) model.Group
	build = func(name string, level int) model.Group {
		var entities []model.Entity
		for i := range 4 {
			entities = append(entities, entity(fmt.Sprintf("%s_%d", name, i), model.TypeKind, ""))
		}
		var groups []model.Group
		if level < 3 {
			for i := range 3 {
				groups = append(groups, build(fmt.Sprintf("%s%d", name, i), level+1))
			}
		}
		return model.NewGroup(name, entities, groups...)
	}

	logger := log.NewDebugLogger()
	var visits []visit
	require.NoError(t, NewWalker(logger).Walk(context.Background(), build("g", 0), collect(&visits)))

	// 1 + 3 + 9 + 27 groups, each visited once
	assert.Equal(t, 40, strings.Count(logger.DebugMessages(), "Handling group"))
	assert.Equal(t, 1, strings.Count(logger.DebugMessages(), `Handling group \"g0/g01/g012\"`))
	assert.Len(t, visits, 40*4)
	seen := make(map[string]bool)
	for _, v := range visits {
		key := v.Path + "/" + v.Name
		assert.False(t, seen[key], "visited twice: %s", key)
		seen[key] = true
	}
}

func TestWalker_FailureIsolation(t *testing.T) {
	t.Parallel()

	root := model.NewGroup("root",
		[]model.Entity{block("A", "SCL", ""), block("B", "SCL", ""), block("C", "SCL", "")},
		&failingGroup{name: "Broken", entitiesErr: errors.New("access denied"), groups: []model.Group{
			model.NewGroup("Nested", []model.Entity{block("D", "SCL", "")}),
		}},
		&failingGroup{name: "Crashing", panicMsg: "tool crashed"},
		&failingGroup{name: "NoSubGroups", entities: []model.Entity{block("E", "SCL", "")}, groupsErr: errors.New("timeout")},
		model.NewGroup("Sibling", []model.Entity{block("F", "SCL", "")}),
	)

	var visits []visit
	emit := func(ctx context.Context, node Node) error {
		switch node.Entity.Name() {
		case "B":
			return errors.New("B failed")
		case "C":
			panic("C panicked")
		}
		return collect(&visits)(ctx, node)
	}

	err := NewWalker(log.NewNopLogger()).Walk(context.Background(), root, emit)
	require.Error(t, err)

	assert.Equal(t, []visit{
		{Path: "", Name: "A"},
		{Path: "Broken/Nested", Name: "D"},
		{Path: "NoSubGroups", Name: "E"},
		{Path: "Sibling", Name: "F"},
	}, visits)

	var multi errors.MultiError
	require.ErrorAs(t, err, &multi)
	assert.Equal(t, 5, multi.Len())
	msg := err.Error()
	assert.Contains(t, msg, "B failed")
	assert.Contains(t, msg, `panic while exporting entity in group "/": C panicked`)
	assert.Contains(t, msg, `cannot list entities of group "Broken"`)
	assert.Contains(t, msg, "access denied")
	assert.Contains(t, msg, `cannot list entities of group "Crashing"`)
	assert.Contains(t, msg, "panic: tool crashed")
	assert.Contains(t, msg, `cannot list sub-groups of group "NoSubGroups"`)
}

func TestWalker_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	root := model.NewGroup("root", []model.Entity{block("A", "SCL", ""), block("B", "SCL", "")},
		model.NewGroup("Main", []model.Entity{block("C", "SCL", "")}),
	)

	var visits []visit
	err := NewWalker(log.NewNopLogger()).Walk(ctx, root, func(ctx context.Context, node Node) error {
		cancel()
		return collect(&visits)(ctx, node)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []visit{{Path: "", Name: "A"}}, visits)
}

func TestWalker_Index(t *testing.T) {
	t.Parallel()
	root := model.FlatGroup("PLC data types", entity("T1", model.TypeKind, ""), entity("T2", model.TypeKind, ""))

	var indexes []int
	err := NewWalker(log.NewNopLogger()).Walk(context.Background(), root, func(_ context.Context, node Node) error {
		indexes = append(indexes, node.Index)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, indexes)
}
