package export

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/filesystem/aferofs"
	"github.com/plc-tools/tia-export/internal/pkg/log"
	"github.com/plc-tools/tia-export/internal/pkg/model"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

type testEntity struct {
	name     string
	kind     model.Kind
	language string
	content  string
	err      error
	panicMsg string
	noFile   bool
	calls    *atomic.Int64
}

func block(name, language, content string) *testEntity {
	return &testEntity{name: name, kind: model.BlockKind, language: language, content: content, calls: atomic.NewInt64(0)}
}

func entity(name string, kind model.Kind, content string) *testEntity {
	return &testEntity{name: name, kind: kind, content: content, calls: atomic.NewInt64(0)}
}

func (e *testEntity) Name() string {
	return e.name
}

func (e *testEntity) Kind() model.Kind {
	return e.kind
}

func (e *testEntity) LanguageTag() string {
	return e.language
}

func (e *testEntity) ExportToFile(_ context.Context, fs filesystem.Fs, path string) error {
	e.calls.Inc()
	if e.panicMsg != "" {
		panic(e.panicMsg)
	}
	if e.err != nil {
		return e.err
	}
	if e.noFile {
		return nil
	}
	if fs.Exists(path) {
		return errors.Errorf(`file "%s" already exists`, path)
	}
	return fs.WriteFile(filesystem.NewRawFile(path, e.content))
}

// failingGroup returns an error when its content is listed.
type failingGroup struct {
	name        string
	entitiesErr error
	groupsErr   error
	panicMsg    string
	entities    []model.Entity
	groups      []model.Group
}

func (g *failingGroup) Name() string {
	return g.name
}

func (g *failingGroup) Entities() ([]model.Entity, error) {
	if g.panicMsg != "" {
		panic(g.panicMsg)
	}
	return g.entities, g.entitiesErr
}

func (g *failingGroup) Groups() ([]model.Group, error) {
	return g.groups, g.groupsErr
}

func newMemoryFs(t *testing.T) filesystem.Fs {
	t.Helper()
	fs, err := aferofs.NewMemoryFs(context.Background(), log.NewNopLogger(), "")
	require.NoError(t, err)
	return fs
}

func readFile(t *testing.T, fs filesystem.Fs, path string) string {
	t.Helper()
	file, err := fs.ReadFile(path)
	require.NoError(t, err)
	return file.Content
}

func countLines(s string) int {
	return len(strings.Split(strings.TrimSpace(s), "\n"))
}
