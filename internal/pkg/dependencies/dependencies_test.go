package dependencies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem/aferofs"
	"github.com/plc-tools/tia-export/internal/pkg/log"
)

func TestNewMocked(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	d := NewMocked(t)
	assert.Nil(t, d.Portal())
	assert.NotNil(t, d.Telemetry())
	assert.Equal(t, d.MockedClock().Now(), d.Clock().Now())

	// Each call creates a new memory filesystem
	fs1, err := d.FsFactory()(ctx, d.Logger(), "out")
	require.NoError(t, err)
	fs2, err := d.FsFactory()(ctx, d.Logger(), "out")
	require.NoError(t, err)
	assert.NotSame(t, fs1, fs2)

	d.Logger().Infof(ctx, `Exported block "%s".`, "Motor1")
	d.DebugLogger().AssertJSONMessages(t, `{"level":"info","message":"Exported block \"Motor1\"."}`)
}

func TestNewMocked_WithFs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fs, err := aferofs.NewMemoryFs(ctx, log.NewNopLogger(), "")
	require.NoError(t, err)

	d := NewMocked(t, WithFs(fs))
	actual, err := d.FsFactory()(ctx, d.Logger(), "any")
	require.NoError(t, err)
	assert.Same(t, fs, actual)
}

func TestNewCommandScope(t *testing.T) {
	t.Parallel()
	base := NewMocked(t)
	d := NewCommandScope(base, nil)
	assert.Nil(t, d.Portal())
	assert.Same(t, base.Logger(), d.Logger())
}
