package dependencies

import (
	"bytes"
	"context"
	"testing"

	"github.com/benbjohnson/clock"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/filesystem/aferofs"
	"github.com/plc-tools/tia-export/internal/pkg/log"
	"github.com/plc-tools/tia-export/internal/pkg/portal"
	"github.com/plc-tools/tia-export/internal/pkg/telemetry"
	"github.com/plc-tools/tia-export/internal/pkg/utils/testhelper"
)

// mocked dependencies container implements Mocked interface.
type mocked struct {
	*baseScope
	config *MockedConfig
}

type MockedConfig struct {
	clock       *clock.Mock
	telemetry   telemetry.ForTest
	debugLogger log.DebugLogger
	fsFactory   filesystem.Factory
	portal      portal.Portal
	stdout      *bytes.Buffer
	stderr      *bytes.Buffer
}

type MockedOption func(c *MockedConfig)

func WithClock(v *clock.Mock) MockedOption {
	return func(c *MockedConfig) {
		c.clock = v
	}
}

func WithDebugLogger(v log.DebugLogger) MockedOption {
	return func(c *MockedConfig) {
		c.debugLogger = v
	}
}

func WithTelemetry(v telemetry.ForTest) MockedOption {
	return func(c *MockedConfig) {
		c.telemetry = v
	}
}

// WithFsFactory replaces the default in-memory filesystem, for example by the local filesystem.
func WithFsFactory(v filesystem.Factory) MockedOption {
	return func(c *MockedConfig) {
		c.fsFactory = v
	}
}

func WithPortal(v portal.Portal) MockedOption {
	return func(c *MockedConfig) {
		c.portal = v
	}
}

// WithFs makes the filesystem factory return the same filesystem for each base path.
func WithFs(fs filesystem.Fs) MockedOption {
	return func(c *MockedConfig) {
		c.fsFactory = func(context.Context, log.Logger, string) (filesystem.Fs, error) {
			return fs, nil
		}
	}
}

func NewMocked(t *testing.T, opts ...MockedOption) Mocked {
	t.Helper()

	cfg := &MockedConfig{
		clock:     clock.NewMock(),
		telemetry: telemetry.NewForTest(t),
		fsFactory: aferofs.NewMemoryFs,
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.debugLogger == nil {
		cfg.debugLogger = log.NewDebugLogger()
		cfg.debugLogger.ConnectTo(testhelper.VerboseStdout())
	}

	d := &mocked{config: cfg}
	d.baseScope = newBaseScope(cfg.debugLogger, cfg.telemetry, cfg.clock, cfg.fsFactory, cfg.stdout, cfg.stderr)
	return d
}

func (v *mocked) Portal() portal.Portal {
	return v.config.portal
}

func (v *mocked) DebugLogger() log.DebugLogger {
	return v.config.debugLogger
}

func (v *mocked) TestTelemetry() telemetry.ForTest {
	return v.config.telemetry
}

func (v *mocked) MockedClock() *clock.Mock {
	return v.config.clock
}

func (v *mocked) StdoutString() string {
	return v.config.stdout.String()
}
