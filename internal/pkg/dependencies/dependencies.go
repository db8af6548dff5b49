// Package dependencies provides dependencies for operations.
//
// Each operation (see "pkg/lib/operation") defines a "dependencies" interface with only the necessary dependencies,
// and a "Run" function. The [CommandScope] container is created by the CLI, the [Mocked] container is used in tests.
package dependencies

import (
	"io"

	"github.com/benbjohnson/clock"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/log"
	"github.com/plc-tools/tia-export/internal/pkg/portal"
	"github.com/plc-tools/tia-export/internal/pkg/telemetry"
)

// BaseScope contains basic dependencies.
type BaseScope interface {
	Logger() log.Logger
	Telemetry() telemetry.Telemetry
	Clock() clock.Clock
	FsFactory() filesystem.Factory
	Stdout() io.Writer
	Stderr() io.Writer
}

// CommandScope contains dependencies of the export command.
type CommandScope interface {
	BaseScope
	Portal() portal.Portal
}

// Mocked dependencies for tests.
type Mocked interface {
	CommandScope
	DebugLogger() log.DebugLogger
	TestTelemetry() telemetry.ForTest
	MockedClock() *clock.Mock
	StdoutString() string
}
