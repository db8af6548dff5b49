package dependencies

import (
	"io"

	"github.com/benbjohnson/clock"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/log"
	"github.com/plc-tools/tia-export/internal/pkg/telemetry"
)

// baseScope dependencies container implements BaseScope interface.
type baseScope struct {
	logger    log.Logger
	telemetry telemetry.Telemetry
	clock     clock.Clock
	fsFactory filesystem.Factory
	stdout    io.Writer
	stderr    io.Writer
}

func NewBaseScope(logger log.Logger, tel telemetry.Telemetry, clk clock.Clock, fsFactory filesystem.Factory, stdout, stderr io.Writer) BaseScope {
	return newBaseScope(logger, tel, clk, fsFactory, stdout, stderr)
}

func newBaseScope(logger log.Logger, tel telemetry.Telemetry, clk clock.Clock, fsFactory filesystem.Factory, stdout, stderr io.Writer) *baseScope {
	if tel == nil {
		tel = telemetry.NewNop()
	}
	if clk == nil {
		clk = clock.New()
	}
	return &baseScope{
		logger:    logger,
		telemetry: tel,
		clock:     clk,
		fsFactory: fsFactory,
		stdout:    stdout,
		stderr:    stderr,
	}
}

func (v *baseScope) Logger() log.Logger {
	return v.logger
}

func (v *baseScope) Telemetry() telemetry.Telemetry {
	return v.telemetry
}

func (v *baseScope) Clock() clock.Clock {
	return v.clock
}

func (v *baseScope) FsFactory() filesystem.Factory {
	return v.fsFactory
}

func (v *baseScope) Stdout() io.Writer {
	return v.stdout
}

func (v *baseScope) Stderr() io.Writer {
	return v.stderr
}
