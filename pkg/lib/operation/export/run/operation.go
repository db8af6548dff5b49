package run

import (
	"context"
	"os"
	"path/filepath"

	"github.com/benbjohnson/clock"
	"github.com/gofrs/flock"
	"go.opentelemetry.io/otel/attribute"

	"github.com/plc-tools/tia-export/internal/pkg/ctxattr"
	"github.com/plc-tools/tia-export/internal/pkg/export"
	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/idgenerator"
	"github.com/plc-tools/tia-export/internal/pkg/log"
	"github.com/plc-tools/tia-export/internal/pkg/portal"
	"github.com/plc-tools/tia-export/internal/pkg/rules"
	"github.com/plc-tools/tia-export/internal/pkg/telemetry"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
	"github.com/plc-tools/tia-export/pkg/lib/operation/export/clean"
)

const LockFileSuffix = ".lock"

type Options struct {
	// ExportDir is the root export directory.
	ExportDir string
	// RulesPath is an optional YAML file with export rules.
	RulesPath string
	// Workers is the number of parallel writes.
	Workers int
	// Clean removes the content of the export directory before the export.
	Clean bool
	// Strict fails the run if an entity or group failed.
	Strict bool
	// RunID is added to all log messages and spans of the run, it is generated if empty.
	RunID string
}

type dependencies interface {
	Clock() clock.Clock
	FsFactory() filesystem.Factory
	Logger() log.Logger
	Portal() portal.Portal
	Telemetry() telemetry.Telemetry
}

// LockPath returns path of the file which guards the export directory against parallel runs.
func LockPath(exportDir string) string {
	return filepath.Clean(exportDir) + LockFileSuffix
}

func Run(ctx context.Context, o Options, d dependencies) (summary export.Summary, err error) {
	if o.RunID == "" {
		o.RunID = idgenerator.RunID()
	}
	ctx = ctxattr.ContextWith(ctx, attribute.String("run.id", o.RunID))

	ctx, span := d.Telemetry().Tracer().Start(ctx, "tia.export.operation.run")
	span.SetAttributes(
		attribute.String("export.run.id", o.RunID),
		attribute.String("export.dir", o.ExportDir),
		attribute.Int("export.workers", o.Workers),
	)
	defer span.End(&err)

	logger := d.Logger()
	startTime := d.Clock().Now()

	if o.ExportDir == "" {
		return summary, errors.New("export directory is not set")
	}

	// Only one run can write to the export directory
	lock, err := acquireLock(o.ExportDir)
	if err != nil {
		return summary, err
	}
	defer func() {
		if unlockErr := releaseLock(lock); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}()

	// Rules
	table := rules.Default()
	if o.RulesPath != "" {
		rulesFs, err := d.FsFactory()(ctx, logger, filepath.Dir(o.RulesPath))
		if err != nil {
			return summary, err
		}
		if table, err = rules.LoadFile(ctx, rulesFs, filepath.Base(o.RulesPath), table); err != nil {
			return summary, err
		}
		logger.Infof(ctx, `Loaded export rules from "%s".`, o.RulesPath)
	}
	for _, key := range table.Keys() {
		rule, _ := table.Lookup(key.Scope, key.Kind, key.Language)
		logger.Debugf(ctx, `Export rule "%s": extension "%s", folder "%s".`, key, rule.Extension, rule.Folder)
	}

	// Attach before the export directory is modified
	subjects, err := portal.Discover(ctx, logger, d.Portal())
	if err != nil {
		return summary, err
	}

	// Prepare the export directory
	fs, err := d.FsFactory()(ctx, logger, o.ExportDir)
	if err != nil {
		return summary, err
	}
	if o.Clean {
		if err := clean.Run(ctx, fs, d); err != nil {
			return summary, errors.PrefixErrorf(err, `cannot prepare export directory "%s"`, o.ExportDir)
		}
	} else if err := fs.Mkdir("."); err != nil {
		return summary, errors.PrefixErrorf(err, `cannot prepare export directory "%s"`, o.ExportDir)
	}

	// Export
	session, err := export.NewSession(export.Config{Fs: fs, Rules: table, Workers: o.Workers}, d)
	if err != nil {
		return summary, err
	}
	summary, err = session.Run(ctx, subjects)
	if err != nil {
		return summary, err
	}

	logger.Infof(ctx, "Summary: %s.", summary)
	logger.Infof(ctx, "Execution time: %s.", d.Clock().Since(startTime))

	if o.Strict && summary.Failed > 0 {
		return summary, errors.Errorf("export failed for %d entities or groups", summary.Failed)
	}

	logger.Info(ctx, "Done")
	return summary, nil
}

func acquireLock(exportDir string) (*flock.Flock, error) {
	path := LockPath(exportDir)

	// nolint: forbidigo
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.PrefixErrorf(err, `cannot create directory for export lock "%s"`, path)
	}

	lock := flock.New(path)
	if locked, err := lock.TryLock(); err != nil {
		return nil, errors.PrefixErrorf(err, `cannot acquire export lock "%s"`, path)
	} else if !locked {
		return nil, errors.Errorf(`cannot acquire export lock "%s": another export is running`, path)
	}
	return lock, nil
}

func releaseLock(lock *flock.Flock) error {
	errs := errors.NewMultiError()
	if err := lock.Unlock(); err != nil {
		errs.Append(errors.PrefixErrorf(err, `cannot release export lock "%s"`, lock.Path()))
	}
	// nolint: forbidigo
	if err := os.Remove(lock.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		errs.Append(errors.PrefixErrorf(err, `cannot remove export lock "%s"`, lock.Path()))
	}
	return errs.ErrorOrNil()
}
