// Package export writes entities of the engineering project to files.
//
// The [Session] walks each [model.Subject] by the [Walker], maps each entity to a file by the [rules.Table],
// creates directories by the [Provisioner] and writes files by the [AtomicWriter].
// A failure of one entity or group is logged and counted, it does not stop the export.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/c2h5oh/datasize"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/atomic"

	"github.com/plc-tools/tia-export/internal/pkg/ctxattr"
	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/log"
	"github.com/plc-tools/tia-export/internal/pkg/model"
	"github.com/plc-tools/tia-export/internal/pkg/naming"
	"github.com/plc-tools/tia-export/internal/pkg/rules"
	"github.com/plc-tools/tia-export/internal/pkg/telemetry"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

const DefaultStagingDir = ".staging"

// Config of the export run, it is not modified during the run.
type Config struct {
	// Fs is rooted at the export directory.
	Fs    filesystem.Fs
	Rules *rules.Table
	// StagingDir is relative to the export directory, so the final move stays on the same filesystem.
	StagingDir string
	// Workers is the number of parallel writes, 1 means sequential export.
	Workers int
}

type sessionDeps interface {
	Logger() log.Logger
	Telemetry() telemetry.Telemetry
	Clock() clock.Clock
}

type Summary struct {
	Exported int64
	Skipped  int64
	Failed   int64
	Size     datasize.ByteSize
	Duration time.Duration
	// Errors of entities and groups, nil if there is none.
	Errors error
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"exported %d, skipped %d, failed %d, written %s in %s",
		s.Exported, s.Skipped, s.Failed, s.Size.HR(), s.Duration.Round(time.Millisecond),
	)
}

type Session struct {
	config    Config
	logger    log.Logger
	telemetry telemetry.Telemetry
	clock     clock.Clock
	walker    *Walker
}

type run struct {
	*Session
	generator   *naming.Generator
	provisioner *Provisioner
	writer      *AtomicWriter
	exported    *atomic.Int64
	skipped     *atomic.Int64
	failed      *atomic.Int64
	size        *atomic.Uint64
}

func NewSession(config Config, d sessionDeps) (*Session, error) {
	if config.Fs == nil {
		return nil, errors.New("export filesystem is not set")
	}
	if config.Rules == nil {
		config.Rules = rules.Default()
	}
	if config.StagingDir = naming.SanitizePath(config.StagingDir); config.StagingDir == "" {
		config.StagingDir = DefaultStagingDir
	}
	if config.Workers < 1 {
		config.Workers = 1
	}

	logger := d.Logger().WithComponent("export")
	return &Session{
		config:    config,
		logger:    logger,
		telemetry: d.Telemetry(),
		clock:     d.Clock(),
		walker:    NewWalker(logger),
	}, nil
}

func (s *Session) Config() Config {
	return s.config
}

// Run exports all subjects. Only a fatal error of the export environment is returned,
// errors of entities and groups are reported in the Summary.
func (s *Session) Run(ctx context.Context, subjects []model.Subject) (summary Summary, err error) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "tia.export.session.run")
	defer span.End(&err)

	// Entities cannot be exported to the staging directory, it is removed at the end
	registry := naming.NewRegistry()
	registry.Reserve(s.config.StagingDir)

	startTime := s.clock.Now()
	r := &run{
		Session:     s,
		generator:   naming.NewGenerator(registry),
		provisioner: NewProvisioner(s.config.Fs, s.logger),
		writer:      NewAtomicWriter(s.config.Fs, s.logger, s.config.StagingDir),
		exported:    atomic.NewInt64(0),
		skipped:     atomic.NewInt64(0),
		failed:      atomic.NewInt64(0),
		size:        atomic.NewUint64(0),
	}

	errs := errors.NewMultiError()
	defer func() {
		summary = r.summary(s.clock.Since(startTime), errs.ErrorOrNil())
		span.SetAttributes(
			attribute.Int64("export.exported", summary.Exported),
			attribute.Int64("export.skipped", summary.Skipped),
			attribute.Int64("export.failed", summary.Failed),
		)
	}()

	if err := r.provisioner.Ensure(ctx, s.config.StagingDir); err != nil {
		return summary, errors.PrefixError(err, "cannot prepare staging directory")
	}
	defer r.removeStagingDir(ctx)

	for i, subject := range subjects {
		if err := ctx.Err(); err != nil {
			return summary, errors.PrefixError(err, "export interrupted")
		}
		errs.Append(r.exportSubject(ctx, i, subject))
	}

	if err := ctx.Err(); err != nil {
		return summary, errors.PrefixError(err, "export interrupted")
	}
	return summary, nil
}

func (r *run) exportSubject(ctx context.Context, index int, subject model.Subject) (err error) {
	ctx, span := r.telemetry.Tracer().Start(ctx, "tia.export.session.subject")
	span.SetAttributes(
		attribute.String("subject.prefix", subject.RootPrefix),
		attribute.String("subject.scope", subject.Scope.String()),
	)
	defer span.End(&err)

	if subject.Root == nil {
		return nil
	}

	ctx = ctxattr.ContextWith(ctx,
		attribute.String("subject", subject.RootPrefix),
		attribute.String("scope", subject.Scope.String()),
	)
	// Entity key must be unique also for subjects with the same prefix
	subjectID := fmt.Sprintf("%03d:%s", index, subject.RootPrefix)

	workers := NewWorkers(ctx, r.config.Workers)
	r.logger.Debugf(ctx, `Exporting %s, workers: %d.`, subject, workers.Limit())
	errs := errors.NewMultiError()
	walkErr := r.walker.Walk(ctx, subject.Root, func(ctx context.Context, node Node) error {
		return r.emit(ctx, subjectID, subject, node, workers)
	})
	if walkErr != nil {
		for _, err := range flatten(walkErr) {
			r.failed.Inc()
			r.logger.Errorf(ctx, "Export error: %s", err)
		}
		errs.Append(walkErr)
	}
	errs.Append(workers.Wait())
	return errs.ErrorOrNil()
}

func (r *run) emit(ctx context.Context, subjectID string, subject model.Subject, node Node, workers *Workers) error {
	entity := node.Entity
	kind := entity.Kind()

	if !subject.Kinds.Has(kind) {
		r.skipped.Inc()
		r.logger.Debugf(ctx, `Skipped %s "%s": not exported from the %s scope.`, kind.Desc(), entity.Name(), subject.Scope)
		return nil
	}

	rule, found := r.config.Rules.Lookup(subject.Scope, kind, entity.LanguageTag())
	if !found {
		r.skipped.Inc()
		err := UnsupportedKindError{Scope: subject.Scope, Kind: kind, Language: entity.LanguageTag()}
		r.logger.Infof(ctx, `Skipped %s "%s": %s.`, kind.Desc(), entity.Name(), err)
		return nil
	}

	key := model.EntityKey{Subject: subjectID, Scope: subject.Scope, Group: node.GroupPath, Index: node.Index, Name: entity.Name()}
	path := r.generator.DestinationPath(key, subject.RootPrefix, rule, node.GroupPath)
	workers.Add(func(ctx context.Context) error {
		return r.write(ctx, entity, path)
	})
	return nil
}

func (r *run) write(ctx context.Context, entity model.Entity, path model.AbsPath) error {
	err := r.provisioner.Ensure(ctx, path.GetParentPath())
	if err == nil {
		var result Result
		if result, err = r.writer.Write(ctx, entity, path.Path()); err == nil {
			r.exported.Inc()
			r.size.Add(uint64(result.Size))
			r.logger.Infof(ctx, `Exported %s "%s" to "%s".`, entity.Kind().Desc(), entity.Name(), result.Path)
			return nil
		}
	}

	r.failed.Inc()
	r.logger.Errorf(ctx, `Cannot export %s "%s": %s`, entity.Kind().Desc(), entity.Name(), err)
	return errors.PrefixErrorf(err, `cannot export %s "%s"`, entity.Kind().Desc(), entity.Name())
}

func (r *run) removeStagingDir(ctx context.Context) {
	if !r.config.Fs.Exists(r.config.StagingDir) {
		return
	}
	if err := r.config.Fs.Remove(r.config.StagingDir); err != nil {
		r.logger.Warnf(ctx, `Cannot remove staging directory "%s": %s`, r.config.StagingDir, err)
	}
}

func (r *run) summary(duration time.Duration, errs error) Summary {
	return Summary{
		Exported: r.exported.Load(),
		Skipped:  r.skipped.Load(),
		Failed:   r.failed.Load(),
		Size:     datasize.ByteSize(r.size.Load()),
		Duration: duration,
		Errors:   errs,
	}
}

func flatten(err error) []error {
	var multi errors.MultiError
	if errors.As(err, &multi) {
		return multi.WrappedErrors()
	}
	return []error{err}
}
