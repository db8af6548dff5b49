// Package cli implements the tia-export command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"

	"github.com/plc-tools/tia-export/internal/pkg/dependencies"
	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/log"
	"github.com/plc-tools/tia-export/internal/pkg/options"
	"github.com/plc-tools/tia-export/internal/pkg/portal"
	"github.com/plc-tools/tia-export/internal/pkg/portal/snapshot"
	"github.com/plc-tools/tia-export/internal/pkg/telemetry"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
	"github.com/plc-tools/tia-export/internal/pkg/version"
	"github.com/plc-tools/tia-export/pkg/lib/operation/export/run"
)

const AppName = "tia-export"

const description = `Exports program blocks, user-defined types, tag tables and text lists
of an engineering project to a directory tree.

Each entity is written to "<export-dir>/<device>/<folder>/<groups>/<name><extension>".
The export directory is cleaned before the export, use "--clean=false" to keep its content.
`

const usageTemplate = `Usage:
  {{.UseLine}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
`

// PortalFactory attaches to the engineering tool, it is called only if the command line is valid.
type PortalFactory func(ctx context.Context, logger log.Logger, fsFactory filesystem.Factory, projectPath string) (portal.Portal, error)

// UsageError means the command line is not valid, the usage is printed with the error.
type UsageError struct {
	Err error
}

func (e UsageError) Error() string {
	return e.Err.Error()
}

func (e UsageError) Unwrap() error {
	return e.Err
}

type Cmd = cobra.Command

type RootCommand struct {
	*Cmd
	Options       *options.Options
	Logger        log.Logger
	fsFactory     filesystem.Factory
	portalFactory PortalFactory
	clock         clock.Clock
	logFile       *log.File
}

// NewRootCommand creates the export command.
func NewRootCommand(stdin io.Reader, stdout io.Writer, stderr io.Writer, fsFactory filesystem.Factory, portalFactory PortalFactory) *RootCommand {
	root := &RootCommand{
		Options:       options.New(),
		Logger:        log.NewNopLogger(), // logger is created when the flags are parsed
		fsFactory:     fsFactory,
		portalFactory: portalFactory,
		clock:         clock.New(),
	}

	root.Cmd = &Cmd{
		Use:           AppName + " [flags] <export-dir>",
		Version:       version.Version(),
		Short:         description,
		SilenceUsage:  true,
		SilenceErrors: true, // custom error handling, see printError
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return UsageError{Err: errors.Errorf("expected exactly one argument <export-dir>, found %d", len(args))}
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.init(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.run(cmd.Context())
		},
	}

	// Setup in/out
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	// Setup templates
	root.SetVersionTemplate("{{.Version}}")
	root.SetUsageTemplate(usageTemplate)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return UsageError{Err: err}
	})

	// Flags
	options.BindFlags(root.Flags())

	return root
}

// Execute the command, the exit code is returned.
func (root *RootCommand) Execute() (exitCode int) {
	// Stop the export on Ctrl+C
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	defer func() {
		exitCode = root.tearDown(ctx, exitCode, recover())
	}()

	if err := root.ExecuteContext(ctx); err != nil {
		root.printError(err)
		return 1
	}
	return 0
}

// init sets up the logger and the options after the flags are parsed.
func (root *RootCommand) init(cmd *cobra.Command, args []string) error {
	if err := root.Options.Load(cmd.Flags()); err != nil {
		return UsageError{Err: err}
	}
	root.Options.ExportDir = args[0]

	root.setupLogger(cmd.Context())

	if err := root.Options.Validate(cmd.Context()); err != nil {
		return UsageError{Err: err}
	}
	return nil
}

func (root *RootCommand) run(ctx context.Context) error {
	p, err := root.portalFactory(ctx, root.Logger, root.fsFactory, root.Options.ProjectPath)
	if err != nil {
		return err
	}

	d := dependencies.NewCommandScope(
		dependencies.NewBaseScope(root.Logger, telemetry.NewNop(), root.clock, root.fsFactory, root.OutOrStdout(), root.ErrOrStderr()),
		p,
	)

	_, err = run.Run(ctx, run.Options{
		ExportDir: root.Options.ExportDir,
		RulesPath: root.Options.RulesPath,
		Workers:   root.Options.Workers,
		Clean:     root.Options.Clean,
		Strict:    root.Options.Strict,
	}, d)
	return err
}

func (root *RootCommand) printError(err error) {
	var usageErr UsageError
	if errors.As(err, &usageErr) {
		root.PrintErr(root.UsageString())
	}
	root.PrintErrln(errors.PrefixError(err, "Error").Error())
}

func (root *RootCommand) setupLogger(ctx context.Context) {
	// Get log file
	var logFileErr error
	root.logFile, logFileErr = log.NewLogFile(root.Options.LogFilePath)

	// Create logger
	root.Logger = log.NewCliLogger(root.OutOrStdout(), root.ErrOrStderr(), root.logFile, root.Options.Verbose)
	root.SetOut(root.Logger.InfoWriter())
	root.SetErr(root.Logger.WarnWriter())

	// Warn if user specified log file + it cannot be opened
	if logFileErr != nil && root.Options.LogFilePath != "" {
		root.Logger.Warnf(ctx, "Cannot open log file: %s", logFileErr)
	}

	// Log info
	root.Logger.Debug(ctx, root.Version)
	root.Logger.Debugf(ctx, "Running command %v", os.Args)
	root.Logger.Debug(ctx, root.Options.Dump())
	if root.logFile == nil {
		root.Logger.Debug(ctx, `Log file: -`)
	} else {
		root.Logger.Debug(ctx, `Log file: `+root.logFile.Path())
	}
}

// tearDown does clean-up after command execution.
func (root *RootCommand) tearDown(ctx context.Context, exitCode int, panicErr any) int {
	if panicErr != nil {
		logFilePath := ""
		if root.logFile != nil {
			logFilePath = root.logFile.Path()
		}

		// Process panic
		exitCode = ProcessPanic(ctx, panicErr, root.Logger, logFilePath)
	}

	// Close log file
	if err := root.logFile.TearDown(exitCode != 0); err != nil {
		root.PrintErrln(fmt.Sprintf("Warning: %s", err))
	}
	return exitCode
}

// SnapshotPortal attaches to the project snapshot, the snapshot is loaded on the first use.
func SnapshotPortal(ctx context.Context, logger log.Logger, fsFactory filesystem.Factory, projectPath string) (portal.Portal, error) {
	fs, err := fsFactory(ctx, logger, filepath.Dir(projectPath))
	if err != nil {
		return nil, err
	}
	return snapshot.NewPortal(fs, filepath.Base(projectPath)), nil
}
