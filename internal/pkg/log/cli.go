// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewCliLogger creates a logger for the command line.
// Info messages are written to stdout, warnings and errors to stderr.
// Debug messages are written to stdout only in the verbose mode.
// The log file, if any, gets all messages with all fields in the JSON format.
func NewCliLogger(stdout io.Writer, stderr io.Writer, logFile *File, verbose bool) Logger {
	var cores []zapcore.Core

	// Log to file
	if logFile != nil {
		cores = append(cores, fileCore(logFile))
	}

	// Log to stdout
	cores = append(cores, stdoutCore(stdout, verbose))

	// Log to stderr
	cores = append(cores, stderrCore(stderr, verbose))

	return loggerFromZapCore(zapcore.NewTee(cores...))
}

func stdoutCore(stdout io.Writer, verbose bool) zapcore.Core {
	levels := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		// Log debug, info -> if verbose output enabled
		if verbose {
			return l == DebugLevel || l == InfoLevel
		}
		// Log info only
		return l == InfoLevel
	})
	return &messageOnlyCore{Core: zapcore.NewCore(consoleEncoder(verbose), zapcore.AddSync(stdout), levels)}
}

func stderrCore(stderr io.Writer, verbose bool) zapcore.Core {
	return &messageOnlyCore{Core: zapcore.NewCore(consoleEncoder(verbose), zapcore.AddSync(stderr), WarnLevel)}
}

func consoleEncoder(verbose bool) zapcore.Encoder {
	// Prefix messages with level only when verbose enabled
	levelKey := ""
	if verbose {
		levelKey = "level"
	}

	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "message",
		LevelKey:         levelKey,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: "\t",
	})
}

// messageOnlyCore drops all fields, the console output contains only the level and the message.
type messageOnlyCore struct {
	zapcore.Core
}

func (c *messageOnlyCore) With(_ []zapcore.Field) zapcore.Core {
	return c
}

func (c *messageOnlyCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *messageOnlyCore) Write(entry zapcore.Entry, _ []zapcore.Field) error {
	return c.Core.Write(entry, nil)
}
