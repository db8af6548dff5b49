package cli

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/plc-tools/tia-export/internal/pkg/log"
)

const panicMessage = `
---------------------------------------------------
The export stopped unexpectedly.
%s
Please report the problem, the log file helps to diagnose it.
---------------------------------------------------
`

// ProcessPanic logs the panic with the stack trace and returns the exit code.
func ProcessPanic(ctx context.Context, err any, logger log.Logger, logFilePath string) int {
	logger.Debugf(ctx, "Unexpected panic: %s", err)
	logger.Debugf(ctx, "Trace:\n%s", debug.Stack())

	logFileMsg := "Use the \"--log-file\" flag to keep the details."
	if logFilePath != "" {
		logFileMsg = fmt.Sprintf("The details are in the log file \"%s\".", logFilePath)
	}
	logger.Errorf(ctx, panicMessage, logFileMsg)
	return 1
}
