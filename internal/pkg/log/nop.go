// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"go.uber.org/zap/zapcore"
)

func NewNopLogger() Logger {
	return loggerFromZapCore(zapcore.NewNopCore())
}
