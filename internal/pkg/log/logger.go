// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/plc-tools/tia-export/internal/pkg/ctxattr"
)

// zapLogger is default implementation of the Logger interface.
type zapLogger struct {
	logger    *zap.Logger
	component string
}

func loggerFromZapCore(core zapcore.Core) *zapLogger {
	return &zapLogger{logger: zap.New(core)}
}

func (l *zapLogger) sugar(ctx context.Context) *zap.SugaredLogger {
	logger := l.logger
	if l.component != "" {
		logger = logger.With(zap.String("component", l.component))
	}
	if set := ctxattr.Attributes(ctx); set.Len() > 0 {
		logger = logger.With(attributesToFields(set.ToSlice())...)
	}
	return logger.Sugar()
}

func (l *zapLogger) Debug(ctx context.Context, message string) {
	l.sugar(ctx).Debug(message)
}

func (l *zapLogger) Info(ctx context.Context, message string) {
	l.sugar(ctx).Info(message)
}

func (l *zapLogger) Warn(ctx context.Context, message string) {
	l.sugar(ctx).Warn(message)
}

func (l *zapLogger) Error(ctx context.Context, message string) {
	l.sugar(ctx).Error(message)
}

func (l *zapLogger) Debugf(ctx context.Context, template string, args ...any) {
	l.sugar(ctx).Debugf(template, args...)
}

func (l *zapLogger) Infof(ctx context.Context, template string, args ...any) {
	l.sugar(ctx).Infof(template, args...)
}

func (l *zapLogger) Warnf(ctx context.Context, template string, args ...any) {
	l.sugar(ctx).Warnf(template, args...)
}

func (l *zapLogger) Errorf(ctx context.Context, template string, args ...any) {
	l.sugar(ctx).Errorf(template, args...)
}

func (l *zapLogger) Sync() error {
	return l.logger.Sync()
}

func (l *zapLogger) With(attrs ...attribute.KeyValue) Logger {
	return &zapLogger{logger: l.logger.With(attributesToFields(attrs)...), component: l.component}
}

func (l *zapLogger) WithComponent(component string) Logger {
	if l.component != "" {
		component = l.component + "." + component
	}
	return &zapLogger{logger: l.logger, component: component}
}

func (l *zapLogger) WithDuration(v time.Duration) Logger {
	return &zapLogger{logger: l.logger.With(zap.String("duration", v.String())), component: l.component}
}

func (l *zapLogger) DebugWriter() *LevelWriter {
	return &LevelWriter{logger: l, level: DebugLevel}
}

func (l *zapLogger) InfoWriter() *LevelWriter {
	return &LevelWriter{logger: l, level: InfoLevel}
}

func (l *zapLogger) WarnWriter() *LevelWriter {
	return &LevelWriter{logger: l, level: WarnLevel}
}

func (l *zapLogger) ErrorWriter() *LevelWriter {
	return &LevelWriter{logger: l, level: ErrorLevel}
}

func attributesToFields(attrs []attribute.KeyValue) []zap.Field {
	fields := make([]zap.Field, 0, len(attrs))
	for _, kv := range attrs {
		fields = append(fields, zap.Any(string(kv.Key), kv.Value.AsInterface()))
	}
	return fields
}
