// nolint:forbidigo // allow usage of the "zap" package
package log

import (
	"bufio"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"

	"github.com/plc-tools/tia-export/internal/pkg/utils/ioutil"
)

type debugLogger struct {
	*zapLogger
	all *ioutil.AtomicWriter
}

// NewDebugLogger returns a logger which stores all messages in memory as JSON lines.
// It is used in tests.
func NewDebugLogger() DebugLogger {
	all := ioutil.NewAtomicWriter()
	encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	})
	core := zapcore.NewCore(encoder, zapcore.AddSync(all), DebugLevel)
	return &debugLogger{zapLogger: loggerFromZapCore(core), all: all}
}

func (l *debugLogger) ConnectTo(writer io.Writer) {
	l.all.ConnectTo(writer)
}

func (l *debugLogger) Truncate() {
	l.all.Truncate()
}

func (l *debugLogger) AllMessages() string {
	return l.all.String()
}

func (l *debugLogger) DebugMessages() string {
	return l.filter(DebugLevel)
}

func (l *debugLogger) InfoMessages() string {
	return l.filter(InfoLevel)
}

func (l *debugLogger) WarnMessages() string {
	return l.filter(WarnLevel)
}

func (l *debugLogger) ErrorMessages() string {
	return l.filter(ErrorLevel)
}

func (l *debugLogger) WarnAndErrorMessages() string {
	return l.filter(WarnLevel, ErrorLevel)
}

func (l *debugLogger) CompareJSONMessages(expected string) error {
	return CompareJSONMessages(expected, l.AllMessages())
}

func (l *debugLogger) AssertJSONMessages(t assert.TestingT, expected string, msgAndArgs ...any) bool {
	return AssertJSONMessages(t, expected, l.AllMessages(), msgAndArgs...)
}

// filter returns JSON lines with one of the levels.
func (l *debugLogger) filter(levels ...zapcore.Level) string {
	var out strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(l.all.String()))
	for scanner.Scan() {
		line := scanner.Text()
		var msg struct {
			Level string `json:"level"`
		}
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(line, &msg); err != nil {
			continue
		}
		for _, level := range levels {
			if msg.Level == level.String() {
				out.WriteString(line)
				out.WriteString("\n")
				break
			}
		}
	}
	return out.String()
}
