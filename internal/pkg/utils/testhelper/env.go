// nolint forbidigo
package testhelper

import (
	"bytes"
	"io"
	"os"

	"github.com/acarl005/stripansi"
	"github.com/spf13/cast"
)

// VerboseEnv enables the output of the tested command, for example "TEST_VERBOSE=true go test ./...".
const VerboseEnv = "TEST_VERBOSE"

func TestIsVerbose() bool {
	return cast.ToBool(os.Getenv(VerboseEnv))
}

// VerboseStdout returns os.Stdout without colors, if the output is enabled by VerboseEnv.
func VerboseStdout() io.WriteCloser {
	if TestIsVerbose() {
		return &stripAnsiWriter{out: os.Stdout}
	}
	return nopWriteCloser{Writer: io.Discard}
}

// stripAnsiWriter writes complete lines without ANSI escape sequences.
// An incomplete line is buffered, because an escape sequence may continue in the next write.
type stripAnsiWriter struct {
	pending []byte
	out     io.Writer
}

func (w *stripAnsiWriter) Write(p []byte) (int, error) {
	w.pending = append(w.pending, p...)
	if end := bytes.LastIndexByte(w.pending, '\n'); end >= 0 {
		if err := w.write(w.pending[:end+1]); err != nil {
			return 0, err
		}
		w.pending = append(w.pending[:0], w.pending[end+1:]...)
	}
	return len(p), nil
}

func (w *stripAnsiWriter) Close() error {
	err := w.write(w.pending)
	w.pending = nil
	return err
}

func (w *stripAnsiWriter) write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	_, err := io.WriteString(w.out, stripansi.Strip(string(p)))
	return err
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
