package testhelper

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripAnsiWriter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	w := &stripAnsiWriter{out: &out}

	// Escape sequence split between writes
	_, err := w.Write([]byte("\x1b[3"))
	require.NoError(t, err)
	_, err = w.Write([]byte("1mError\x1b[0m: cannot export\nnext"))
	require.NoError(t, err)
	assert.Equal(t, "Error: cannot export\n", out.String())

	// Rest is written on close
	require.NoError(t, w.Close())
	assert.Equal(t, "Error: cannot export\nnext", out.String())
}
