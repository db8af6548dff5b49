package idgenerator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunID(t *testing.T) {
	t.Parallel()

	id1 := RunID()
	id2 := RunID()
	assert.Len(t, id1, RunIDLength)
	assert.Regexp(t, `^[0-9a-zA-Z]+$`, id1)
	assert.NotEqual(t, id1, id2)
}
