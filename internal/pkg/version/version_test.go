package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	t.Parallel()
	assert.True(t, IsDev())
	assert.Equal(t, "Version:    dev\nGit commit: -\nBuild date: -\nGo version: "+runtime.Version()+"\nOs/Arch:    "+runtime.GOOS+"/"+runtime.GOARCH+"\n", Version())
}
