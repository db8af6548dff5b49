package abstract

import (
	"github.com/spf13/afero"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
)

// Backend is an afero filesystem with the base path.
type Backend interface {
	afero.Fs
	Name() string
	BasePath() string
	Walk(root string, walkFn filesystem.WalkFunc) error
}

type BackendProvider interface {
	Backend() Backend
}
