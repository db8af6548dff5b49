// nolint: forbidigo
package aferofs

import (
	"context"
	"path/filepath"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/filesystem/aferofs/localfs"
	"github.com/plc-tools/tia-export/internal/pkg/filesystem/aferofs/memoryfs"
	"github.com/plc-tools/tia-export/internal/pkg/log"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

// NewLocalFs creates the local filesystem rooted at the base path, relative path is converted to absolute.
func NewLocalFs(_ context.Context, logger log.Logger, basePath string) (filesystem.Fs, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, errors.Errorf(`cannot determine absolute path of "%s": %w`, basePath, err)
	}
	return New(logger, localfs.New(absPath)), nil
}

// NewMemoryFs creates the filesystem in the memory, the base path is ignored.
func NewMemoryFs(_ context.Context, logger log.Logger, _ string) (filesystem.Fs, error) {
	return New(logger, memoryfs.New()), nil
}
