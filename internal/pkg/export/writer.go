package export

import (
	"context"
	"fmt"

	"github.com/c2h5oh/datasize"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/log"
	"github.com/plc-tools/tia-export/internal/pkg/model"
	"github.com/plc-tools/tia-export/internal/pkg/naming"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

// AtomicWriter writes the entity to a staging file first and then replaces the destination.
// The destination is never left with a partially written content.
type AtomicWriter struct {
	fs         filesystem.Fs
	logger     log.Logger
	stagingDir string
}

type Result struct {
	Path string
	Size datasize.ByteSize
}

func NewAtomicWriter(fs filesystem.Fs, logger log.Logger, stagingDir string) *AtomicWriter {
	return &AtomicWriter{fs: fs, logger: logger, stagingDir: stagingDir}
}

func (w *AtomicWriter) Write(ctx context.Context, entity model.Entity, dst string) (result Result, err error) {
	staging := naming.StagingPath(w.stagingDir, entity.Name(), filesystem.Ext(dst))

	// Remove the staging file on failure
	defer func() {
		if err != nil && w.fs.Exists(staging) {
			if rmErr := w.fs.Remove(staging); rmErr != nil {
				w.logger.Warnf(ctx, `Cannot remove staging file "%s": %s`, staging, rmErr)
			}
		}
	}()

	// Stale file from a previous attempt
	if w.fs.Exists(staging) {
		if err := w.fs.Remove(staging); err != nil {
			return result, &IOError{Op: "remove stale staging file", Entity: entity.Name(), Path: staging, Err: err}
		}
	}

	if err := w.serialize(ctx, entity, staging, dst); err != nil {
		return result, err
	}

	stat, err := w.fs.Stat(staging)
	if err != nil {
		err = errors.PrefixError(err, "the engineering tool did not produce the file")
		return result, &SerializationError{Entity: entity.Name(), StagingPath: staging, Destination: dst, Err: err}
	}

	if w.fs.IsDir(dst) {
		return result, &IOError{Op: "replace", Entity: entity.Name(), Path: dst, Err: errors.New("destination is a directory")}
	}
	if w.fs.Exists(dst) {
		if err := w.fs.Remove(dst); err != nil {
			return result, &IOError{Op: "remove previous file", Entity: entity.Name(), Path: dst, Err: err}
		}
	}

	if err := w.fs.Move(staging, dst); err != nil {
		return result, &IOError{Op: fmt.Sprintf(`move "%s" to`, staging), Entity: entity.Name(), Path: dst, Err: err}
	}

	return Result{Path: dst, Size: datasize.ByteSize(stat.Size())}, nil
}

// serialize calls the engineering tool, a panic is converted to an error.
func (w *AtomicWriter) serialize(ctx context.Context, entity model.Entity, staging, dst string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &SerializationError{Entity: entity.Name(), StagingPath: staging, Destination: dst, Err: errors.Errorf("panic: %v", r)}
		}
	}()

	if err := entity.ExportToFile(ctx, w.fs, staging); err != nil {
		return &SerializationError{Entity: entity.Name(), StagingPath: staging, Destination: dst, Err: err}
	}
	return nil
}
