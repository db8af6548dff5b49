package clean

import (
	"context"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/log"
	"github.com/plc-tools/tia-export/internal/pkg/telemetry"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

type dependencies interface {
	Logger() log.Logger
	Telemetry() telemetry.Telemetry
}

// Run removes the whole content of the export directory, the directory is created if it doesn't exist.
func Run(ctx context.Context, fs filesystem.Fs, d dependencies) (err error) {
	ctx, span := d.Telemetry().Tracer().Start(ctx, "tia.export.operation.clean")
	defer span.End(&err)

	if fs.Exists(".") && !fs.IsDir(".") {
		return errors.Errorf(`export path "%s" is not a directory`, fs.BasePath())
	}

	if fs.IsDir(".") {
		items, err := fs.ReadDir(".")
		if err != nil {
			return errors.PrefixErrorf(err, `cannot list export directory "%s"`, fs.BasePath())
		}
		for _, item := range items {
			if err := fs.Remove(item.Name()); err != nil {
				return err
			}
		}
	}

	if err := fs.Mkdir("."); err != nil {
		return err
	}

	d.Logger().Infof(ctx, `Cleaned export directory "%s".`, fs.BasePath())
	return nil
}
