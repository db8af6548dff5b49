// Package aferofs implements the filesystem.Fs interface on top of the afero library.
package aferofs

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/filesystem/aferofs/abstract"
	"github.com/plc-tools/tia-export/internal/pkg/log"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

type Fs struct {
	backend abstract.Backend
	utils   *afero.Afero
	logger  log.Logger
}

func New(logger log.Logger, backend abstract.Backend) *Fs {
	return &Fs{backend: backend, utils: &afero.Afero{Fs: backend}, logger: logger}
}

func (v *Fs) Backend() abstract.Backend {
	return v.backend
}

func (v *Fs) ApiName() string {
	return v.backend.Name()
}

func (v *Fs) BasePath() string {
	return v.backend.BasePath()
}

func (v *Fs) Walk(root string, walkFn filesystem.WalkFunc) error {
	return v.backend.Walk(v.real(root), func(p string, info os.FileInfo, err error) error {
		return walkFn(v.rel(p), info, err)
	})
}

func (v *Fs) Stat(p string) (os.FileInfo, error) {
	return v.backend.Stat(v.real(p))
}

func (v *Fs) ReadDir(p string) ([]os.FileInfo, error) {
	return v.utils.ReadDir(v.real(p))
}

// Mkdir creates the directory and all missing parents, an existing directory is not an error.
func (v *Fs) Mkdir(p string) error {
	if err := v.backend.MkdirAll(v.real(p), 0o755); err != nil {
		return errors.Errorf(`cannot create directory "%s": %w`, p, err)
	}
	return nil
}

func (v *Fs) Exists(p string) bool {
	_, err := v.Stat(p)
	return err == nil
}

func (v *Fs) IsFile(p string) bool {
	info, err := v.Stat(p)
	return err == nil && !info.IsDir()
}

func (v *Fs) IsDir(p string) bool {
	info, err := v.Stat(p)
	return err == nil && info.IsDir()
}

func (v *Fs) Create(name string) (afero.File, error) {
	return v.backend.Create(v.real(name))
}

func (v *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	return v.backend.OpenFile(v.real(name), flag, perm)
}

// Move renames the file, the destination must not exist.
func (v *Fs) Move(src, dst string) error {
	if v.Exists(dst) {
		return errors.Errorf(`cannot move "%s" -> "%s": destination exists`, src, dst)
	}
	if err := v.backend.Rename(v.real(src), v.real(dst)); err != nil {
		return errors.Errorf(`cannot move "%s" -> "%s": %w`, src, dst, err)
	}
	v.logger.Debugf(context.Background(), `Moved "%s" -> "%s"`, src, dst)
	return nil
}

// Remove removes the file or the directory with all its content.
func (v *Fs) Remove(p string) error {
	if err := v.backend.RemoveAll(v.real(p)); err != nil {
		return errors.Errorf(`cannot remove "%s": %w`, p, err)
	}
	return nil
}

func (v *Fs) ReadFile(p string) (*filesystem.RawFile, error) {
	content, err := v.utils.ReadFile(v.real(p))
	if err != nil {
		return nil, errors.Errorf(`cannot read file "%s": %w`, p, err)
	}
	return filesystem.NewRawFile(p, string(content)), nil
}

func (v *Fs) WriteFile(file *filesystem.RawFile) error {
	if err := v.Mkdir(filesystem.Dir(file.Path)); err != nil {
		return err
	}
	if err := v.utils.WriteFile(v.real(file.Path), []byte(file.Content), 0o644); err != nil {
		return errors.Errorf(`cannot write file "%s": %w`, file.Path, err)
	}
	return nil
}

// real converts the internal path to the backend path, all backend paths are absolute within the base path.
func (v *Fs) real(p string) string {
	return filesystem.FromSlash(path.Join("/", filesystem.ToSlash(p)))
}

// rel converts the backend path back to the internal path.
func (v *Fs) rel(p string) string {
	p = strings.TrimPrefix(filesystem.ToSlash(p), "/")
	if p == "" {
		return "."
	}
	return p
}
