// nolint: forbidigo
package filesystem

import (
	"context"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/plc-tools/tia-export/internal/pkg/log"
)

// Factory creates the filesystem rooted at the base path.
type Factory func(ctx context.Context, logger log.Logger, basePath string) (Fs, error)

type WalkFunc = filepath.WalkFunc

// Fs - filesystem interface.
// All paths are relative to the BasePath and use the forward slash as the separator.
type Fs interface {
	ApiName() string // name of the used implementation, for example local, memory, ...
	BasePath() string
	Walk(root string, walkFn WalkFunc) error
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.FileInfo, error)
	Mkdir(path string) error
	Exists(path string) bool
	IsFile(path string) bool
	IsDir(path string) bool
	Create(name string) (afero.File, error)
	OpenFile(name string, flag int, perm os.FileMode) (afero.File, error)
	Move(src, dst string) error
	Remove(path string) error
	ReadFile(path string) (*RawFile, error)
	WriteFile(file *RawFile) error
}

// RawFile is a file with the content as a string.
type RawFile struct {
	Path    string
	Content string
}

func NewRawFile(path, content string) *RawFile {
	return &RawFile{Path: path, Content: content}
}

// Join joins any number of path elements into a single slash separated path.
func Join(elem ...string) string {
	return path.Join(elem...)
}

// Split splits path immediately following the final separator.
func Split(p string) (dir, file string) {
	return path.Split(p)
}

// Dir returns all but the last element of path, typically the path's directory.
func Dir(p string) string {
	return path.Dir(p)
}

// Base returns the last element of path.
func Base(p string) string {
	return path.Base(p)
}

// Ext returns the file name extension used by path.
func Ext(p string) string {
	return path.Ext(p)
}

// FromSlash returns OS representation of the path.
func FromSlash(p string) string {
	return filepath.FromSlash(p)
}

// ToSlash returns internal representation of the path.
func ToSlash(p string) string {
	return filepath.ToSlash(p)
}
