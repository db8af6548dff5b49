package naming

import (
	"fmt"
	"strings"
	"sync"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/model"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

// Registry guarantees each exported entity gets a unique path.
// Paths are compared case-insensitively, because the export may be stored on a case-insensitive filesystem.
type Registry struct {
	lock     *sync.Mutex
	byPath   map[string]model.EntityKey // lower-case path -> entity key
	byKey    map[string]model.AbsPath   // entity key -> path
	reserved []string                   // lower-case directories which cannot contain exported entities
}

func NewRegistry() *Registry {
	return &Registry{
		lock:   &sync.Mutex{},
		byPath: make(map[string]model.EntityKey),
		byKey:  make(map[string]model.AbsPath),
	}
}

// Reserve the directory for internal use, for example for the staging files.
// A path inside the directory is moved to a sibling directory with a numeric suffix, for example ".staging" -> ".staging-001".
func (r *Registry) Reserve(dir string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if dir = strings.Trim(dir, "/"); dir != "" {
		r.reserved = append(r.reserved, strings.ToLower(dir))
	}
}

// EnsureUniquePath adds a numeric suffix to the file name if the path is used by another entity,
// for example "A_B.scl" -> "A_B-001.scl", and attaches the result.
func (r *Registry) EnsureUniquePath(key model.EntityKey, p model.AbsPath) model.AbsPath {
	r.lock.Lock()
	defer r.lock.Unlock()

	p = r.outsideReserved(p)

	stem, ext := splitExt(p.GetRelativePath())
	suffix := 0
	for {
		foundKey, found := r.byPath[pathKey(p)]
		if !found || foundKey == key {
			break
		}
		suffix++
		p.SetRelativePath(fmt.Sprintf(`%s-%03d%s`, stem, suffix, ext))
	}

	if err := r.attach(key, p); err != nil {
		panic(err)
	}
	return p
}

func (r *Registry) outsideReserved(p model.AbsPath) model.AbsPath {
	path := p.Path()
	dir, found := r.reservedDir(path)
	if !found {
		return p
	}

	// The reserved part of the path keeps the original case
	prefix, rest := path[:len(dir)], path[len(dir):]
	for suffix := 1; ; suffix++ {
		moved := fmt.Sprintf(`%s-%03d%s`, prefix, suffix, rest)
		if _, found := r.reservedDir(moved); !found {
			parent, file := filesystem.Split(moved)
			return model.NewAbsPath(strings.TrimSuffix(parent, "/"), file)
		}
	}
}

func (r *Registry) reservedDir(path string) (string, bool) {
	lower := strings.ToLower(path)
	for _, dir := range r.reserved {
		if lower == dir || strings.HasPrefix(lower, dir+"/") {
			return dir, true
		}
	}
	return "", false
}

func (r *Registry) attach(key model.EntityKey, path model.AbsPath) error {
	pathStr := path.Path()
	if len(pathStr) == 0 {
		panic(errors.Errorf(`naming error: path for %s cannot be empty`, key.Desc()))
	}

	// Check if the path is unique
	if foundKey, found := r.byPath[pathKey(path)]; found && foundKey != key {
		return errors.Errorf(
			`naming error: path "%s" is attached to %s, but new %s has same path`,
			pathStr, foundKey.Desc(), key.Desc(),
		)
	}

	// Remove the previous value attached to the key
	if foundPath, found := r.byKey[key.String()]; found {
		delete(r.byPath, pathKey(foundPath))
	}

	r.byPath[pathKey(path)] = key
	r.byKey[key.String()] = path
	return nil
}

func pathKey(p model.AbsPath) string {
	return strings.ToLower(p.Path())
}

func splitExt(file string) (stem, ext string) {
	ext = filesystem.Ext(file)
	// A hidden file without extension, for example ".scl", has no stem
	if ext == file {
		return file, ""
	}
	return strings.TrimSuffix(file, ext), ext
}
