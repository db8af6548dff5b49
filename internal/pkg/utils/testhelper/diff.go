//nolint:forbidigo
package testhelper

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/keboola/go-utils/pkg/wildcards"
	"github.com/stretchr/testify/assert"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

// fileNode is one file/dir in expected or actual directory.
type fileNode struct {
	isDir bool
	path  string
}

// fileNodeState in expected and actual directory.
type fileNodeState struct {
	relPath  string
	expected *fileNode
	actual   *fileNode
}

type tHelper interface {
	Helper()
}

// DirectoryContentsSame compares two directories, wildcards can be used in the expected file content.
func DirectoryContentsSame(expectedFs filesystem.Fs, expectedDir string, actualFs filesystem.Fs, actualDir string) error {
	nodes, err := compareDirectories(expectedFs, expectedDir, actualFs, actualDir)
	if err != nil {
		return err
	}

	var errs []string
	for _, node := range nodes {
		switch {
		case node.actual == nil:
			errs = append(errs, fmt.Sprintf(`only in expected "%s"`, node.expected.path))
		case node.expected == nil:
			errs = append(errs, fmt.Sprintf(`only in actual "%s"`, node.actual.path))
		case node.actual.isDir != node.expected.isDir:
			if node.actual.isDir {
				errs = append(errs, fmt.Sprintf(`"%s" is dir in actual, but file in expected`, node.relPath))
			} else {
				errs = append(errs, fmt.Sprintf(`"%s" is file in actual, but dir in expected`, node.relPath))
			}
		case !node.actual.isDir:
			expectedFile, err := expectedFs.ReadFile(node.expected.path)
			if err != nil {
				return err
			}
			actualFile, err := actualFs.ReadFile(node.actual.path)
			if err != nil {
				return err
			}
			if err := wildcards.Compare(expectedFile.Content, actualFile.Content); err != nil {
				return errors.PrefixErrorf(err, `different content of the file "%s"`, node.relPath)
			}
		}
	}

	if len(errs) > 0 {
		return errors.New("Directories are not same:\n" + strings.Join(errs, "\n"))
	}
	return nil
}

// AssertDirectoryContentsSame compares two directories, wildcards can be used in the expected file content.
func AssertDirectoryContentsSame(t assert.TestingT, expectedFs filesystem.Fs, expectedDir string, actualFs filesystem.Fs, actualDir string) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if err := DirectoryContentsSame(expectedFs, expectedDir, actualFs, actualDir); err != nil {
		assert.Fail(t, err.Error())
	}
}

// ListFiles returns sorted relative paths of all files in the directory, directories are not included.
func ListFiles(fs filesystem.Fs, dir string) ([]string, error) {
	var out []string
	err := fs.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			out = append(out, relPath(dir, path))
		}
		return nil
	})
	if err != nil {
		return nil, errors.PrefixErrorf(err, `cannot iterate over directory "%s"`, dir)
	}
	sort.Strings(out)
	return out, nil
}

func compareDirectories(expectedFs filesystem.Fs, expectedDir string, actualFs filesystem.Fs, actualDir string) ([]*fileNodeState, error) {
	// relative path -> state
	nodes := make(map[string]*fileNodeState)
	get := func(rel string) *fileNodeState {
		if _, ok := nodes[rel]; !ok {
			nodes[rel] = &fileNodeState{relPath: rel}
		}
		return nodes[rel]
	}

	err := actualFs.Walk(actualDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if rel := relPath(actualDir, path); rel != "" {
			get(rel).actual = &fileNode{isDir: info.IsDir(), path: path}
		}
		return nil
	})
	if err != nil {
		return nil, errors.PrefixErrorf(err, `cannot iterate over directory "%s" in "%s"`, actualDir, actualFs.BasePath())
	}

	err = expectedFs.Walk(expectedDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if rel := relPath(expectedDir, path); rel != "" {
			get(rel).expected = &fileNode{isDir: info.IsDir(), path: path}
		}
		return nil
	})
	if err != nil {
		return nil, errors.PrefixErrorf(err, `cannot iterate over directory "%s" in "%s"`, expectedDir, expectedFs.BasePath())
	}

	out := make([]*fileNodeState, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].relPath < out[j].relPath
	})
	return out, nil
}

// relPath returns the path relative to the dir, the dir itself is converted to an empty string.
func relPath(dir, path string) string {
	dir = strings.Trim(dir, "/")
	path = strings.Trim(path, "/")
	if dir == "" || dir == "." {
		if path == "." {
			return ""
		}
		return path
	}
	if path == dir {
		return ""
	}
	return strings.TrimPrefix(path, dir+"/")
}
