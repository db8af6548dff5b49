package model

import (
	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
)

// AbsPath is a path of an exported file relative to the export root.
// ParentPath is the directory, RelativePath is the file name.
type AbsPath struct {
	RelativePath string
	parentPath   string
}

func NewAbsPath(parentPath, objectPath string) AbsPath {
	return AbsPath{parentPath: parentPath, RelativePath: objectPath}
}

func (p AbsPath) GetRelativePath() string {
	return p.RelativePath
}

func (p *AbsPath) SetRelativePath(path string) {
	p.RelativePath = path
}

func (p AbsPath) GetParentPath() string {
	return p.parentPath
}

func (p *AbsPath) SetParentPath(parentPath string) {
	p.parentPath = parentPath
}

func (p AbsPath) Path() string {
	return filesystem.Join(p.parentPath, p.RelativePath)
}

func (p AbsPath) String() string {
	return p.Path()
}
