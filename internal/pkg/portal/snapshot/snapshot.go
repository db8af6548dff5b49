// Package snapshot implements the engineering tool surface on top of a YAML project snapshot.
//
// The snapshot describes projects, devices, device items and their software trees:
//
//	projectPath: C:\Projects\Line1.ap17
//	projects:
//	  - name: Line1
//	    devices:
//	      - name: S71500/ET200MP station_1
//	        type: System:Device.S71500
//	        items:
//	          - name: PLC_1
//	            software:
//	              kind: plc
//	              blocks:
//	                name: Program blocks
//	                groups:
//	                  - name: Main
//	                    entities:
//	                      - name: Motor1
//	                        kind: block
//	                        language: SCL
//	                        sourceFile: src/Motor1.scl
//
// An entity is exported from the inline source or from the source file, relative to the snapshot.
// Tag tables, text lists and entities without a source are exported as generated XML documents.
package snapshot

import (
	"bytes"
	"context"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/model"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
	"github.com/plc-tools/tia-export/internal/pkg/validator"
)

const (
	PLCSoftwareKind  = "plc"
	HMISoftwareKind  = "hmi"
	DefaultProcessID = 1
)

type Snapshot struct {
	ProcessID   int        `yaml:"processId,omitempty"`
	ProjectPath string     `yaml:"projectPath,omitempty"`
	ProjectList []*Project `yaml:"projects" validate:"dive"`
	// sources is the filesystem with source files, paths are relative to the snapshot directory
	sources filesystem.Fs
	dir     string
}

type Project struct {
	ProjectName string    `yaml:"name" validate:"required"`
	DeviceList  []*Device `yaml:"devices" validate:"dive"`
}

type Device struct {
	DeviceName string        `yaml:"name" validate:"required"`
	TypeID     string        `yaml:"type"`
	ItemList   []*DeviceItem `yaml:"items" validate:"dive"`
}

type DeviceItem struct {
	ItemName    string    `yaml:"name" validate:"required"`
	TypeID      string    `yaml:"type"`
	SoftwareDef *Software `yaml:"software,omitempty" validate:"omitempty"`
}

type Software struct {
	Kind         string `yaml:"kind" validate:"required,oneof=plc hmi"`
	SoftwareName string `yaml:"name,omitempty"`
	// PLC software
	Blocks    *Group `yaml:"blocks,omitempty" validate:"omitempty"`
	Types     *Group `yaml:"types,omitempty" validate:"omitempty"`
	TagTables *Group `yaml:"tagTables,omitempty" validate:"omitempty"`
	// HMI software
	Tags      *Group `yaml:"tags,omitempty" validate:"omitempty"`
	TextLists *Group `yaml:"textLists,omitempty" validate:"omitempty"`
}

// Load reads and validates the snapshot file.
func Load(ctx context.Context, fs filesystem.Fs, path string) (*Snapshot, error) {
	file, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.PrefixErrorf(err, `cannot read project snapshot "%s"`, path)
	}

	s, err := Parse(ctx, []byte(file.Content))
	if err != nil {
		return nil, errors.PrefixErrorf(err, `project snapshot "%s" is not valid`, path)
	}

	s.sources = fs
	s.dir = filesystem.Dir(path)
	return s, nil
}

// Parse decodes the snapshot, source files cannot be used, because there is no filesystem.
func Parse(ctx context.Context, data []byte) (*Snapshot, error) {
	s := &Snapshot{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("the document is empty")
		}
		return nil, errors.PrefixError(err, "cannot decode YAML")
	}

	if err := validator.New().Validate(ctx, s); err != nil {
		return nil, err
	}

	if s.ProcessID == 0 {
		s.ProcessID = DefaultProcessID
	}
	s.bind()
	return s, nil
}

// bind sets back-references from entities to the snapshot and their scope.
func (s *Snapshot) bind() {
	for _, project := range s.ProjectList {
		for _, device := range project.DeviceList {
			for _, item := range device.ItemList {
				sw := item.SoftwareDef
				if sw == nil {
					continue
				}
				scope := model.LogicScope
				if sw.Kind == HMISoftwareKind {
					scope = model.VisualizationScope
				}
				for _, g := range []*Group{sw.Blocks, sw.Types, sw.TagTables, sw.Tags, sw.TextLists} {
					g.bind(s, scope)
				}
			}
		}
	}
}

func (s *Snapshot) sourcePath(path string) string {
	return filesystem.Join(s.dir, path)
}
