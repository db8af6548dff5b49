package snapshot

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/model"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
)

// Entity implements model.Entity.
type Entity struct {
	EntityName string     `yaml:"name"`
	EntityKind model.Kind `yaml:"kind" validate:"required,oneof=block type tagTable textList"`
	Language   string     `yaml:"language,omitempty" validate:"required_if=EntityKind block"`
	// Source is the exported content.
	Source string `yaml:"source,omitempty"`
	// SourceFile is a path to the exported content, relative to the snapshot file.
	SourceFile string `yaml:"sourceFile,omitempty" validate:"excluded_with=Source"`
	// Protected block cannot be exported, the know-how protection must be removed first.
	Protected bool `yaml:"protected,omitempty"`
	// Inconsistent block cannot be exported, the software must be compiled first.
	Inconsistent bool `yaml:"inconsistent,omitempty"`
	// Tags of a tag table, used by the generated document.
	Tags []Tag `yaml:"tags,omitempty" validate:"dive"`
	// Texts of a text list, used by the generated document.
	Texts []Text `yaml:"texts,omitempty" validate:"dive"`

	snapshot *Snapshot
	scope    model.Scope
}

type Tag struct {
	Name     string `yaml:"name" validate:"required"`
	DataType string `yaml:"dataType" validate:"required"`
	Address  string `yaml:"address,omitempty"`
	Comment  string `yaml:"comment,omitempty"`
}

type Text struct {
	Value string `yaml:"value" validate:"required"`
	Text  string `yaml:"text"`
}

func (e *Entity) Name() string {
	return e.EntityName
}

func (e *Entity) Kind() model.Kind {
	return e.EntityKind
}

func (e *Entity) LanguageTag() string {
	return e.Language
}

func (e *Entity) Scope() model.Scope {
	return e.scope
}

// ExportToFile writes the entity content to a new file.
func (e *Entity) ExportToFile(ctx context.Context, fs filesystem.Fs, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch {
	case e.Protected:
		return errors.Errorf(`%s "%s" is know-how protected`, e.EntityKind.Desc(), e.EntityName)
	case e.Inconsistent:
		return errors.Errorf(`%s "%s" is inconsistent, compile the software first`, e.EntityKind.Desc(), e.EntityName)
	}

	// Read the content first, so no file is created on error
	var content io.Reader
	switch {
	case e.SourceFile != "":
		if e.snapshot == nil || e.snapshot.sources == nil {
			return errors.Errorf(`cannot read source file "%s": snapshot has no filesystem`, e.SourceFile)
		}
		file, err := e.snapshot.sources.ReadFile(e.snapshot.sourcePath(e.SourceFile))
		if err != nil {
			return errors.PrefixErrorf(err, `cannot read source file "%s"`, e.SourceFile)
		}
		content = strings.NewReader(file.Content)
	case e.Source != "":
		content = strings.NewReader(e.Source)
	}

	// The file must not exist
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if content != nil {
		_, err = io.Copy(f, content)
	} else {
		err = writeDocument(f, e)
	}

	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
