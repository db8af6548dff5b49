package rules

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/plc-tools/tia-export/internal/pkg/filesystem"
	"github.com/plc-tools/tia-export/internal/pkg/model"
	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
	validatorPkg "github.com/plc-tools/tia-export/internal/pkg/validator"
)

// File is the content of a rules file, for example:
//
//	replace: false
//	rules:
//	  - scope: logic
//	    kind: block
//	    language: LAD
//	    extension: .xml
//	    folder: lad
//	  - scope: logic
//	    kind: block
//	    language: STL
//	    disabled: true
type File struct {
	// Replace drops the default rules, only rules from the file are used.
	Replace bool       `yaml:"replace"`
	Rules   []FileRule `yaml:"rules" validate:"dive"`
}

type FileRule struct {
	Scope     string `yaml:"scope" validate:"required,software_scope"`
	Kind      string `yaml:"kind" validate:"required,entity_kind"`
	Language  string `yaml:"language" validate:"required_if=Kind block"`
	Extension string `yaml:"extension" validate:"required_unless=Disabled true,file_extension"`
	Folder    string `yaml:"folder" validate:"relative_path"`
	Flatten   bool   `yaml:"flatten"`
	// Disabled removes the rule, entities matching the key are skipped as unsupported.
	Disabled bool `yaml:"disabled"`
}

// LoadFile reads the rules file and applies it to the base table.
func LoadFile(ctx context.Context, fs filesystem.Fs, path string, base *Table) (*Table, error) {
	file, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.PrefixErrorf(err, `cannot read rules file "%s"`, path)
	}

	table, err := Load(ctx, []byte(file.Content), base)
	if err != nil {
		return nil, errors.PrefixErrorf(err, `rules file "%s" is not valid`, path)
	}
	return table, nil
}

// Load parses the YAML rules and applies them to a copy of the base table.
func Load(ctx context.Context, data []byte, base *Table) (*Table, error) {
	content := &File{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(content); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.PrefixError(err, "cannot decode YAML")
	}

	if err := newValidator().ValidateCtx(ctx, content, "", ""); err != nil {
		return nil, err
	}

	var table *Table
	if content.Replace || base == nil {
		table = New()
	} else {
		table = base.Clone()
	}

	for _, r := range content.Rules {
		key := NewKey(model.Scope(r.Scope), model.Kind(r.Kind), r.Language)
		if r.Disabled {
			table.Delete(key)
			continue
		}
		table.Set(key, Rule{
			Extension: r.Extension,
			Folder:    strings.Trim(r.Folder, "/"),
			Flatten:   r.Flatten,
		})
	}

	return table, nil
}

func newValidator() validatorPkg.Validator {
	return validatorPkg.New(
		validatorPkg.Rule{
			Tag: "software_scope",
			Func: func(fl validator.FieldLevel) bool {
				return model.Scope(fl.Field().String()).IsValid()
			},
			ErrorMessage: fmt.Sprintf("{0} must be one of [%s %s]", model.LogicScope, model.VisualizationScope),
		},
		validatorPkg.Rule{
			Tag: "entity_kind",
			Func: func(fl validator.FieldLevel) bool {
				return model.Kind(fl.Field().String()).IsValid()
			},
			ErrorMessage: fmt.Sprintf("{0} must be one of [%s]", kindsList()),
		},
		validatorPkg.Rule{
			Tag: "file_extension",
			Func: func(fl validator.FieldLevel) bool {
				ext := fl.Field().String()
				if ext == "" {
					return true
				}
				return len(ext) > 1 && strings.HasPrefix(ext, ".") && !strings.ContainsAny(ext, `/\`)
			},
			ErrorMessage: "{0} must start with a dot and cannot contain a path separator",
		},
		validatorPkg.Rule{
			Tag: "relative_path",
			Func: func(fl validator.FieldLevel) bool {
				path := fl.Field().String()
				if strings.HasPrefix(path, "/") || strings.Contains(path, `\`) || strings.Contains(path, ":") {
					return false
				}
				for _, segment := range strings.Split(path, "/") {
					if segment == ".." || segment == "." {
						return false
					}
				}
				return true
			},
			ErrorMessage: "{0} must be a relative slash separated path",
		},
	)
}

func kindsList() string {
	var out []string
	for _, k := range model.AllKinds() {
		out = append(out, k.String())
	}
	return strings.Join(out, " ")
}
