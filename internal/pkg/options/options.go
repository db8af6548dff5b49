// Package options contains values of the command line flags.
package options

import (
	"context"
	"reflect"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/plc-tools/tia-export/internal/pkg/utils/errors"
	"github.com/plc-tools/tia-export/internal/pkg/validator"
)

const (
	ProjectOpt = "project"
	RulesOpt   = "rules"
	WorkersOpt = "workers"
	CleanOpt   = "clean"
	StrictOpt  = "strict"
	LogFileOpt = "log-file"
	VerboseOpt = "verbose"
	VersionOpt = "version"
	HelpOpt    = "help"

	DefaultProjectPath = "project.yaml"
	MaxWorkers         = 32
)

// Options contains parsed flags, each field with the "flag" tag is loaded from the flag of the same name.
type Options struct {
	ExportDir   string `json:"exportDir" validate:"required"`
	ProjectPath string `json:"project" flag:"project" validate:"required"`
	RulesPath   string `json:"rules,omitempty" flag:"rules"`
	Workers     int    `json:"workers" flag:"workers" validate:"min=1,max=32"`
	Clean       bool   `json:"clean" flag:"clean"`
	Strict      bool   `json:"strict" flag:"strict"`
	LogFilePath string `json:"logFile,omitempty" flag:"log-file"`
	Verbose     bool   `json:"verbose" flag:"verbose"`
}

func New() *Options {
	return &Options{
		ProjectPath: DefaultProjectPath,
		Workers:     1,
		Clean:       true,
	}
}

// BindFlags defines all flags with default values.
func BindFlags(flags *pflag.FlagSet) {
	defaults := New()
	flags.SortFlags = true
	flags.BoolP(HelpOpt, "h", false, "print help for command")
	flags.BoolP(VersionOpt, "V", false, "print version")
	flags.StringP(ProjectOpt, "p", defaults.ProjectPath, "path to the project snapshot")
	flags.String(RulesOpt, "", "path to a YAML file with export rules")
	flags.IntP(WorkersOpt, "w", defaults.Workers, "number of parallel writes, 1 means sequential export")
	flags.Bool(CleanOpt, defaults.Clean, "remove the content of the export directory before the export")
	flags.Bool(StrictOpt, false, "fail if any entity cannot be exported")
	flags.StringP(LogFileOpt, "l", "", "path to a log file for details")
	flags.BoolP(VerboseOpt, "v", false, "print details")
}

// Load values from the parsed flags, each field with the "flag" tag gets the value of the flag.
func (o *Options) Load(flags *pflag.FlagSet) error {
	// Only flags are bound, the command doesn't read environment variables or config files
	parser := viper.NewWithOptions(viper.KeyDelimiter("::"))
	if err := parser.BindPFlags(flags); err != nil {
		return err
	}

	errs := errors.NewMultiError()
	value := reflect.ValueOf(o).Elem()
	types := value.Type()
	for i := 0; i < types.NumField(); i++ {
		name := types.Field(i).Tag.Get("flag")
		if name == "" {
			continue
		}

		raw := parser.Get(name)
		if raw == nil {
			continue
		}

		field := value.Field(i)
		if err := decode(raw, field.Addr().Interface()); err != nil {
			errs.Append(errors.Errorf(`invalid value "%v" of the flag "--%s": expected %s`, raw, name, expectedValue(field.Kind())))
		}
	}

	o.normalize()
	return errs.ErrorOrNil()
}

// Validate values, ExportDir must be set from the argument before.
func (o *Options) Validate(ctx context.Context) error {
	if err := validator.New().Validate(ctx, o); err != nil {
		return errors.PrefixError(err, "invalid options")
	}
	return nil
}

// Dump options for debugging.
func (o *Options) Dump() string {
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(o)
	if err != nil {
		return "Parsed options: " + err.Error()
	}
	return "Parsed options: " + out
}

func (o *Options) normalize() {
	o.ExportDir = strings.TrimSpace(o.ExportDir)
	o.ProjectPath = strings.TrimSpace(o.ProjectPath)
	o.RulesPath = strings.TrimSpace(o.RulesPath)
	o.LogFilePath = strings.TrimSpace(o.LogFilePath)
}

func decode(input, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{WeaklyTypedInput: true, Result: output})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

func expectedValue(kind reflect.Kind) string {
	switch kind {
	case reflect.Int:
		return "a number"
	case reflect.Bool:
		return "true or false"
	default:
		return "a " + kind.String()
	}
}
