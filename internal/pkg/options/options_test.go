package options

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Defaults(t *testing.T) {
	t.Parallel()
	flags := pflag.NewFlagSet("tia-export", pflag.ContinueOnError)
	BindFlags(flags)

	o := New()
	require.NoError(t, o.Load(flags))
	assert.Equal(t, &Options{ProjectPath: "project.yaml", Workers: 1, Clean: true}, o)
}

func TestOptions_Load(t *testing.T) {
	t.Parallel()
	flags := pflag.NewFlagSet("tia-export", pflag.ContinueOnError)
	BindFlags(flags)
	require.NoError(t, flags.Parse([]string{
		"-p", " line1.yaml ",
		"--rules", "rules.yaml",
		"-w", "8",
		"--clean=false",
		"--strict",
		"-l", "export.log",
		"-v",
	}))

	o := New()
	require.NoError(t, o.Load(flags))
	assert.Equal(t, &Options{
		ProjectPath: "line1.yaml",
		RulesPath:   "rules.yaml",
		Workers:     8,
		Clean:       false,
		Strict:      true,
		LogFilePath: "export.log",
		Verbose:     true,
	}, o)
}

func TestOptions_Load_InvalidValue(t *testing.T) {
	t.Parallel()
	flags := pflag.NewFlagSet("tia-export", pflag.ContinueOnError)
	flags.String(WorkersOpt, "many", "")

	err := New().Load(flags)
	require.Error(t, err)
	assert.Equal(t, `invalid value "many" of the flag "--workers": expected a number`, err.Error())
}

func TestOptions_Load_InvalidValues(t *testing.T) {
	t.Parallel()
	flags := pflag.NewFlagSet("tia-export", pflag.ContinueOnError)
	flags.String(WorkersOpt, "many", "")
	flags.String(StrictOpt, "maybe", "")
	flags.String(RulesOpt, " rules.yaml ", "")

	o := New()
	err := o.Load(flags)
	require.Error(t, err)
	assert.Equal(t, strings.TrimSpace(`
- invalid value "many" of the flag "--workers": expected a number
- invalid value "maybe" of the flag "--strict": expected true or false
`), err.Error())

	// Valid values are loaded
	assert.Equal(t, "rules.yaml", o.RulesPath)
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	o := New()
	o.ExportDir = "out"
	require.NoError(t, o.Validate(ctx))

	o.Workers = 100
	err := o.Validate(ctx)
	require.Error(t, err)
	assert.Equal(t, `invalid options: "workers" must be 32 or less`, err.Error())

	o = New()
	err = o.Validate(ctx)
	require.Error(t, err)
	assert.Equal(t, `invalid options: "exportDir" is a required field`, err.Error())
}

func TestOptions_Dump(t *testing.T) {
	t.Parallel()
	o := New()
	o.ExportDir = "out"
	assert.Equal(t, `Parsed options: {"exportDir":"out","project":"project.yaml","workers":1,"clean":true,"strict":false,"verbose":false}`, o.Dump())
}
