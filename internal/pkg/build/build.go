// Package build contains values set by the linker, for example:
//
//	go build -ldflags "-X github.com/plc-tools/tia-export/internal/pkg/build.BuildVersion=v1.0.0"
package build

// nolint: gochecknoglobals
var (
	BuildVersion = "dev"
	GitCommit    = "-"
	BuildDate    = "-"
)
