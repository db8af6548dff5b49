package main

import (
	"os"

	"github.com/plc-tools/tia-export/internal/pkg/cli"
	"github.com/plc-tools/tia-export/internal/pkg/filesystem/aferofs"
)

func main() {
	// Run command
	cmd := cli.NewRootCommand(os.Stdin, os.Stdout, os.Stderr, aferofs.NewLocalFs, cli.SnapshotPortal)
	os.Exit(cmd.Execute())
}
