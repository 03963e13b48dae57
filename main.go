package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ojet-tools/ojet/internal/buildengine"
	"github.com/ojet-tools/ojet/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		// The build engine has already reported its own failure.
		var exitErr *buildengine.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode > 0 {
			os.Exit(exitErr.ExitCode)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
