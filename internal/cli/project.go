package cli

import (
	"log/slog"

	"github.com/ojet-tools/ojet/internal/buildengine"
	"github.com/ojet-tools/ojet/internal/config"
	"github.com/ojet-tools/ojet/internal/engine"
	"github.com/spf13/cobra"
)

// newInvoker builds the build engine adapter; replaced in tests.
var newInvoker = func(s buildengine.Settings) engine.Invoker {
	return buildengine.Dispatch(s)
}

// newEngine constructs the task execution engine from flags and settings.
// When this process was itself started by a build engine, the parent's
// logging choice is inherited unless --no-logs is given.
func newEngine(cmd *cobra.Command) (*engine.Engine, error) {
	logs := config.Logs()
	parent, nested, err := engine.LookupEnv()
	if err != nil {
		slog.Warn("ignoring malformed parent execution context", "error", err)
	} else if nested {
		logs = parent.Logs
		slog.Debug("running nested in a build engine", "parentCwd", parent.Cwd)
	}
	if noLogs {
		logs = false
	}

	settings := config.EngineSettings()
	inv := newInvoker(buildengine.Settings{
		Runtime: settings.Runtime,
		Script:  settings.Script,
		Command: settings.Command,
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
	})

	return engine.New(inv, engine.Config{
		Cwd:         projectDir,
		Logs:        logs,
		Version:     buildVersion,
		Logger:      slog.Default(),
		Diagnostics: cmd.ErrOrStderr(),
	})
}
