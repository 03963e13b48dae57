package buildengine

import (
	"context"
	"fmt"
	"io"

	"github.com/ojet-tools/ojet/internal/engine"
)

// Supported runtime identifiers.
const (
	RuntimeNode    = "node"
	RuntimeCommand = "command"
)

// Settings selects and configures a build engine runtime.
type Settings struct {
	// Runtime is RuntimeNode or RuntimeCommand.
	Runtime string

	// Script overrides the Node.js entry script location.
	Script string

	// Command is the command line for RuntimeCommand, split on whitespace.
	Command string

	// Stdout and Stderr default to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Dispatch returns the Invoker for s.Runtime. Unknown runtimes yield an
// Invoker that always fails.
func Dispatch(s Settings) engine.Invoker {
	switch s.Runtime {
	case RuntimeNode, "":
		return &NodeInvoker{Script: s.Script, Stdout: s.Stdout, Stderr: s.Stderr}
	case RuntimeCommand:
		return &CommandInvoker{Command: s.Command, Stdout: s.Stdout, Stderr: s.Stderr}
	default:
		return &unknownRuntime{name: s.Runtime}
	}
}

type unknownRuntime struct {
	name string
}

func (u *unknownRuntime) Invoke(context.Context, []string, engine.Options) (*engine.Output, error) {
	return nil, fmt.Errorf("unknown build engine runtime %q: supported runtimes are %q and %q", u.name, RuntimeNode, RuntimeCommand)
}
