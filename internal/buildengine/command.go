package buildengine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/ojet-tools/ojet/internal/engine"
)

// CommandInvoker runs an arbitrary build engine executable as
// `<command> <tasks...> --key=value...`.
type CommandInvoker struct {
	// Command is the command line, split on whitespace (e.g., "npx ojet-engine").
	Command string

	Stdout io.Writer
	Stderr io.Writer
}

// Invoke implements engine.Invoker.
func (c *CommandInvoker) Invoke(ctx context.Context, tasks []string, options engine.Options) (*engine.Output, error) {
	fields := strings.Fields(c.Command)
	if len(fields) == 0 {
		return nil, errors.New("command build engine requires engine.command to be set")
	}

	bin, err := exec.LookPath(fields[0])
	if err != nil {
		return nil, fmt.Errorf("locating build engine %s: %w", fields[0], err)
	}

	args := append([]string{}, fields[1:]...)
	args = append(args, tasks...)
	args = append(args, options.Flags()...)

	env, err := childEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("building build engine environment: %w", err)
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = env

	return run(cmd, tasks, c.Stdout, c.Stderr)
}
