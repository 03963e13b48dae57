package buildengine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/ojet-tools/ojet/internal/engine"
)

// ExitError reports a build engine process that exited non-zero.
type ExitError struct {
	Tasks    []string
	ExitCode int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("build engine exited with code %d running %q", e.ExitCode, e.Tasks)
}

// childEnv returns the environment for a build engine process: the current
// environment plus the execution context carried by ctx, if any.
func childEnv(ctx context.Context) ([]string, error) {
	env := os.Environ()
	ec, ok := engine.FromContext(ctx)
	if !ok {
		return env, nil
	}
	return ec.Environ(env)
}

// captureLimit bounds the output kept per stream. Long-running tasks such
// as serve keep streaming past it; only the tail ends up in engine.Output.
const captureLimit = 64 << 10

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	buf   bytes.Buffer
	limit int
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if n >= t.limit {
		t.buf.Reset()
		t.buf.Write(p[n-t.limit:])
		return n, nil
	}
	if over := t.buf.Len() + n - t.limit; over > 0 {
		t.buf.Next(over)
	}
	t.buf.Write(p)
	return n, nil
}

func (t *tailBuffer) String() string { return t.buf.String() }

// run executes cmd, streaming output to the given writers while capturing
// the tail of it. A non-zero exit is reported as *ExitError alongside the output.
func run(cmd *exec.Cmd, tasks []string, stdout, stderr io.Writer) (*engine.Output, error) {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	stdoutBuf := &tailBuffer{limit: captureLimit}
	stderrBuf := &tailBuffer{limit: captureLimit}
	cmd.Stdout = io.MultiWriter(stdout, stdoutBuf)
	cmd.Stderr = io.MultiWriter(stderr, stderrBuf)

	err := cmd.Run()

	output := &engine.Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, &ExitError{Tasks: tasks, ExitCode: output.ExitCode}
		}
		return output, fmt.Errorf("executing build engine: %w", err)
	}
	return output, nil
}
