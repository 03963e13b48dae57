package engine

import (
	"context"
	"errors"
)

// ErrEmptyTask is returned by Execute when the request does not name a task.
var ErrEmptyTask = errors.New("task name is required")

// TaskRequest is the unit of work submitted to an Engine. It is built fresh
// per call and is not retained after Execute returns.
type TaskRequest struct {
	// Task names the operation (e.g., "create", "build", "package").
	// It is opaque here; unknown tasks fail in the build engine.
	Task string

	// Scope optionally narrows the task to a sub-resource kind
	// (e.g., "component", "pack").
	Scope string

	// Parameters are positional values such as names or versions.
	Parameters []string

	// Options are named flags such as release mode or pack name.
	Options Options
}

// TaskList flattens the request into the argument list handed to the build
// engine: [task, scope, parameters...] when a scope is set, otherwise
// [task, parameters...].
func (r TaskRequest) TaskList() []string {
	list := make([]string, 0, 2+len(r.Parameters))
	list = append(list, r.Task)
	if r.Scope != "" {
		list = append(list, r.Scope)
	}
	return append(list, r.Parameters...)
}

// Output captures what a build engine produced for one invocation.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Invoker is the boundary to the external build engine. Implementations
// perform the actual work keyed by the task list and may read the active
// ExecutionContext from ctx.
type Invoker interface {
	Invoke(ctx context.Context, tasks []string, options Options) (*Output, error)
}

// InvokerFunc adapts an ordinary function to the Invoker interface.
type InvokerFunc func(ctx context.Context, tasks []string, options Options) (*Output, error)

// Invoke calls f(ctx, tasks, options).
func (f InvokerFunc) Invoke(ctx context.Context, tasks []string, options Options) (*Output, error) {
	return f(ctx, tasks, options)
}
