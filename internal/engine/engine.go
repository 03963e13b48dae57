package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Config holds construction-time settings for an Engine.
type Config struct {
	// Cwd is the directory tasks run in. Relative paths are resolved against
	// the process working directory at construction time.
	Cwd string

	// Logs enables the one-line invocation summary.
	Logs bool

	// Version is reported by Engine.Version.
	Version string

	// Logger receives structured diagnostics. Defaults to slog.Default().
	Logger *slog.Logger

	// Diagnostics receives invocation summaries. Defaults to os.Stderr.
	Diagnostics io.Writer
}

// DefaultConfig returns a Config for the current directory with logging on.
func DefaultConfig() Config {
	return Config{
		Cwd:     ".",
		Logs:    true,
		Version: "dev",
	}
}

// Engine runs tasks against the external build engine inside an isolated
// execution context.
//
// The process working directory is global, so top-level calls to Execute
// are serialized. Calls made from inside an invocation that is still in
// flight (ctx derives from that invocation's ctx) run without waiting.
type Engine struct {
	cwd     string
	logs    bool
	version string
	invoker Invoker
	logger  *slog.Logger
	diag    io.Writer

	mu sync.Mutex

	activeMu sync.Mutex
	active   *activeCall
}

// New creates an Engine that forwards tasks to invoker.
func New(invoker Invoker, cfg Config) (*Engine, error) {
	if invoker == nil {
		return nil, errors.New("engine requires an invoker")
	}

	cwd := cfg.Cwd
	if cwd == "" {
		cwd = "."
	}
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return nil, fmt.Errorf("resolving engine directory %s: %w", cwd, err)
	}

	e := &Engine{
		cwd:     abs,
		logs:    cfg.Logs,
		version: cfg.Version,
		invoker: invoker,
		logger:  cfg.Logger,
		diag:    cfg.Diagnostics,
	}
	if e.version == "" {
		e.version = "dev"
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.diag == nil {
		e.diag = os.Stderr
	}
	return e, nil
}

// Version returns the tool version this engine reports.
func (e *Engine) Version() string { return e.version }

// Dir returns the absolute directory tasks run in.
func (e *Engine) Dir() string { return e.cwd }

// Logs reports whether invocation summaries are printed.
func (e *Engine) Logs() bool { return e.logs }

// Active returns the execution context published by the call currently in
// flight, if any.
func (e *Engine) Active() (ExecutionContext, bool) {
	e.activeMu.Lock()
	defer e.activeMu.Unlock()
	if e.active == nil {
		return ExecutionContext{}, false
	}
	return e.active.ec, true
}

// Execute runs req in the engine's directory and returns exactly what the
// invoker returns. The previous working directory and published context are
// restored before Execute returns, whether the invoker succeeds, fails or
// panics.
func (e *Engine) Execute(ctx context.Context, req TaskRequest) (*Output, error) {
	if req.Task == "" {
		return nil, ErrEmptyTask
	}

	if !e.nested(ctx) {
		e.mu.Lock()
		defer e.mu.Unlock()
	}

	s, err := e.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer s.release()

	if e.logs {
		fmt.Fprintln(e.diag, Summary(req))
	}

	return e.invoker.Invoke(s.ctx, req.TaskList(), req.Options)
}

// nested reports whether ctx belongs to a call of this engine that is still
// in flight. A ctx kept past the end of its call is treated as top-level.
func (e *Engine) nested(ctx context.Context) bool {
	ec, ok := FromContext(ctx)
	if !ok || ec.call == nil {
		return false
	}
	e.activeMu.Lock()
	defer e.activeMu.Unlock()
	for c := e.active; c != nil; c = c.outer {
		if c == ec.call {
			return true
		}
	}
	return false
}

// scope is one acquired execution context. release is safe to call more
// than once; only the first call has an effect.
type scope struct {
	engine *Engine
	ctx    context.Context
	call   *activeCall
	once   sync.Once
}

func (e *Engine) acquire(ctx context.Context) (*scope, error) {
	prior, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("capturing working directory: %w", err)
	}

	call := e.publish(ExecutionContext{Cwd: prior, Logs: e.logs})
	s := &scope{
		engine: e,
		ctx:    WithContext(ctx, call.ec),
		call:   call,
	}

	if err := os.Chdir(e.cwd); err != nil {
		s.release()
		return nil, fmt.Errorf("changing to project directory %s: %w", e.cwd, err)
	}

	e.logger.Debug("execution context acquired", "dir", e.cwd, "prior", prior)
	return s, nil
}

func (s *scope) release() {
	s.once.Do(func() {
		prior := s.call.ec.Cwd
		if prior != "" {
			if err := os.Chdir(prior); err != nil {
				s.engine.logger.Warn("restoring working directory", "dir", prior, "error", err)
			}
		}
		s.engine.unpublish(s.call)
		s.engine.logger.Debug("execution context released", "dir", prior)
	})
}

// publish pushes ec onto the active chain and returns the new call.
func (e *Engine) publish(ec ExecutionContext) *activeCall {
	e.activeMu.Lock()
	defer e.activeMu.Unlock()
	call := &activeCall{outer: e.active}
	ec.call = call
	call.ec = ec
	e.active = call
	return call
}

// unpublish removes call from the active chain. For a top-level call the
// slot becomes empty again.
func (e *Engine) unpublish(call *activeCall) {
	e.activeMu.Lock()
	defer e.activeMu.Unlock()
	if e.active == call {
		e.active = call.outer
		return
	}
	for c := e.active; c != nil; c = c.outer {
		if c.outer == call {
			c.outer = call.outer
			return
		}
	}
}
