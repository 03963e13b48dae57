package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ojet-tools/ojet/internal/branding"
)

// ExecutionContext is the ambient state published while a task runs.
type ExecutionContext struct {
	// Cwd is the working directory the process was in before the engine
	// moved into the project directory.
	Cwd string `json:"cwd"`

	// Logs reports whether the owning engine prints invocation summaries.
	Logs bool `json:"logs"`

	call *activeCall
}

// activeCall is one published context. outer links to the call it is nested
// in, forming the engine's live chain.
type activeCall struct {
	ec    ExecutionContext
	outer *activeCall
}

type contextKey struct{}

// WithContext returns a copy of ctx carrying ec.
func WithContext(ctx context.Context, ec ExecutionContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ec)
}

// FromContext returns the ExecutionContext carried by ctx, if any.
func FromContext(ctx context.Context) (ExecutionContext, bool) {
	ec, ok := ctx.Value(contextKey{}).(ExecutionContext)
	return ec, ok
}

// Encode serializes the context for the environment channel.
func (c ExecutionContext) Encode() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding execution context: %w", err)
	}
	return string(data), nil
}

// DecodeContext parses a serialized ExecutionContext.
func DecodeContext(s string) (ExecutionContext, error) {
	var ec ExecutionContext
	if err := json.Unmarshal([]byte(s), &ec); err != nil {
		return ExecutionContext{}, fmt.Errorf("decoding execution context: %w", err)
	}
	return ec, nil
}

// Environ returns env with the channel variable set to the encoded context,
// replacing any existing assignment. It is meant for child process
// environments; the current process environment is never modified.
func (c ExecutionContext) Environ(env []string) ([]string, error) {
	encoded, err := c.Encode()
	if err != nil {
		return nil, err
	}
	prefix := branding.ChannelEnv() + "="
	out := make([]string, 0, len(env)+1)
	for _, e := range env {
		if !strings.HasPrefix(e, prefix) {
			out = append(out, e)
		}
	}
	return append(out, prefix+encoded), nil
}

// LookupEnv reads the ExecutionContext a parent process published through the
// channel variable. It reports false when the variable is unset.
func LookupEnv() (ExecutionContext, bool, error) {
	raw, ok := os.LookupEnv(branding.ChannelEnv())
	if !ok || raw == "" {
		return ExecutionContext{}, false, nil
	}
	ec, err := DecodeContext(raw)
	if err != nil {
		return ExecutionContext{}, false, fmt.Errorf("reading %s: %w", branding.ChannelEnv(), err)
	}
	return ec, true, nil
}
