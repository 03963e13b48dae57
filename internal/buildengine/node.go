package buildengine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ojet-tools/ojet/internal/branding"
	"github.com/ojet-tools/ojet/internal/engine"
)

// Entry script location relative to OJET_HOME or the installation prefix.
const (
	engineHomeDir   = "engine"
	enginePrefixDir = "lib/ojet-engine"
	engineScript    = "index.mjs"
)

// NodeInvoker runs the Node.js build engine as
// `node <script> run <json>`, where json is {"tasks": [...], "options": {...}}.
type NodeInvoker struct {
	// Script overrides the entry script location.
	Script string

	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

type nodePayload struct {
	Tasks   []string       `json:"tasks"`
	Options engine.Options `json:"options"`
}

// Invoke implements engine.Invoker.
func (n *NodeInvoker) Invoke(ctx context.Context, tasks []string, options engine.Options) (*engine.Output, error) {
	nodeBin, err := exec.LookPath("node")
	if err != nil {
		return nil, fmt.Errorf("node build engine requires Node.js: %w", err)
	}

	script, err := ResolveScript(n.Script)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(nodePayload{Tasks: tasks, Options: options})
	if err != nil {
		return nil, fmt.Errorf("serializing task request: %w", err)
	}

	env, err := childEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("building build engine environment: %w", err)
	}

	cmd := exec.CommandContext(ctx, nodeBin, script, "run", string(payload))
	cmd.Env = env

	return run(cmd, tasks, n.Stdout, n.Stderr)
}

// ResolveScript locates the Node.js entry script. An explicit override wins,
// then $OJET_HOME/engine/index.mjs, then <binary-dir>/../lib/ojet-engine/index.mjs.
func ResolveScript(override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("build engine script not found at %s: %w", override, err)
		}
		return filepath.Abs(override)
	}

	if home := os.Getenv(branding.EnvVar("HOME")); home != "" {
		path := filepath.Join(home, engineHomeDir, engineScript)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	path := filepath.Join(filepath.Dir(exe), "..", filepath.FromSlash(enginePrefixDir), engineScript)
	if _, err := os.Stat(path); err == nil {
		return filepath.Clean(path), nil
	}

	return "", fmt.Errorf("cannot find build engine script %s: set %s or engine.script", engineScript, branding.EnvVar("HOME"))
}
