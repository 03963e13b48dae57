//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // OJET_HOME, contains engine/index.mjs
	ConfigDir  string // OJET_CONFIG_DIR
	ProjectDir string // A mock JET project
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so all operations are sandboxed. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ConfigDir:  t.TempDir(),
		ProjectDir: t.TempDir(),
	}

	t.Setenv("OJET_HOME", env.HomeDir)
	t.Setenv("OJET_CONFIG_DIR", env.ConfigDir)
	t.Setenv("OJET", "")

	return env
}

// requireNode skips the test when Node.js is not installed.
func requireNode(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("node"); err != nil {
		t.Skip("Node.js not available, skipping")
	}
}

// mockEngineScript echoes what it received as a single JSON line and exits
// with options.exitCode when set.
const mockEngineScript = `const payload = JSON.parse(process.argv[3]);
console.log(JSON.stringify({
  command: process.argv[2],
  tasks: payload.tasks,
  options: payload.options,
  cwd: process.cwd(),
  channel: process.env.OJET || null,
}));
if (payload.options.exitCode) {
  process.exit(Number(payload.options.exitCode));
}
`

// setupEngine installs the mock build engine under homeDir.
func setupEngine(t *testing.T, homeDir string) string {
	t.Helper()
	script := filepath.Join(homeDir, "engine", "index.mjs")
	writeFile(t, script, mockEngineScript)
	return script
}

// writeProjectConfig writes oraclejetconfig.json into projectDir.
func writeProjectConfig(t *testing.T, projectDir, content string) {
	t.Helper()
	writeFile(t, filepath.Join(projectDir, "oraclejetconfig.json"), content)
}

// writeFile creates a file with the given content, creating parent dirs.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// realPath resolves symlinks so temp dirs compare equal on macOS.
func realPath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("resolving %s: %v", path, err)
	}
	return resolved
}

// assertContains checks that s contains substr.
func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("expected %q to contain %q", s, substr)
	}
}
