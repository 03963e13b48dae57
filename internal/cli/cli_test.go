package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ojet-tools/ojet/internal/buildengine"
	"github.com/ojet-tools/ojet/internal/engine"
	"go.yaml.in/yaml/v3"
)

// executeCommand runs the root command with args in a clean environment and
// returns what it wrote to stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("OJET", "")
	return runRoot(t, args...)
}

// runRoot resets flag variables, which cobra keeps between runs, and
// executes the root command.
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("OJET_CONFIG_DIR", t.TempDir())

	projectDir = "."
	noLogs = false
	verbose = false
	taskOptionFlags = nil
	pathsJSON = false
	pathsDefaults = false
	versionShort = false
	versionJSON = false

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

type recordedCall struct {
	tasks   []string
	options engine.Options
	dir     string
}

// stubInvoker swaps the build engine for one that records its calls.
func stubInvoker(t *testing.T) *[]recordedCall {
	t.Helper()
	var calls []recordedCall
	orig := newInvoker
	newInvoker = func(buildengine.Settings) engine.Invoker {
		return engine.InvokerFunc(func(_ context.Context, tasks []string, options engine.Options) (*engine.Output, error) {
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			calls = append(calls, recordedCall{tasks: tasks, options: options, dir: wd})
			return &engine.Output{}, nil
		})
	}
	t.Cleanup(func() { newInvoker = orig })
	return &calls
}

func evalSymlinks(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatal(err)
	}
	return resolved
}

func TestBuildTaskRequest(t *testing.T) {
	build := taskDef{Name: "build", Scopes: []string{"component"}}
	clean := taskDef{Name: "clean"}

	tests := []struct {
		name       string
		def        taskDef
		args       []string
		wantScope  string
		wantParams []string
	}{
		{name: "no args", def: build, args: nil, wantParams: []string{}},
		{name: "scope only", def: build, args: []string{"component"}, wantScope: "component", wantParams: []string{}},
		{name: "scope and params", def: build, args: []string{"component", "my-comp"}, wantScope: "component", wantParams: []string{"my-comp"}},
		{name: "unknown scope is a parameter", def: build, args: []string{"web"}, wantParams: []string{"web"}},
		{name: "task without scopes", def: clean, args: []string{"component"}, wantParams: []string{"component"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := buildTaskRequest(tt.def, tt.args, nil)
			if err != nil {
				t.Fatalf("buildTaskRequest() error: %v", err)
			}
			if req.Task != tt.def.Name {
				t.Errorf("Task = %q, want %q", req.Task, tt.def.Name)
			}
			if req.Scope != tt.wantScope {
				t.Errorf("Scope = %q, want %q", req.Scope, tt.wantScope)
			}
			if !reflect.DeepEqual(req.Parameters, tt.wantParams) {
				t.Errorf("Parameters = %v, want %v", req.Parameters, tt.wantParams)
			}
		})
	}
}

func TestParseOptionFlags(t *testing.T) {
	opts, err := parseOptionFlags([]string{"release", "theme=redwood", "--sass=false", "minify = true", "name=a=b"})
	if err != nil {
		t.Fatalf("parseOptionFlags() error: %v", err)
	}

	wantKeys := []string{"release", "theme", "sass", "minify", "name"}
	if got := opts.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Fatalf("Keys() = %v, want %v", got, wantKeys)
	}

	want := map[string]any{
		"release": true,
		"theme":   "redwood",
		"sass":    false,
		"minify":  true,
		"name":    "a=b",
	}
	for key, wantValue := range want {
		got, _ := opts.Get(key)
		if got != wantValue {
			t.Errorf("option %q = %#v, want %#v", key, got, wantValue)
		}
	}
}

func TestParseOptionFlags_EmptyKey(t *testing.T) {
	for _, flag := range []string{"", "=x", "--=x", "  "} {
		if _, err := parseOptionFlags([]string{flag}); err == nil {
			t.Errorf("parseOptionFlags(%q) expected error, got nil", flag)
		}
	}
}

func TestTaskCommand_InvokesEngine(t *testing.T) {
	calls := stubInvoker(t)
	dir := t.TempDir()
	before, _ := os.Getwd()

	_, stderr, err := executeCommand(t, "--cwd", dir, "build", "component", "my-comp", "-o", "release", "-o", "theme=redwood")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if len(*calls) != 1 {
		t.Fatalf("invoker called %d times, want 1", len(*calls))
	}
	call := (*calls)[0]

	wantTasks := []string{"build", "component", "my-comp"}
	if !reflect.DeepEqual(call.tasks, wantTasks) {
		t.Errorf("tasks = %v, want %v", call.tasks, wantTasks)
	}
	if got := call.options.Flags(); !reflect.DeepEqual(got, []string{"--release=true", "--theme=redwood"}) {
		t.Errorf("options = %v", got)
	}
	if evalSymlinks(t, call.dir) != evalSymlinks(t, dir) {
		t.Errorf("invoker ran in %q, want %q", call.dir, dir)
	}

	after, _ := os.Getwd()
	if after != before {
		t.Errorf("working directory not restored: %q, want %q", after, before)
	}

	wantSummary := "OJET API: ojet build component my-comp --release=true --theme=redwood"
	if !strings.Contains(stderr, wantSummary) {
		t.Errorf("stderr = %q, want summary %q", stderr, wantSummary)
	}
}

func TestTaskCommand_NoLogs(t *testing.T) {
	stubInvoker(t)

	_, stderr, err := executeCommand(t, "--cwd", t.TempDir(), "--no-logs", "clean")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if strings.Contains(stderr, "OJET API:") {
		t.Errorf("summary printed with --no-logs: %q", stderr)
	}
}

func TestTaskCommand_InheritsParentLogs(t *testing.T) {
	stubInvoker(t)
	dir := t.TempDir()

	encoded, err := engine.ExecutionContext{Cwd: dir, Logs: false}.Encode()
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("OJET", encoded)
	_, stderr, err := runRoot(t, "--cwd", dir, "restore")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if strings.Contains(stderr, "OJET API:") {
		t.Errorf("summary printed although the parent disabled logs: %q", stderr)
	}
}

func TestTaskCommand_InvalidOption(t *testing.T) {
	calls := stubInvoker(t)

	_, _, err := executeCommand(t, "--cwd", t.TempDir(), "build", "-o", "=x")
	if err == nil {
		t.Fatal("expected error for empty option key, got nil")
	}
	if len(*calls) != 0 {
		t.Errorf("invoker called %d times, want 0", len(*calls))
	}
}

func TestTaskCommand_MissingDirectory(t *testing.T) {
	calls := stubInvoker(t)
	missing := filepath.Join(t.TempDir(), "missing")

	_, _, err := executeCommand(t, "--cwd", missing, "build")
	if err == nil {
		t.Fatal("expected error for missing project directory, got nil")
	}
	if len(*calls) != 0 {
		t.Errorf("invoker called %d times, want 0", len(*calls))
	}
}

func TestPathsCommand_YAML(t *testing.T) {
	dir := t.TempDir()
	config := `{"paths": {"source": {"web": "web-src"}, "staging": {"web": "out"}}}`
	if err := os.WriteFile(filepath.Join(dir, "oraclejetconfig.json"), []byte(config), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := executeCommand(t, "paths", dir)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	var got map[string]string
	if err := yaml.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, stdout)
	}
	if got["sourceWeb"] != "web-src" {
		t.Errorf("sourceWeb = %q, want %q", got["sourceWeb"], "web-src")
	}
	if got["stagingWeb"] != "out" {
		t.Errorf("stagingWeb = %q, want %q", got["stagingWeb"], "out")
	}
	if got["source"] != "src" {
		t.Errorf("source = %q, want %q", got["source"], "src")
	}
}

func TestPathsCommand_DefaultsJSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "paths", "--defaults", "--json")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	want := map[string]string{
		"source":           "src",
		"sourceWeb":        "src-web",
		"sourceHybrid":     "src-hybrid",
		"sourceJavascript": "js",
		"sourceTests":      "tests",
		"sourceThemes":     "themes",
		"stagingHybrid":    "hybrid",
		"stagingWeb":       "web",
		"stagingThemes":    "themes",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestPathsCommand_Malformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "oraclejetconfig.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := executeCommand(t, "paths", dir); err == nil {
		t.Fatal("expected error for malformed configuration, got nil")
	}
}

func TestCheckProjectConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantOK  bool
		wantOut string
	}{
		{name: "missing", wantOK: true, wantOut: "[WARN]"},
		{name: "valid", content: `{"generatorVersion": "1.0.0", "paths": {"source": {"web": "web"}}}`, wantOK: true, wantOut: "[ OK ]"},
		{name: "schema violation", content: `{"paths": {"source": {"web": 42}}}`, wantOK: false, wantOut: "paths.source.web: "},
		{name: "malformed", content: `{`, wantOK: false, wantOut: "[FAIL]"},
		{name: "byte order mark", content: "\xEF\xBB\xBF" + `{"generatorVersion": "1.0.0"}`, wantOK: true, wantOut: "is valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != "" {
				if err := os.WriteFile(filepath.Join(dir, "oraclejetconfig.json"), []byte(tt.content), 0644); err != nil {
					t.Fatal(err)
				}
			}

			var out bytes.Buffer
			if got := checkProjectConfig(&out, dir); got != tt.wantOK {
				t.Errorf("checkProjectConfig() = %v, want %v\n%s", got, tt.wantOK, out.String())
			}
			if !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("output %q does not contain %q", out.String(), tt.wantOut)
			}
		})
	}
}

func TestNewLogger_NonTerminalIsJSON(t *testing.T) {
	var buf bytes.Buffer

	newLogger(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug record written without verbose: %q", buf.String())
	}

	newLogger(&buf, true).Debug("shown", "dir", "/tmp/app")
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	if record["msg"] != "shown" || record["dir"] != "/tmp/app" {
		t.Errorf("record = %v", record)
	}
}

func TestStatusWriter_PlainWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	w := newStatusWriter(&buf)

	line := "  [ OK ] node found at /usr/bin/node\n"
	n, err := w.Write([]byte(line))
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if n != len(line) {
		t.Errorf("Write() = %d, want %d", n, len(line))
	}
	if buf.String() != line {
		t.Errorf("output = %q, want %q", buf.String(), line)
	}
}

func TestVersionCommand_JSON(t *testing.T) {
	t.Setenv("OJET_ENGINE_RUNTIME", "command")

	stdout, _, err := executeCommand(t, "version", "--json")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	var info map[string]string
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if info["module"] != "github.com/ojet-tools/ojet" {
		t.Errorf("module = %q, want %q", info["module"], "github.com/ojet-tools/ojet")
	}
	if info["engineRuntime"] != "command" {
		t.Errorf("engineRuntime = %q, want %q", info["engineRuntime"], "command")
	}
	if info["goVersion"] == "" {
		t.Errorf("goVersion = %q", info["goVersion"])
	}
}

func TestVersionCommand_Short(t *testing.T) {
	stdout, _, err := executeCommand(t, "version", "--short")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if strings.Count(stdout, "\n") != 1 {
		t.Errorf("--short printed %q, want a single line", stdout)
	}
}
