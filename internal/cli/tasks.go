package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ojet-tools/ojet/internal/engine"
	"github.com/ojet-tools/ojet/internal/projectconfig"
	"github.com/spf13/cobra"
)

// taskDef describes a task command. Scopes lists the words accepted as the
// first positional argument to narrow the task; anything else is a
// parameter.
type taskDef struct {
	Name   string
	Short  string
	Scopes []string
}

var taskDefs = []taskDef{
	{Name: "create", Short: "Scaffold an application, component, pack or theme", Scopes: []string{"component", "pack", "theme"}},
	{Name: "add", Short: "Add a capability such as hybrid, pwa, sass or typescript", Scopes: []string{"hybrid", "pwa", "sass", "pcss", "typescript", "theming", "web", "webpack", "jest", "testing", "docgen"}},
	{Name: "build", Short: "Build the application or a component", Scopes: []string{"component"}},
	{Name: "serve", Short: "Build and serve the application", Scopes: []string{"component"}},
	{Name: "clean", Short: "Remove staging output"},
	{Name: "package", Short: "Package a component or pack for distribution", Scopes: []string{"component", "pack"}},
	{Name: "publish", Short: "Publish a component or pack to an exchange", Scopes: []string{"component", "pack"}},
	{Name: "remove", Short: "Remove a component, pack or platform", Scopes: []string{"component", "pack", "platform"}},
	{Name: "list", Short: "List installed components or packs", Scopes: []string{"component", "pack"}},
	{Name: "restore", Short: "Restore dependencies of the application"},
	{Name: "strip", Short: "Remove generated and dependency files, keeping sources"},
	{Name: "configure", Short: "Configure exchange and project settings"},
}

var taskOptionFlags []string

func init() {
	for _, def := range taskDefs {
		rootCmd.AddCommand(newTaskCmd(def))
	}
}

func newTaskCmd(def taskDef) *cobra.Command {
	use := def.Name
	if len(def.Scopes) > 0 {
		use += " [" + strings.Join(def.Scopes, "|") + "]"
	}
	use += " [parameters...]"

	cmd := &cobra.Command{
		Use:   use,
		Short: def.Short,
		Long: def.Short + `.

Options are forwarded to the build engine as --key=value pairs:
  ` + "ojet " + def.Name + ` -o release -o theme=redwood`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, def, args)
		},
	}
	cmd.Flags().StringArrayVarP(&taskOptionFlags, "option", "o", nil, "Task option key=value, or key for true (repeatable)")
	return cmd
}

func runTask(cmd *cobra.Command, def taskDef, args []string) error {
	req, err := buildTaskRequest(def, args, taskOptionFlags)
	if err != nil {
		return err
	}

	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}

	warnIfNewerGenerator(eng.Dir(), eng.Version())

	_, err = eng.Execute(cmd.Context(), req)
	return err
}

// buildTaskRequest maps command-line arguments onto a TaskRequest.
func buildTaskRequest(def taskDef, args, optionFlags []string) (engine.TaskRequest, error) {
	req := engine.TaskRequest{Task: def.Name}

	if len(args) > 0 && contains(def.Scopes, args[0]) {
		req.Scope = args[0]
		args = args[1:]
	}
	req.Parameters = append([]string{}, args...)

	opts, err := parseOptionFlags(optionFlags)
	if err != nil {
		return engine.TaskRequest{}, err
	}
	req.Options = opts
	return req, nil
}

// parseOptionFlags parses -o key=value flags into ordered options. A bare
// key means true; the literal values "true" and "false" become booleans.
func parseOptionFlags(flags []string) (engine.Options, error) {
	var opts engine.Options
	for _, flag := range flags {
		key, value, hasValue := strings.Cut(flag, "=")
		key = strings.TrimLeft(strings.TrimSpace(key), "-")
		if key == "" {
			return engine.Options{}, fmt.Errorf("invalid option %q: key cannot be empty", flag)
		}
		if !hasValue {
			opts.Set(key, true)
			continue
		}
		value = strings.TrimSpace(value)
		switch value {
		case "true":
			opts.Set(key, true)
		case "false":
			opts.Set(key, false)
		default:
			opts.Set(key, value)
		}
	}
	return opts, nil
}

// warnIfNewerGenerator logs a warning when the project was scaffolded by a
// newer tool than this one. Unreadable configs are left for the build
// engine to report.
func warnIfNewerGenerator(dir, version string) {
	cfg, err := projectconfig.Load(dir)
	if err != nil {
		return
	}
	newer, err := projectconfig.GeneratedByNewerTool(cfg, version)
	if err != nil {
		slog.Debug("skipping generator version check", "error", err)
		return
	}
	if newer {
		slog.Warn("project was generated by a newer version of the tool",
			"generatorVersion", cfg.GeneratorVersion, "version", version)
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
