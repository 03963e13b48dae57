package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ojet-tools/ojet/internal/branding"
	"github.com/ojet-tools/ojet/internal/buildengine"
	"github.com/ojet-tools/ojet/internal/config"
	"github.com/ojet-tools/ojet/internal/projectconfig"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the project configuration and build engine setup",
	Long: `Validate oraclejetconfig.json against its schema, compare the project's
generator version with this tool, and verify the build engine can be started.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := newStatusWriter(cmd.OutOrStdout())

		fmt.Fprintln(out, "Project:")
		projectOK := checkProjectConfig(out, projectDir)

		fmt.Fprintln(out, "\nBuild engine:")
		engineOK := checkBuildEngine(out, config.EngineSettings())

		if !projectOK || !engineOK {
			return errors.New("doctor found problems")
		}
		return nil
	},
}

// statusWriter colors the [ OK ], [WARN] and [FAIL] tags when the
// underlying writer is a color-capable terminal.
type statusWriter struct {
	w      io.Writer
	styles map[string]lipgloss.Style
}

func newStatusWriter(w io.Writer) *statusWriter {
	r := lipgloss.NewRenderer(w)
	return &statusWriter{
		w: w,
		styles: map[string]lipgloss.Style{
			"[ OK ]": r.NewStyle().Foreground(lipgloss.Color("2")),
			"[WARN]": r.NewStyle().Foreground(lipgloss.Color("3")),
			"[FAIL]": r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
	}
}

func (s *statusWriter) Write(p []byte) (int, error) {
	line := string(p)
	for tag, style := range s.styles {
		if strings.Contains(line, tag) {
			line = strings.Replace(line, tag, style.Render(tag), 1)
			break
		}
	}
	if _, err := io.WriteString(s.w, line); err != nil {
		return 0, err
	}
	return len(p), nil
}

// checkProjectConfig validates the configuration file in dir and reports
// whether it is usable.
func checkProjectConfig(w io.Writer, dir string) bool {
	path := projectconfig.FilePath(dir)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "  [WARN] %s not found in %s; defaults apply\n", branding.ConfigFile(), dir)
		return true
	}

	cfg, result, err := projectconfig.Check(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return false
	}
	if !result.Valid {
		fmt.Fprintf(w, "  [FAIL] %d validation issue(s) in %s:\n", len(result.Issues), path)
		for _, issue := range result.Issues {
			field := issue.Field
			if field == "" {
				field = "(document)"
			}
			fmt.Fprintf(w, "         %s: %s\n", field, issue.Message)
		}
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s is valid\n", path)

	switch newer, err := projectconfig.GeneratedByNewerTool(cfg, buildVersion); {
	case cfg.GeneratorVersion == "":
		fmt.Fprintln(w, "  [WARN] generatorVersion not recorded")
	case err != nil:
		fmt.Fprintf(w, "  [WARN] cannot compare versions: %v\n", err)
	case newer:
		fmt.Fprintf(w, "  [WARN] generated by %s, newer than this tool (%s)\n", cfg.GeneratorVersion, buildVersion)
	default:
		fmt.Fprintf(w, "  [ OK ] generated by %s\n", cfg.GeneratorVersion)
	}
	return true
}

// checkBuildEngine reports whether the configured runtime can be started.
func checkBuildEngine(w io.Writer, settings config.Engine) bool {
	switch settings.Runtime {
	case buildengine.RuntimeNode, "":
		nodeBin, err := exec.LookPath("node")
		if err != nil {
			fmt.Fprintln(w, "  [FAIL] node not found in PATH")
			return false
		}
		fmt.Fprintf(w, "  [ OK ] node found at %s\n", nodeBin)

		script, err := buildengine.ResolveScript(settings.Script)
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] %v\n", err)
			return false
		}
		fmt.Fprintf(w, "  [ OK ] engine script at %s\n", script)
		return true

	case buildengine.RuntimeCommand:
		fields := strings.Fields(settings.Command)
		if len(fields) == 0 {
			fmt.Fprintln(w, "  [FAIL] engine.command is not set")
			return false
		}
		bin, err := exec.LookPath(fields[0])
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] %s not found\n", fields[0])
			return false
		}
		fmt.Fprintf(w, "  [ OK ] engine command at %s\n", bin)
		return true

	default:
		fmt.Fprintf(w, "  [FAIL] unknown runtime %q\n", settings.Runtime)
		return false
	}
}
