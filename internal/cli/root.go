package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ojet-tools/ojet/internal/branding"
	"github.com/ojet-tools/ojet/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	projectDir string
	noLogs     bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds, builds, serves and packages JET web applications.
Each task is forwarded to the build engine and runs inside the project directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(newLogger(cmd.ErrOrStderr(), verbose))
		config.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectDir, "cwd", ".", "Project directory to operate in")
	rootCmd.PersistentFlags().BoolVar(&noLogs, "no-logs", false, "Do not print the invocation summary")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
// An interrupt cancels the running task.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
