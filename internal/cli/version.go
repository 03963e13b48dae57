package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/ojet-tools/ojet/internal/branding"
	"github.com/ojet-tools/ojet/internal/config"
	"github.com/spf13/cobra"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print the version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build and engine details as JSON")
	rootCmd.AddCommand(versionCmd)
}

// buildInfo describes this binary and the build engine it would drive.
type buildInfo struct {
	Version       string `json:"version"`
	Commit        string `json:"commit"`
	Date          string `json:"date"`
	Module        string `json:"module"`
	GoVersion     string `json:"goVersion"`
	EngineRuntime string `json:"engineRuntime"`
}

func currentBuildInfo() buildInfo {
	return buildInfo{
		Version:       buildVersion,
		Commit:        buildCommit,
		Date:          buildDate,
		Module:        branding.GoModule(),
		GoVersion:     runtime.Version(),
		EngineRuntime: config.EngineSettings().Runtime,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		info := currentBuildInfo()

		switch {
		case versionShort:
			fmt.Fprintln(out, info.Version)
		case versionJSON:
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
		default:
			fmt.Fprintf(out, "%s %s (commit %s, built %s, %s)\nbuild engine runtime: %s\n",
				branding.CLIName(), info.Version, info.Commit, info.Date, info.GoVersion, info.EngineRuntime)
		}
		return nil
	},
}
