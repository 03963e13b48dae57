package cli

import (
	"encoding/json"
	"fmt"

	"github.com/ojet-tools/ojet/internal/paths"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var (
	pathsJSON     bool
	pathsDefaults bool
)

func init() {
	pathsCmd.Flags().BoolVar(&pathsJSON, "json", false, "Print as JSON")
	pathsCmd.Flags().BoolVar(&pathsDefaults, "defaults", false, "Print the built-in defaults instead of the project's paths")
	rootCmd.AddCommand(pathsCmd)
}

var pathsCmd = &cobra.Command{
	Use:   "paths [project-dir]",
	Short: "Show the resolved source and staging directories",
	Long: `Show the source and staging directories of a project: values from
oraclejetconfig.json where set, built-in defaults otherwise.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := projectDir
		if len(args) == 1 {
			dir = args[0]
		}

		resolved := paths.Defaults()
		if !pathsDefaults {
			var err error
			resolved, err = paths.Configured(dir)
			if err != nil {
				return err
			}
		}

		var data []byte
		var err error
		if pathsJSON {
			data, err = json.MarshalIndent(resolved, "", "  ")
			data = append(data, '\n')
		} else {
			data, err = yaml.Marshal(resolved)
		}
		if err != nil {
			return fmt.Errorf("formatting paths: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
