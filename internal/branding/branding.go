// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Hard-coded defaults apply when a key is missing.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	ChannelEnv  string `yaml:"channel_env"`
	ConfigFile  string `yaml:"config_file"`
	GoModule    string `yaml:"go_module"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "ojet",
			DisplayName: "Oracle JET CLI",
			Description: "Command-line entry point for scaffolding and building JET web applications",
			HomeDir:     ".ojet",
			EnvPrefix:   "OJET",
			ChannelEnv:  "OJET",
			ConfigFile:  "oraclejetconfig.json",
			GoModule:    "github.com/ojet-tools/ojet",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "ojet").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".ojet").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "OJET").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ChannelEnv returns the name of the environment variable that carries the
// active execution context to child build engine processes.
func ChannelEnv() string { load(); return defaults.ChannelEnv }

// ConfigFile returns the project configuration file name found at the root
// of every application (e.g., "oraclejetconfig.json").
func ConfigFile() string { load(); return defaults.ConfigFile }

// GoModule returns the Go module path reported by `version --json`.
func GoModule() string { load(); return defaults.GoModule }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "OJET_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
