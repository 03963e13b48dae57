package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ojet-tools/ojet/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyLogs          = "logs"
	KeyEngineRuntime = "engine.runtime"
	KeyEngineScript  = "engine.script"
	KeyEngineCommand = "engine.command"
)

var v = newViper()

func newViper() *viper.Viper {
	nv := viper.New()
	nv.SetDefault(KeyLogs, true)
	nv.SetDefault(KeyEngineRuntime, "node")
	return nv
}

// Dir returns the path to the config directory (~/.ojet/). OJET_CONFIG_DIR
// overrides it.
func Dir() string {
	if d := os.Getenv(branding.EnvVar("CONFIG_DIR")); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.ojet/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load (re)initializes settings from the config file and environment.
// Environment variables use the OJET_ prefix with dots replaced by
// underscores, e.g. OJET_ENGINE_RUNTIME.
func Load() {
	v = newViper()
	v.SetConfigFile(FilePath())
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = v.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return v.GetString(key)
}

// Logs reports whether invocation summaries are enabled.
func Logs() bool {
	return v.GetBool(KeyLogs)
}

// Engine holds the build engine settings.
type Engine struct {
	Runtime string
	Script  string
	Command string
}

// EngineSettings returns the configured build engine settings.
func EngineSettings() Engine {
	return Engine{
		Runtime: v.GetString(KeyEngineRuntime),
		Script:  v.GetString(KeyEngineScript),
		Command: v.GetString(KeyEngineCommand),
	}
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	v.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
