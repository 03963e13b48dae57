package paths

import (
	"path/filepath"
	"sync"

	"github.com/ojet-tools/ojet/internal/projectconfig"
)

// Built-in directory defaults, relative to the project root.
const (
	DefaultSource           = "src"
	DefaultSourceWeb        = "src-web"
	DefaultSourceHybrid     = "src-hybrid"
	DefaultSourceJavascript = "js"
	DefaultSourceTests      = "tests"
	DefaultSourceThemes     = "themes"
	DefaultStagingHybrid    = "hybrid"
	DefaultStagingWeb       = "web"
	DefaultStagingThemes    = "themes"
)

// Resolved is the set of directories for one project. Values are returned by
// copy, so a cached entry can never be modified by a caller.
type Resolved struct {
	Source           string `json:"source" yaml:"source"`
	SourceWeb        string `json:"sourceWeb" yaml:"sourceWeb"`
	SourceHybrid     string `json:"sourceHybrid" yaml:"sourceHybrid"`
	SourceJavascript string `json:"sourceJavascript" yaml:"sourceJavascript"`
	SourceTests      string `json:"sourceTests" yaml:"sourceTests"`
	SourceThemes     string `json:"sourceThemes" yaml:"sourceThemes"`
	StagingHybrid    string `json:"stagingHybrid" yaml:"stagingHybrid"`
	StagingWeb       string `json:"stagingWeb" yaml:"stagingWeb"`
	StagingThemes    string `json:"stagingThemes" yaml:"stagingThemes"`
}

var (
	defaultsOnce sync.Once
	defaults     Resolved
)

// Defaults returns the built-in directories. It never touches the disk.
func Defaults() Resolved {
	defaultsOnce.Do(func() {
		defaults = Resolved{
			Source:           DefaultSource,
			SourceWeb:        DefaultSourceWeb,
			SourceHybrid:     DefaultSourceHybrid,
			SourceJavascript: DefaultSourceJavascript,
			SourceTests:      DefaultSourceTests,
			SourceThemes:     DefaultSourceThemes,
			StagingHybrid:    DefaultStagingHybrid,
			StagingWeb:       DefaultStagingWeb,
			StagingThemes:    DefaultStagingThemes,
		}
	})
	return defaults
}

// Merge overlays the configured paths on the defaults, field by field.
// Empty configured values fall back; set values are cleaned for the current
// platform.
func Merge(cfg projectconfig.PathsConfig) Resolved {
	d := Defaults()
	return Resolved{
		Source:           pick(cfg.Source.Common, d.Source),
		SourceWeb:        pick(cfg.Source.Web, d.SourceWeb),
		SourceHybrid:     pick(cfg.Source.Hybrid, d.SourceHybrid),
		SourceJavascript: pick(cfg.Source.Javascript, d.SourceJavascript),
		SourceTests:      pick(cfg.Source.Tests, d.SourceTests),
		SourceThemes:     pick(cfg.Source.Themes, d.SourceThemes),
		StagingHybrid:    pick(cfg.Staging.Hybrid, d.StagingHybrid),
		StagingWeb:       pick(cfg.Staging.Web, d.StagingWeb),
		StagingThemes:    pick(cfg.Staging.Themes, d.StagingThemes),
	}
}

func pick(configured, fallback string) string {
	if configured == "" {
		return fallback
	}
	return filepath.Clean(filepath.FromSlash(configured))
}
