package projectconfig

// ProjectConfig is the subset of oraclejetconfig.json the CLI understands.
// Raw holds the whole decoded document.
type ProjectConfig struct {
	Paths            PathsConfig
	GeneratorVersion string
	DefaultBrowser   string
	DefaultTheme     string

	Raw map[string]any
}

// PathsConfig mirrors the "paths" object. Missing or non-string entries are
// left empty.
type PathsConfig struct {
	Source  SourcePaths
	Staging StagingPaths
}

// SourcePaths mirrors "paths.source".
type SourcePaths struct {
	Common     string
	Web        string
	Hybrid     string
	Javascript string
	Tests      string
	Themes     string
}

// StagingPaths mirrors "paths.staging".
type StagingPaths struct {
	Hybrid string
	Web    string
	Themes string
}
