package projectconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ojet-tools/ojet/internal/branding"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/jsonc"
)

var utf8BOM = []byte("\xEF\xBB\xBF")

// FilePath returns the location of the configuration file for projectDir.
func FilePath(projectDir string) string {
	return filepath.Join(projectDir, branding.ConfigFile())
}

// decode turns configuration bytes into a generic JSON document. A leading
// byte order mark, comments and trailing commas are accepted.
func decode(data []byte) (any, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonc.ToJSON(bytes.TrimPrefix(data, utf8BOM))))
	if err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	return doc, nil
}

// Parse decodes configuration bytes. A JSON null document yields an empty
// config.
func Parse(data []byte) (*ProjectConfig, error) {
	doc, err := decode(data)
	if err != nil {
		return nil, err
	}
	return fromDocument(doc)
}

// fromDocument extracts the known fields from a decoded document.
func fromDocument(doc any) (*ProjectConfig, error) {
	if doc == nil {
		return &ProjectConfig{}, nil
	}
	raw, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parsing configuration: top level must be an object, got %T", doc)
	}

	cfg := &ProjectConfig{
		GeneratorVersion: stringAt(raw, "generatorVersion"),
		DefaultBrowser:   stringAt(raw, "defaultBrowser"),
		DefaultTheme:     stringAt(raw, "defaultTheme"),
		Raw:              raw,
	}
	cfg.Paths.Source = SourcePaths{
		Common:     stringAt(raw, "paths", "source", "common"),
		Web:        stringAt(raw, "paths", "source", "web"),
		Hybrid:     stringAt(raw, "paths", "source", "hybrid"),
		Javascript: stringAt(raw, "paths", "source", "javascript"),
		Tests:      stringAt(raw, "paths", "source", "tests"),
		Themes:     stringAt(raw, "paths", "source", "themes"),
	}
	cfg.Paths.Staging = StagingPaths{
		Hybrid: stringAt(raw, "paths", "staging", "hybrid"),
		Web:    stringAt(raw, "paths", "staging", "web"),
		Themes: stringAt(raw, "paths", "staging", "themes"),
	}
	return cfg, nil
}

// ReadFile reads and parses the configuration file at path. Any failure is
// reported as a *ConfigurationError, including a missing file.
func ReadFile(path string) (*ProjectConfig, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}
	return cfg, nil
}

// Load reads the configuration for projectDir. A missing file is not an
// error and yields an empty config; an unreadable or unparseable file
// yields a *ConfigurationError.
func Load(projectDir string) (*ProjectConfig, error) {
	path := FilePath(projectDir)
	cfg, err := ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ProjectConfig{}, nil
	}
	return cfg, err
}

// stringAt walks nested objects by key and returns the string found at the
// end, or "" when any step is missing or has the wrong type.
func stringAt(m map[string]any, keys ...string) string {
	var cur any = m
	for _, k := range keys {
		obj, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = obj[k]
	}
	s, _ := cur.(string)
	return s
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}
	return data, nil
}
