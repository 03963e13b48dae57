package projectconfig

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b. A leading "v" is tolerated.
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// GeneratedByNewerTool reports whether the project was scaffolded by a tool
// newer than toolVersion. Projects without a generatorVersion report false.
func GeneratedByNewerTool(cfg *ProjectConfig, toolVersion string) (bool, error) {
	if cfg == nil || cfg.GeneratorVersion == "" {
		return false, nil
	}
	cmp, err := CompareVersions(toolVersion, cfg.GeneratorVersion)
	if err != nil {
		return false, err
	}
	return cmp == -1, nil
}

func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
