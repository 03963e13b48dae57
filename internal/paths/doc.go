// Package paths resolves the source and staging directories of a project.
// Each directory comes from the project's oraclejetconfig.json when set
// there, otherwise from a built-in default. Results are cached per project
// directory.
package paths
