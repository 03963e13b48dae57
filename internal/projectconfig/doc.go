// Package projectconfig reads and validates oraclejetconfig.json, the
// per-project configuration file. Files may contain comments and trailing
// commas. Validation runs against an embedded JSON Schema.
package projectconfig
