// Package config manages user-level settings stored at ~/.ojet/config.yaml.
// It provides functions to load, read, and write keys such as whether
// invocation summaries are printed and which build engine runtime to use.
package config
