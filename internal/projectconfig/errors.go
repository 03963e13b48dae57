package projectconfig

import "fmt"

// ConfigurationError reports a configuration file that exists but cannot be
// read or parsed.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration file %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
