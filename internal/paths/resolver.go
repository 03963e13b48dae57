package paths

import (
	"sync"

	"github.com/ojet-tools/ojet/internal/projectconfig"
)

// Resolver caches Resolved values keyed by the exact project directory
// string it was given; no canonicalization is applied. Entries live until
// Invalidate or Reset is called.
//
// Two concurrent first lookups of the same directory may both read the
// file; they compute the same value.
type Resolver struct {
	mu    sync.RWMutex
	cache map[string]Resolved

	// load reads a project's configuration; replaced in tests.
	load func(projectDir string) (*projectconfig.ProjectConfig, error)
}

// NewResolver returns an empty Resolver.
func NewResolver() *Resolver {
	return &Resolver{
		cache: make(map[string]Resolved),
		load:  projectconfig.Load,
	}
}

// Configured returns the directories for projectDir. A missing
// configuration file yields Defaults(). A file that cannot be parsed yields a
// *projectconfig.ConfigurationError and nothing is cached.
func (r *Resolver) Configured(projectDir string) (Resolved, error) {
	r.mu.RLock()
	cached, ok := r.cache[projectDir]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	cfg, err := r.load(projectDir)
	if err != nil {
		return Resolved{}, err
	}
	resolved := Merge(cfg.Paths)

	r.mu.Lock()
	if existing, ok := r.cache[projectDir]; ok {
		resolved = existing
	} else {
		r.cache[projectDir] = resolved
	}
	r.mu.Unlock()
	return resolved, nil
}

// Invalidate drops the cached entry for projectDir so the next lookup
// re-reads its configuration file.
func (r *Resolver) Invalidate(projectDir string) {
	r.mu.Lock()
	delete(r.cache, projectDir)
	r.mu.Unlock()
}

// Reset drops every cached entry.
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.cache = make(map[string]Resolved)
	r.mu.Unlock()
}

// Len returns the number of cached projects.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}

var std = NewResolver()

// Configured resolves projectDir with the process-wide Resolver.
func Configured(projectDir string) (Resolved, error) {
	return std.Configured(projectDir)
}

// Invalidate drops projectDir from the process-wide Resolver.
func Invalidate(projectDir string) {
	std.Invalidate(projectDir)
}
