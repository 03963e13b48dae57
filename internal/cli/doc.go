// Package cli defines the Cobra command tree for the ojet CLI. Task commands
// (create, build, package, ...) turn their arguments into an
// engine.TaskRequest and hand it to the task execution engine; the remaining
// commands inspect project paths, settings and installation health.
package cli
