package engine

import (
	"strings"

	"github.com/ojet-tools/ojet/internal/branding"
)

// Summary formats the human-readable line printed before a task runs:
//
//	OJET API: ojet <task>[ <scope>][ <param>...][ --<key>=<value>...]
func Summary(req TaskRequest) string {
	parts := []string{branding.EnvPrefix() + " API:", branding.CLIName()}
	parts = append(parts, req.TaskList()...)
	parts = append(parts, req.Options.Flags()...)
	return strings.Join(parts, " ")
}
