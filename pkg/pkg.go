// Package pkg holds the program identity and per-user directories.
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version returns the semantic version embedded at build time.
func Version() string { return strings.TrimSpace(version) }

const (
	// Name is the command name. It also names the per-user directories.
	Name = "appconf"
	// Description is a one-line summary used in help output.
	Description = "Macro configuration language toolkit"
)
