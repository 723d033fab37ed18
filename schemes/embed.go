// Package schemes embeds the built-in scoring schemes.
// This is a standalone package with no imports to avoid circular dependencies.
//
// Usage:
//
//	scheme.LoadFS(schemes.FS, schemes.Default)
package schemes

import "embed"

// Default is the scheme used when no --scheme is given.
const Default = "default.yaml"

//go:embed *.yaml
var FS embed.FS
