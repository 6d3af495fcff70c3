// ============================================================================
// euler - Numerical Methods Service
// ============================================================================
//
// Package:     version
// Description: Central version management for all services
// Author:      Mike Stoffels
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

// Version constants for the euler binaries
const (
	// Platform version
	Platform = "1.0.0"

	// Service versions
	Euler   = "1.0.0"
	Gateway = "1.0.0"
)

// Build metadata, set via -ldflags "-X github.com/msto63/euler/pkg/core/version.Commit=..."
var (
	Commit    = "dev"
	BuildDate = "unknown"
)

// ServiceVersion returns the version for a given service name
func ServiceVersion(name string) string {
	switch name {
	case "euler":
		return Euler
	case "gateway":
		return Gateway
	default:
		return Platform
	}
}

// Info returns the version line printed by the CLI
func Info(name string) string {
	return name + " " + ServiceVersion(name) + " (commit " + Commit + ", built " + BuildDate + ")"
}
