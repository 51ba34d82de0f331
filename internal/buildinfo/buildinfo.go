// Package buildinfo carries the version stamped in by the linker:
//
//	go build -ldflags "-X galaxyview/internal/buildinfo.Version=v1.2.0 -X galaxyview/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import (
	"fmt"
	"log/slog"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// Short returns a compact build identifier for titles and logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Title decorates a window title with the build identifier.
func Title(name string) string {
	if name == "" {
		name = "galaxyview"
	}
	return name + " (" + Short() + ")"
}

// String is the -version output.
func String() string {
	return fmt.Sprintf("galaxyview %s (commit %s, built %s)", Version, Commit, Date)
}

// Attr groups the build fields for structured logs.
func Attr() slog.Attr {
	return slog.Group("build",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("date", Date),
	)
}
