// Package version holds the build version, overridden at link time via
// -ldflags "-X .../internal/version.Version=v1.2.3".
package version

// Version is the reported application version.
var Version = "dev"
