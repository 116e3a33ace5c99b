// Package version holds the application version string. It is overridden at
// build time via -ldflags "-X ...version.Version=v1.2.3".
package version

// Version is the application version.
var Version = "dev"
