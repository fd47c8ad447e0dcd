// Package version reports the neysla build version.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/neysla/version.Version=1.0.0" ./cmd/neysla
//
// Unset values are filled from the module build info where available.
package version
