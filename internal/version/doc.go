// Package version exposes build metadata shared by py-versions and vbox-installer.
//
// Version, Commit and BuildTime are injected at build time via ldflags.
package version
