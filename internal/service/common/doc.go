// Package common holds helpers shared by several services.
//
// It provides a small HTTP client wrapper with per-request timeouts and
// utilities to detect the user who invoked a tool, even through sudo.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
