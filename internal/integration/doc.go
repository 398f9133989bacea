// Package integration runs both tools end to end against fake vendor sites
// and a recording command runner.
package integration
