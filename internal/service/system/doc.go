// Package system runs external programs and inspects running processes.
//
// Every command is logged in shell-quoted form before it starts, and privileged
// commands are prefixed with sudo unless the tool already runs as root.
package system
