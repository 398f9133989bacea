// Package release parses and orders vendor release numbers of the form X.Y.Z.
package release
