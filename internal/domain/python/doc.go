// Package python reads the release cycle table of the python.org downloads page.
package python
