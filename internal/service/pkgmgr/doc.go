// Package pkgmgr drives the native package manager of the host: apt on the
// Debian family, dnf on the Red Hat family and zypper on SUSE.
package pkgmgr
