// Package distro describes Linux distributions as seen through /etc/os-release
// and maps them to the package families and build tags used by vendor packages.
package distro
