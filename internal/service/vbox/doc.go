// Package vbox installs the latest stable VirtualBox release.
//
// The installer resolves the release, lists the files the vendor published
// for it, picks the package built for the host, downloads it together with
// the extension pack and the guest additions image, installs everything with
// the native package manager and cleans up after itself. The latest,
// artifacts, download and repo entry points expose the individual stages.
package vbox
