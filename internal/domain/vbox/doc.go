// Package vbox knows how the vendor publishes VirtualBox builds: the layout of
// the download tree, the directory listing and checksum formats, and the
// naming of packages, extension packs and guest additions images.
//
// Everything here is pure; fetching is done by the installer service.
package vbox
