// Package config defines the settings shared by py-versions and vbox-installer
// and provides helpers to load, validate and save them in YAML format.
//
// Defaults come from struct tags, so an absent settings file is a valid setup.
package config
