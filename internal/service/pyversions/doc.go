// Package pyversions reports the maintained Python release cycles listed on python.org.
package pyversions
