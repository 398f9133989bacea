// Package vboxtest serves a fake VirtualBox download tree for tests.
package vboxtest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
)

// Version is the release the default tree publishes.
const Version = "7.1.4"

// Vendor is an httptest server with a mutable file tree.
type Vendor struct {
	*httptest.Server

	mu           sync.Mutex
	latest       string
	versions     []string
	files        map[string][]byte
	checksums    bool
	badChecksums map[string]bool
	requests     []string
}

// DefaultFiles are the files of Version served by NewVendor.
func DefaultFiles() map[string][]byte {
	names := []string{
		"Oracle_VirtualBox_Extension_Pack-7.1.4.vbox-extpack",
		"VBoxGuestAdditions_7.1.4.iso",
		"VirtualBox-7.1-7.1.4_165100_el9-1.x86_64.rpm",
		"VirtualBox-7.1-7.1.4_165100_fedora40-1.x86_64.rpm",
		"VirtualBox-7.1.4.tar.bz2",
		"virtualbox-7.1_7.1.4-165100~Debian~bookworm_amd64.deb",
		"virtualbox-7.1_7.1.4-165100~Ubuntu~jammy_amd64.deb",
		"virtualbox-7.1_7.1.4-165100~Ubuntu~noble_amd64.deb",
	}

	files := make(map[string][]byte, len(names))
	for _, name := range names {
		files[name] = []byte("contents of " + name)
	}

	return files
}

// NewVendor starts a server publishing DefaultFiles under Version with
// LATEST-STABLE.TXT and SHA256SUMS.
func NewVendor(t *testing.T) *Vendor {
	t.Helper()

	v := &Vendor{
		latest:       Version,
		versions:     []string{"7.0.20", "7.1.2", Version},
		files:        DefaultFiles(),
		checksums:    true,
		badChecksums: make(map[string]bool),
	}

	v.Server = httptest.NewServer(http.HandlerFunc(v.serve))
	t.Cleanup(v.Close)

	return v
}

// SetLatest replaces the LATEST-STABLE.TXT contents. Empty answers 404.
func (v *Vendor) SetLatest(latest string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.latest = latest
}

// SetChecksums toggles SHA256SUMS.
func (v *Vendor) SetChecksums(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.checksums = enabled
}

// CorruptChecksum publishes a wrong digest for name.
func (v *Vendor) CorruptChecksum(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.badChecksums[name] = true
}

// Add publishes name with body.
func (v *Vendor) Add(name string, body []byte) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.files[name] = body
}

// Remove unpublishes name.
func (v *Vendor) Remove(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	delete(v.files, name)
}

// Requests returns the requested paths in order.
func (v *Vendor) Requests() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return slices.Clone(v.requests)
}

// Contents returns the served body of name.
func (v *Vendor) Contents(name string) []byte {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.files[name]
}

func (v *Vendor) serve(w http.ResponseWriter, r *http.Request) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.requests = append(v.requests, r.Method+" "+r.URL.Path)

	base := "/" + Version + "/"

	switch path := r.URL.Path; {
	case path == "/LATEST-STABLE.TXT":
		if v.latest == "" {
			http.NotFound(w, r)
			return
		}

		_, _ = fmt.Fprintln(w, v.latest)
	case path == "/":
		_, _ = fmt.Fprint(w, v.index())
	case path == base:
		_, _ = fmt.Fprint(w, v.listing())
	case path == base+"SHA256SUMS":
		if !v.checksums {
			http.NotFound(w, r)
			return
		}

		_, _ = fmt.Fprint(w, v.sha256sums())
	case strings.HasPrefix(path, base):
		body, ok := v.files[strings.TrimPrefix(path, base)]
		if !ok {
			http.NotFound(w, r)
			return
		}

		_, _ = w.Write(body)
	default:
		http.NotFound(w, r)
	}
}

func (v *Vendor) index() string {
	var b strings.Builder

	b.WriteString("<html><body><pre><a href=\"../\">../</a>\n")

	for _, version := range v.versions {
		fmt.Fprintf(&b, "<a href=\"%s/\">%s/</a>\n", version, version)
	}

	b.WriteString("<a href=\"LATEST-STABLE.TXT\">LATEST-STABLE.TXT</a>\n</pre></body></html>\n")

	return b.String()
}

func (v *Vendor) listing() string {
	var b strings.Builder

	b.WriteString("<html><body><pre><a href=\"../\">../</a>\n")

	for _, name := range v.names() {
		fmt.Fprintf(&b, "<a href=\"%s\">%s</a>\n", name, name)
	}

	b.WriteString("</pre></body></html>\n")

	return b.String()
}

func (v *Vendor) sha256sums() string {
	var b strings.Builder

	for _, name := range v.names() {
		sum := sha256.Sum256(v.files[name])
		if v.badChecksums[name] {
			sum = sha256.Sum256([]byte("something else"))
		}

		fmt.Fprintf(&b, "%s *%s\n", hex.EncodeToString(sum[:]), name)
	}

	return b.String()
}

func (v *Vendor) names() []string {
	names := make([]string, 0, len(v.files))
	for name := range v.files {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
