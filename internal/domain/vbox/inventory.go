package vbox

import (
	"io"
	"path"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

var (
	// plainFilePattern finds filenames in preformatted listings without anchors.
	plainFilePattern = regexp.MustCompile(`\s([A-Za-z0-9][^\s<>"]+\.(?:deb|rpm|run|vbox-extpack|iso))\s`)
	// versionDirPattern matches directory links such as "7.1.4/".
	versionDirPattern = regexp.MustCompile(`^(\d+\.\d+\.\d+)/$`)
	// hexPattern validates checksum digests.
	hexPattern = regexp.MustCompile(`^[0-9a-fA-F]+$`)
)

// Inventory is the set of files published for one version, with the
// SHA-256 digests known from SHA256SUMS.
type Inventory struct {
	files  map[string]struct{}
	sha256 map[string]string
}

// NewInventory creates an inventory holding names.
func NewInventory(names ...string) *Inventory {
	inv := &Inventory{
		files:  make(map[string]struct{}, len(names)),
		sha256: make(map[string]string),
	}
	inv.Add(names...)

	return inv
}

// Add records filenames, ignoring empty names and directories.
func (inv *Inventory) Add(names ...string) {
	for _, name := range names {
		name = strings.Trim(strings.TrimSpace(name), "/")
		if name == "" {
			continue
		}

		inv.files[name] = struct{}{}
	}
}

// AddSHA256 records digests and the files they describe.
func (inv *Inventory) AddSHA256(sums map[string]string) {
	for name, sum := range sums {
		inv.Add(name)
		inv.sha256[name] = strings.ToLower(sum)
	}
}

// Has reports whether name was published.
func (inv *Inventory) Has(name string) bool {
	_, ok := inv.files[name]
	return ok
}

// SHA256 returns the known digest of name.
func (inv *Inventory) SHA256(name string) (string, bool) {
	sum, ok := inv.sha256[name]
	return sum, ok
}

// Len returns the number of known files.
func (inv *Inventory) Len() int {
	return len(inv.files)
}

// Names returns every filename in sort order.
func (inv *Inventory) Names() []string {
	names := make([]string, 0, len(inv.files))
	for name := range inv.files {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Filter returns the sorted names accepted by keep.
func (inv *Inventory) Filter(keep func(name string) bool) []string {
	var names []string

	for _, name := range inv.Names() {
		if keep(name) {
			names = append(names, name)
		}
	}

	return names
}

// ParseDirectoryLinks extracts file names from a directory listing: every
// anchor that does not point at a directory, plus bare filenames found in
// preformatted text.
func ParseDirectoryLinks(r io.Reader) ([]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	var links []string

	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}

		seen[name] = struct{}{}
		links = append(links, name)
	}

	for _, href := range hrefs(string(raw)) {
		if strings.HasSuffix(href, "/") || strings.HasPrefix(href, "?") || strings.HasPrefix(href, "#") {
			continue
		}

		add(path.Base(strings.TrimPrefix(href, "./")))
	}

	for _, match := range plainFilePattern.FindAllStringSubmatch(string(raw), -1) {
		add(match[1])
	}

	return links, nil
}

// ParseDirectoryVersions returns the X.Y.Z directory names of the root listing.
func ParseDirectoryVersions(r io.Reader) ([]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var versions []string

	for _, href := range hrefs(string(raw)) {
		if m := versionDirPattern.FindStringSubmatch(href); m != nil {
			versions = append(versions, m[1])
		}
	}

	return versions, nil
}

// ParseChecksums reads "<digest> [*]<filename>" lines as written by sha256sum and md5sum.
func ParseChecksums(text string) map[string]string {
	sums := make(map[string]string)

	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || !hexPattern.MatchString(fields[0]) {
			continue
		}

		name := strings.TrimPrefix(fields[len(fields)-1], "*")
		if name == "" {
			continue
		}

		sums[name] = fields[0]
	}

	return sums
}

// hrefs returns the unescaped, trimmed href attribute of every anchor.
func hrefs(doc string) []string {
	var links []string

	tokenizer := html.NewTokenizer(strings.NewReader(doc))

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return links
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "a" {
				continue
			}

			for _, attr := range token.Attr {
				if strings.EqualFold(attr.Key, "href") {
					if href := strings.TrimSpace(attr.Val); href != "" {
						links = append(links, href)
					}
				}
			}
		}
	}
}
