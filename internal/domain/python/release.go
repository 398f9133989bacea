package python

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// ErrNoData is returned when the page has no release cycle table.
var ErrNoData = errors.New("no data found")

// Maintenance statuses published on the downloads page.
const (
	StatusPrerelease = "prerelease"
	StatusBugfix     = "bugfix"
	StatusSecurity   = "security"
	StatusEndOfLife  = "end-of-life"
)

// Release is one row of the "Active Python Releases" table.
type Release struct {
	// Version is the release cycle, e.g. "3.13".
	Version string `yaml:"version"`
	// Status is the maintenance status, e.g. "bugfix".
	Status string `yaml:"status"`
	// FirstReleased is the first release date as printed on the page.
	FirstReleased string `yaml:"first_released,omitempty"`
	// EndOfSupport is the planned end of support as printed on the page.
	EndOfSupport string `yaml:"end_of_support,omitempty"`
	// PEP links to the release schedule.
	PEP string `yaml:"pep,omitempty"`
}

// ParseDownloadsPage extracts the rows of <ol class="list-row-container menu">.
// Rows without both a version and a status are skipped.
func ParseDownloadsPage(r io.Reader) ([]Release, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse downloads page: %w", err)
	}

	container := find(doc, func(n *html.Node) bool {
		return n.Data == "ol" && hasClasses(n, "list-row-container", "menu")
	})
	if container == nil {
		return nil, ErrNoData
	}

	var releases []Release

	for item := container.FirstChild; item != nil; item = item.NextSibling {
		if item.Type != html.ElementNode || item.Data != "li" {
			continue
		}

		rel := Release{
			Version:       spanText(item, "release-version"),
			Status:        spanText(item, "release-status"),
			FirstReleased: spanText(item, "release-start"),
			EndOfSupport:  spanText(item, "release-end"),
		}

		if pep := find(item, func(n *html.Node) bool { return hasClasses(n, "release-pep") }); pep != nil {
			if link := find(pep, func(n *html.Node) bool { return n.Data == "a" }); link != nil {
				rel.PEP = attr(link, "href")
			}
		}

		if rel.Version == "" || rel.Status == "" {
			continue
		}

		releases = append(releases, rel)
	}

	return releases, nil
}

// Select keeps the first security release and every prerelease and bugfix
// release in page order. With all set, every release is kept.
func Select(releases []Release, all bool) []Release {
	if all {
		return slices.Clone(releases)
	}

	var (
		selected      []Release
		securityFound bool
	)

	for _, rel := range releases {
		switch rel.Status {
		case StatusSecurity:
			if !securityFound {
				selected = append(selected, rel)
				securityFound = true
			}
		case StatusPrerelease, StatusBugfix:
			selected = append(selected, rel)
		}
	}

	return selected
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := find(child, match); found != nil {
			return found
		}
	}

	return nil
}

func spanText(n *html.Node, class string) string {
	span := find(n, func(n *html.Node) bool {
		return n.Data == "span" && hasClasses(n, class)
	})
	if span == nil {
		return ""
	}

	return strings.Join(strings.Fields(text(span)), " ")
}

func text(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var b strings.Builder

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(text(child))
	}

	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return strings.TrimSpace(a.Val)
		}
	}

	return ""
}

func hasClasses(n *html.Node, classes ...string) bool {
	present := strings.Fields(attr(n, "class"))
	for _, class := range classes {
		if !slices.Contains(present, class) {
			return false
		}
	}

	return true
}
