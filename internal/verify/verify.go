package verify

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Report summarises one parsed sitemap document.
type Report struct {
	Kind     string // urlset or sitemapindex
	Locs     []string
	LastMods []string
	Problems []string
}

// OK reports whether no problems were found.
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

// Analyze parses a sitemap or sitemap index and checks every entry against
// baseURL.
func Analyze(data []byte, baseURL string) (*Report, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error parsing sitemap: %w", err)
	}

	report := &Report{}
	var entries []*xmlquery.Node
	switch {
	case xmlquery.FindOne(doc, "/*[local-name()='urlset']") != nil:
		report.Kind = "urlset"
		entries = xmlquery.Find(doc, "/*[local-name()='urlset']/*[local-name()='url']")
	case xmlquery.FindOne(doc, "/*[local-name()='sitemapindex']") != nil:
		report.Kind = "sitemapindex"
		entries = xmlquery.Find(doc, "/*[local-name()='sitemapindex']/*[local-name()='sitemap']")
	default:
		return nil, fmt.Errorf("unrecognised sitemap root element")
	}

	for i, entry := range entries {
		loc := ""
		if n := xmlquery.FindOne(entry, "*[local-name()='loc']"); n != nil {
			loc = strings.TrimSpace(n.InnerText())
		}
		lastmod := ""
		if n := xmlquery.FindOne(entry, "*[local-name()='lastmod']"); n != nil {
			lastmod = strings.TrimSpace(n.InnerText())
		}

		report.Locs = append(report.Locs, loc)
		report.LastMods = append(report.LastMods, lastmod)

		if problem := CheckLoc(loc, baseURL); problem != "" {
			report.Problems = append(report.Problems, fmt.Sprintf("entry %d: %s", i+1, problem))
		}
		if lastmod != "" && !isoDate.MatchString(lastmod) {
			report.Problems = append(report.Problems, fmt.Sprintf("entry %d: lastmod %q is not YYYY-MM-DD", i+1, lastmod))
		}
	}

	return report, nil
}

// CheckLoc returns a description of what is wrong with loc, or "".
func CheckLoc(loc, baseURL string) string {
	if loc == "" {
		return "missing loc"
	}
	if !strings.HasPrefix(loc, baseURL) {
		return fmt.Sprintf("loc %q is outside %s", loc, baseURL)
	}
	u, err := url.Parse(loc)
	if err != nil {
		return fmt.Sprintf("loc %q does not parse: %v", loc, err)
	}
	if u.RawQuery == "" {
		return ""
	}

	// Each query component must decode once and re-encode to the same text.
	for _, pair := range strings.Split(u.RawQuery, "&") {
		key, value, _ := strings.Cut(pair, "=")
		decoded, err := url.QueryUnescape(value)
		if err != nil {
			return fmt.Sprintf("loc %q has a bad escape in %s: %v", loc, key, err)
		}
		if reencoded := strings.ReplaceAll(url.QueryEscape(decoded), "+", "%20"); reencoded != value {
			return fmt.Sprintf("loc %q is not canonically encoded in %s", loc, key)
		}
	}
	return ""
}
