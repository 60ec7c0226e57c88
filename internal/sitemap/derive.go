package sitemap

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const maxSlugLength = 180

var (
	releaseDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	nonAlnumRun        = regexp.MustCompile(`[^a-z0-9]+`)
)

// ParseReleaseDate converts MM/DD/YYYY to YYYY-MM-DD. It returns an empty
// string for malformed input and for dates that do not exist.
func ParseReleaseDate(value string) string {
	m := releaseDatePattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return ""
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return ""
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return ""
	}
	return t.Format("2006-01-02")
}

// SplitProducts splits a comma-separated product list, dropping blanks.
func SplitProducts(value string) []string {
	var products []string
	for _, p := range strings.Split(value, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			products = append(products, p)
		}
	}
	return products
}

// Slugify turns a patch name into a lowercase, hyphen-separated slug of at
// most 180 characters.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "&", " and ")
	s = nonAlnumRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugLength {
		s = strings.TrimRight(s[:maxSlugLength], "-")
	}
	return s
}

// EscapeComponent percent-encodes every byte outside the RFC 3986
// unreserved set. Spaces become %20, not '+'.
func EscapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ProductURL is the product filter page for the given product.
func ProductURL(baseURL, product string) string {
	return baseURL + "?p=" + EscapeComponent(product)
}

// PatchURL is the deep link for a single patch.
func PatchURL(baseURL, id, slug string) string {
	return baseURL + "?pid=" + EscapeComponent(id) + "&pn=" + EscapeComponent(slug)
}
