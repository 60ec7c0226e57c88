// internal/models/sitemap.go
package models

import "encoding/xml"

const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// MaxURLsPerSitemap is the protocol limit for a single urlset.
const MaxURLsPerSitemap = 50000

// URLEntry is a derived sitemap row keyed by Loc.
type URLEntry struct {
	Loc     string
	LastMod string
}

// URLSet represents the structure of an XML sitemap.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL represents a single URL entry in the sitemap.
type URL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// SitemapIndex represents a sitemap index document.
type SitemapIndex struct {
	XMLName  xml.Name `xml:"sitemapindex"`
	XMLNS    string   `xml:"xmlns,attr"`
	Sitemaps []URL    `xml:"sitemap"`
}
