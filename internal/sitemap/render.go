package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/ceddc/patch-sitemap/internal/models"
)

// RenderURLSet renders entries as a sitemap urlset document. Entries with
// an empty LastMod are written without a <lastmod> element.
func RenderURLSet(entries []models.URLEntry) ([]byte, error) {
	set := models.URLSet{
		XMLNS: models.SitemapNamespace,
		URLs:  make([]models.URL, 0, len(entries)),
	}
	for _, e := range entries {
		set.URLs = append(set.URLs, models.URL{Loc: e.Loc, LastMod: e.LastMod})
	}
	return marshal(set)
}

// RenderIndex renders a sitemap index pointing at each of files under
// baseURL, all stamped with lastmod.
func RenderIndex(baseURL, lastmod string, files []string) ([]byte, error) {
	index := models.SitemapIndex{
		XMLNS:    models.SitemapNamespace,
		Sitemaps: make([]models.URL, 0, len(files)),
	}
	for _, f := range files {
		index.Sitemaps = append(index.Sitemaps, models.URL{Loc: baseURL + f, LastMod: lastmod})
	}
	return marshal(index)
}

func marshal(v interface{}) ([]byte, error) {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding sitemap: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(xml.Header) + len(body) + 1)
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
