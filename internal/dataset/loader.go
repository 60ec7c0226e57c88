package dataset

import (
	"fmt"
	"strings"
	"time"

	"github.com/ceddc/patch-sitemap/internal/models"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// Load reads the patch dataset and its optional metadata file.
//
// A missing or unreadable patches file is an error. Anything inside it
// that does not have the expected shape is skipped rather than failing
// the run. The metadata file is best effort: if it cannot be used the
// dataset simply has no last-modified date.
func Load(fs afero.Fs, patchesPath, metaPath string) (*models.Dataset, error) {
	data, err := afero.ReadFile(fs, patchesPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", patchesPath, err)
	}

	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", patchesPath, err)
	}

	ds.LastMod = ReadMeta(fs, metaPath)
	return ds, nil
}

// Parse extracts product groups from the raw patches.json content.
func Parse(data []byte) (*models.Dataset, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}

	ds := &models.Dataset{}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return ds, nil
	}

	products := root.Get("Product")
	if !products.IsArray() {
		return ds, nil
	}

	products.ForEach(func(_, group gjson.Result) bool {
		if !group.IsObject() {
			ds.Skipped++
			return true
		}

		var g models.ProductGroup
		patches := group.Get("patches")
		if patches.IsArray() {
			patches.ForEach(func(_, p gjson.Result) bool {
				if !p.IsObject() {
					ds.Skipped++
					return true
				}
				g.Patches = append(g.Patches, models.PatchRecord{
					ID:          scalar(p.Get("QFE_ID")),
					Name:        scalar(p.Get("Name")),
					Products:    scalar(p.Get("Products")),
					ReleaseDate: scalar(p.Get("ReleaseDate")),
				})
				return true
			})
		}
		ds.Groups = append(ds.Groups, g)
		return true
	})

	return ds, nil
}

// ReadMeta returns the dataset refresh date from patches.meta.json as
// YYYY-MM-DD, or an empty string if the file is absent or unusable.
func ReadMeta(fs afero.Fs, metaPath string) string {
	if metaPath == "" {
		return ""
	}
	data, err := afero.ReadFile(fs, metaPath)
	if err != nil || !gjson.ValidBytes(data) {
		return ""
	}
	updated := gjson.GetBytes(data, "updated_at_utc")
	if !updated.Exists() {
		return ""
	}
	return NormalizeDate(scalar(updated))
}

// NormalizeDate reduces an ISO-8601 date or timestamp to YYYY-MM-DD.
func NormalizeDate(value string) string {
	value = strings.TrimSpace(value)
	if len(value) < 10 {
		return ""
	}
	t, err := time.Parse("2006-01-02", value[:10])
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// scalar renders a JSON value as text. Null and missing values are empty,
// objects and arrays keep their raw form.
func scalar(r gjson.Result) string {
	switch r.Type {
	case gjson.Null:
		return ""
	case gjson.JSON:
		return r.Raw
	default:
		return r.String()
	}
}
