package models

// PatchRecord is a single patch entry from patches.json.
type PatchRecord struct {
	ID          string `json:"QFE_ID"`
	Name        string `json:"Name"`
	Products    string `json:"Products"`
	ReleaseDate string `json:"ReleaseDate"`
}

// ProductGroup is one element of the top-level "Product" array.
type ProductGroup struct {
	Patches []PatchRecord `json:"patches"`
}

// DatasetMeta describes when patches.json was last refreshed.
type DatasetMeta struct {
	UpdatedAtUTC string `json:"updated_at_utc"`
}

// Dataset is everything the loader could recover from the input files.
type Dataset struct {
	Groups []ProductGroup
	// LastMod is the dataset refresh date as YYYY-MM-DD, or empty.
	LastMod string
	// Skipped counts elements dropped because they had the wrong shape.
	Skipped int
}

// Records returns every patch record across all groups in input order.
func (d *Dataset) Records() []PatchRecord {
	var records []PatchRecord
	for _, g := range d.Groups {
		records = append(records, g.Patches...)
	}
	return records
}
