package sitemap

import (
	"sort"
	"strings"

	"github.com/ceddc/patch-sitemap/internal/models"
)

// Result holds the derived URL lists for one run.
type Result struct {
	Pages          []models.URLEntry
	Patches        []models.URLEntry
	DatasetLastMod string
}

// Builder accumulates patch records into product and patch URL entries.
type Builder struct {
	baseURL        string
	datasetLastMod string
	products       map[string]string
	patches        map[string]string
	dropped        int
}

func NewBuilder(baseURL, datasetLastMod string) *Builder {
	return &Builder{
		baseURL:        baseURL,
		datasetLastMod: datasetLastMod,
		products:       make(map[string]string),
		patches:        make(map[string]string),
	}
}

// Add folds one record into the builder. Records without an identifier
// still count towards their products' dates but produce no patch URL.
func (b *Builder) Add(p models.PatchRecord) {
	released := ParseReleaseDate(p.ReleaseDate)

	for _, product := range SplitProducts(p.Products) {
		b.products[product] = later(b.products[product], released)
	}

	id := strings.TrimSpace(p.ID)
	if id == "" {
		b.dropped++
		return
	}

	loc := PatchURL(b.baseURL, id, Slugify(strings.TrimSpace(p.Name)))
	lastmod := released
	if lastmod == "" {
		lastmod = b.datasetLastMod
	}
	b.patches[loc] = later(b.patches[loc], lastmod)
}

// Dropped reports how many records had no identifier.
func (b *Builder) Dropped() int {
	return b.dropped
}

// Result returns the sorted page and patch lists.
func (b *Builder) Result() Result {
	pages := []models.URLEntry{{Loc: b.baseURL, LastMod: b.datasetLastMod}}

	names := make([]string, 0, len(b.products))
	for name := range b.products {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		lastmod := b.products[name]
		if lastmod == "" {
			lastmod = b.datasetLastMod
		}
		pages = append(pages, models.URLEntry{Loc: ProductURL(b.baseURL, name), LastMod: lastmod})
	}

	locs := make([]string, 0, len(b.patches))
	for loc := range b.patches {
		locs = append(locs, loc)
	}
	sort.Strings(locs)
	patches := make([]models.URLEntry, 0, len(locs))
	for _, loc := range locs {
		patches = append(patches, models.URLEntry{Loc: loc, LastMod: b.patches[loc]})
	}

	return Result{
		Pages:          pages,
		Patches:        patches,
		DatasetLastMod: b.datasetLastMod,
	}
}

// Build derives all sitemap entries from a loaded dataset.
func Build(ds *models.Dataset, baseURL string) Result {
	b := NewBuilder(baseURL, ds.LastMod)
	for _, record := range ds.Records() {
		b.Add(record)
	}
	return b.Result()
}

// later returns the more recent of two YYYY-MM-DD dates; empty loses.
func later(a, b string) string {
	if b > a {
		return b
	}
	return a
}
