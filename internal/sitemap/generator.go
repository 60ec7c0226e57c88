package sitemap

import (
	"fmt"
	"path/filepath"

	"github.com/ceddc/patch-sitemap/config"
	"github.com/ceddc/patch-sitemap/internal/dataset"
	"github.com/ceddc/patch-sitemap/internal/models"
	"github.com/ceddc/patch-sitemap/internal/utils"
	"github.com/spf13/afero"
)

type Generator struct {
	fs     afero.Fs
	config *config.Config
	logger *utils.BuildLogger
}

// Summary reports what a run produced.
type Summary struct {
	Pages   int
	Patches int
	Skipped int
	Dropped int
	LastMod string
}

type document struct {
	path string
	data []byte
}

func NewGenerator(fs afero.Fs, cfg *config.Config, logger *utils.BuildLogger) *Generator {
	return &Generator{
		fs:     fs,
		config: cfg,
		logger: logger,
	}
}

// Run loads the dataset, renders the sitemap index and both sub-sitemaps,
// and writes them. Nothing is written unless every document rendered.
func (g *Generator) Run() (*Summary, error) {
	ds, err := dataset.Load(g.fs, g.config.Input.PatchesFile, g.config.Input.MetaFile)
	if err != nil {
		return nil, err
	}
	if ds.LastMod == "" {
		g.logger.LogDebug("No dataset last-modified date available from %s", g.config.Input.MetaFile)
	}
	if ds.Skipped > 0 {
		g.logger.LogWarn("Skipped %d malformed entries in %s", ds.Skipped, g.config.Input.PatchesFile)
	}

	baseURL := g.config.SiteURL()
	b := NewBuilder(baseURL, ds.LastMod)
	for _, record := range ds.Records() {
		b.Add(record)
	}
	if b.Dropped() > 0 {
		g.logger.LogDebug("Dropped %d patch records without QFE_ID", b.Dropped())
	}
	res := b.Result()

	docs, err := g.render(res)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if err := WriteFileAtomic(g.fs, doc.path, doc.data); err != nil {
			return nil, err
		}
		g.logger.LogInfo("Wrote %s (%d bytes)", doc.path, len(doc.data))
	}

	return &Summary{
		Pages:   len(res.Pages),
		Patches: len(res.Patches),
		Skipped: ds.Skipped,
		Dropped: b.Dropped(),
		LastMod: res.DatasetLastMod,
	}, nil
}

func (g *Generator) render(res Result) ([]document, error) {
	out := g.config.Output

	sets := []struct {
		name    string
		entries []models.URLEntry
	}{
		{out.PagesFile, res.Pages},
		{out.PatchesFile, res.Patches},
	}

	docs := make([]document, 0, len(sets)+1)
	for _, set := range sets {
		if len(set.entries) > models.MaxURLsPerSitemap {
			g.logger.LogWarn("%s has %d URLs, above the sitemap limit of %d",
				set.name, len(set.entries), models.MaxURLsPerSitemap)
		}
		data, err := RenderURLSet(set.entries)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", set.name, err)
		}
		docs = append(docs, document{path: filepath.Join(out.Dir, set.name), data: data})
	}

	index, err := RenderIndex(g.config.SiteURL(), res.DatasetLastMod, []string{out.PagesFile, out.PatchesFile})
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", out.IndexFile, err)
	}
	docs = append(docs, document{path: filepath.Join(out.Dir, out.IndexFile), data: index})

	return docs, nil
}
