package main

import (
	"log"

	"github.com/ceddc/patch-sitemap/config"
	"github.com/ceddc/patch-sitemap/internal/sitemap"
	"github.com/ceddc/patch-sitemap/internal/utils"
	"github.com/spf13/afero"
)

func main() {
	fs := afero.NewOsFs()

	// Load configuration
	cfg, err := config.LoadConfig(fs)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewBuildLogger("sitemap", cfg.Log.Dir, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.LogInfo("Generating sitemaps for %s from %s", cfg.SiteURL(), cfg.Input.PatchesFile)

	summary, err := sitemap.NewGenerator(fs, cfg, logger).Run()
	if err != nil {
		logger.LogError("Sitemap generation failed: %v", err)
		logger.Close()
		log.Fatalf("Failed to generate sitemaps: %v", err)
	}

	logger.LogInfo("Sitemaps generated: %d pages, %d patches, dataset lastmod %q",
		summary.Pages, summary.Patches, summary.LastMod)
}
