package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ceddc/patch-sitemap/config"
	"github.com/ceddc/patch-sitemap/internal/verify"
	"github.com/spf13/afero"
)

func main() {
	fs := afero.NewOsFs()

	cfg, err := config.LoadConfig(fs)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	files := []string{cfg.Output.IndexFile, cfg.Output.PagesFile, cfg.Output.PatchesFile}
	failed := false
	for _, name := range files {
		path := filepath.Join(cfg.Output.Dir, name)
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			log.Fatalf("Error reading sitemap: %v", err)
		}

		report, err := verify.Analyze(data, cfg.SiteURL())
		if err != nil {
			log.Fatalf("Error analyzing %s: %v", path, err)
		}

		dated := 0
		for _, lm := range report.LastMods {
			if lm != "" {
				dated++
			}
		}
		fmt.Printf("%s: %s with %d URLs (%d with lastmod)\n", path, report.Kind, len(report.Locs), dated)
		for _, p := range report.Problems {
			fmt.Printf("  %s\n", p)
		}
		if !report.OK() {
			failed = true
		}
	}

	if failed {
		log.Fatal("Sitemap check failed")
	}
}
