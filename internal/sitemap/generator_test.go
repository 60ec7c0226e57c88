package sitemap

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/ceddc/patch-sitemap/config"
	"github.com/ceddc/patch-sitemap/internal/utils"
	"github.com/spf13/afero"
)

const samplePatches = `{
  "Product": [
    {"name": "Servers", "patches": [
      {"QFE_ID": "KB123", "Name": "Fix & Update!", "Products": "Alpha, Beta", "ReleaseDate": "3/5/2024"},
      {"QFE_ID": "KB999", "Name": "Rollup", "Products": "Beta", "ReleaseDate": "1/1/2023"},
      "not a record",
      {"Name": "Missing id", "Products": "Gamma"}
    ]},
    42,
    {"patches": [
      {"QFE_ID": "KB999", "Name": "Rollup", "Products": "Beta", "ReleaseDate": "6/1/2024"},
      {"QFE_ID": "KB777", "Name": "Undated", "Products": "Alpha"}
    ]}
  ]
}`

func testSetup(t *testing.T, files map[string]string) (afero.Fs, *config.Config) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fs, name, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	cfg, err := config.LoadConfig(fs)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Site.BaseURL = testBase
	cfg.Output.Dir = "out"
	return fs, cfg
}

func testLogger() *utils.BuildLogger {
	return utils.NewWriterLogger(io.Discard, "debug")
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestGenerator_Run(t *testing.T) {
	fs, cfg := testSetup(t, map[string]string{
		"patches.json":      samplePatches,
		"patches.meta.json": `{"updated_at_utc": "2024-07-15T08:30:00Z"}`,
	})

	summary, err := NewGenerator(fs, cfg, testLogger()).Run()
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if summary.Patches != 3 {
		t.Errorf("Patches = %d, want 3", summary.Patches)
	}
	if summary.Pages != 4 {
		t.Errorf("Pages = %d, want 4 (root, Alpha, Beta, Gamma)", summary.Pages)
	}
	if summary.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", summary.Skipped)
	}
	if summary.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", summary.Dropped)
	}
	if summary.LastMod != "2024-07-15" {
		t.Errorf("LastMod = %q, want %q", summary.LastMod, "2024-07-15")
	}

	index := readFile(t, fs, "out/sitemap.xml")
	for _, want := range []string{
		"<sitemapindex",
		"<loc>" + testBase + "sitemap-pages.xml</loc>",
		"<loc>" + testBase + "sitemap-patches.xml</loc>",
		"<lastmod>2024-07-15</lastmod>",
	} {
		if !strings.Contains(index, want) {
			t.Errorf("index missing %q:\n%s", want, index)
		}
	}

	patches := readFile(t, fs, "out/sitemap-patches.xml")
	for _, want := range []string{
		"<loc>" + testBase + "?pid=KB123&amp;pn=fix-and-update</loc>\n    <lastmod>2024-03-05</lastmod>",
		"<loc>" + testBase + "?pid=KB999&amp;pn=rollup</loc>\n    <lastmod>2024-06-01</lastmod>",
		"<loc>" + testBase + "?pid=KB777&amp;pn=undated</loc>\n    <lastmod>2024-07-15</lastmod>",
	} {
		if !strings.Contains(patches, want) {
			t.Errorf("patch sitemap missing %q:\n%s", want, patches)
		}
	}
	if strings.Count(patches, "<url>") != 3 {
		t.Errorf("patch sitemap has %d urls, want 3", strings.Count(patches, "<url>"))
	}

	pages := readFile(t, fs, "out/sitemap-pages.xml")
	for _, want := range []string{
		"<loc>" + testBase + "?p=Alpha</loc>\n    <lastmod>2024-03-05</lastmod>",
		"<loc>" + testBase + "?p=Beta</loc>\n    <lastmod>2024-06-01</lastmod>",
		"<loc>" + testBase + "?p=Gamma</loc>\n    <lastmod>2024-07-15</lastmod>",
	} {
		if !strings.Contains(pages, want) {
			t.Errorf("pages sitemap missing %q:\n%s", want, pages)
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	fs, cfg := testSetup(t, map[string]string{"patches.json": samplePatches})
	g := NewGenerator(fs, cfg, testLogger())

	if _, err := g.Run(); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := readFile(t, fs, "out/sitemap-patches.xml")

	if _, err := g.Run(); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second := readFile(t, fs, "out/sitemap-patches.xml")

	if first != second {
		t.Error("output differs between identical runs")
	}
}

func TestGenerator_NoMetaNoDate(t *testing.T) {
	fs, cfg := testSetup(t, map[string]string{
		"patches.json": `{"Product": [{"patches": [{"QFE_ID": "KB1", "Name": "x", "Products": "A"}]}]}`,
	})

	if _, err := NewGenerator(fs, cfg, testLogger()).Run(); err != nil {
		t.Fatalf("run error: %v", err)
	}
	for _, name := range []string{"out/sitemap.xml", "out/sitemap-pages.xml", "out/sitemap-patches.xml"} {
		if content := readFile(t, fs, name); strings.Contains(content, "<lastmod>") {
			t.Errorf("%s should have no lastmod:\n%s", name, content)
		}
	}
}

func TestGenerator_WrongShapeYieldsRootOnly(t *testing.T) {
	fs, cfg := testSetup(t, map[string]string{"patches.json": `{"Product": {"not": "a list"}}`})

	summary, err := NewGenerator(fs, cfg, testLogger()).Run()
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if summary.Pages != 1 || summary.Patches != 0 {
		t.Errorf("summary = %+v, want only the root page", summary)
	}
}

func TestGenerator_MissingPatchesFile(t *testing.T) {
	fs, cfg := testSetup(t, nil)

	_, err := NewGenerator(fs, cfg, testLogger()).Run()
	if err == nil {
		t.Fatal("expected error for missing patches.json")
	}
	if !strings.Contains(err.Error(), "patches.json") {
		t.Errorf("error = %q, want it to name the input file", err.Error())
	}
	if exists, _ := afero.Exists(fs, "out/sitemap.xml"); exists {
		t.Error("no output should be written when the input is missing")
	}
}

func TestGenerator_LogsSkippedEntries(t *testing.T) {
	fs, cfg := testSetup(t, map[string]string{"patches.json": samplePatches})
	var buf bytes.Buffer

	if _, err := NewGenerator(fs, cfg, utils.NewWriterLogger(&buf, "info")).Run(); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !strings.Contains(buf.String(), "Skipped 2 malformed entries") {
		t.Errorf("log missing skip warning:\n%s", buf.String())
	}
}
