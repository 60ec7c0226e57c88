package config

import (
	"errors"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const DefaultBaseURL = "https://ceddc.github.io/simple-patch-finder/"

type Config struct {
	Site struct {
		BaseURL string
	}
	Input struct {
		PatchesFile string
		MetaFile    string
	}
	Output struct {
		Dir         string
		IndexFile   string
		PagesFile   string
		PatchesFile string
	}
	Log struct {
		Level string
		Dir   string
	}
}

// LoadConfig reads config.yaml from the working directory or ./config.
// A missing config file is not an error; the defaults describe the
// standard build layout.
func LoadConfig(fs afero.Fs) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Default values
	v.SetDefault("site.baseurl", DefaultBaseURL)
	v.SetDefault("input.patchesfile", "patches.json")
	v.SetDefault("input.metafile", "patches.meta.json")
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.indexfile", "sitemap.xml")
	v.SetDefault("output.pagesfile", "sitemap-pages.xml")
	v.SetDefault("output.patchesfile", "sitemap-patches.xml")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// SiteURL returns the base URL with exactly one trailing slash.
func (c *Config) SiteURL() string {
	base := c.Site.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + "/"
}
