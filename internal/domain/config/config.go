package config

import (
	domainerr "clubsite/internal/domain/errors"
	"gopkg.in/yaml.v3"
	"net/url"
	"os"
	"strings"
	"time"
)

type Config struct {
	Site  SiteConfig  `yaml:"site"`
	Build BuildConfig `yaml:"build"`
	Serve ServeConfig `yaml:"serve"`
}

type SiteConfig struct {
	Title        string `yaml:"title"`
	Tagline      string `yaml:"tagline"`
	Organization string `yaml:"organization"`
	Description  string `yaml:"description"`
	SiteURL      string `yaml:"site_url"`
	Theme        string `yaml:"theme"`
	Language     string `yaml:"language"`
	TimeZone     string `yaml:"time_zone"`
	JoinURL      string `yaml:"join_url"`
	Disclaimer   string `yaml:"disclaimer"`
}

type MarkdownMode string

const (
	MarkdownDialect MarkdownMode = "dialect"
	MarkdownGFM     MarkdownMode = "gfm"
)

type BuildConfig struct {
	SourceDir    string       `yaml:"source_dir"`
	DataDir      string       `yaml:"data_dir"`
	PublicDir    string       `yaml:"public_dir"`
	ThemeDir     string       `yaml:"theme_dir"`
	BasePath     string       `yaml:"base_path"`
	IndexPath    string       `yaml:"index_path"`
	IncludeDraft bool         `yaml:"include_draft"`
	Markdown     MarkdownMode `yaml:"markdown"`
	PageSize     int          `yaml:"page_size"`
	Now          time.Time    `yaml:"-"`
}

type ServeConfig struct {
	Addr     string        `yaml:"addr"`
	Debounce time.Duration `yaml:"debounce"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Title:    "Applied AI Club",
			Theme:    "default",
			Language: "en-US",
		},
		Build: BuildConfig{
			SourceDir: "content/blog",
			DataDir:   "content/data",
			PublicDir: "public",
			ThemeDir:  "themes",
			IndexPath: ".clubsite/index.db",
			Markdown:  MarkdownDialect,
			PageSize:  20,
			Now:       time.Now(),
		},
		Serve: ServeConfig{
			Addr:     ":8080",
			Debounce: 200 * time.Millisecond,
		},
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Title) == "" {
		ve.Add("site.title", "must not be empty")
	}

	if strings.TrimSpace(c.Site.SiteURL) == "" {
		ve.Add("site.site_url", "must not be empty")
	} else if !isValidAbsURL(c.Site.SiteURL) {
		ve.Add("site.site_url", "must be a valid absolute URL")
	}
	if j := strings.TrimSpace(c.Site.JoinURL); j != "" && !isValidAbsURL(j) {
		ve.Add("site.join_url", "must be a valid absolute URL")
	}

	if strings.TrimSpace(c.Site.Theme) == "" {
		ve.Add("site.theme", "must not be empty")
	}
	if tz := strings.TrimSpace(c.Site.TimeZone); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			ve.Add("site.time_zone", "unknown time zone "+tz)
		}
	}

	switch c.Build.Markdown {
	case "", MarkdownDialect, MarkdownGFM:
	default:
		ve.Add("build.markdown", "must be 'dialect' or 'gfm'")
	}

	if strings.TrimSpace(c.Build.SourceDir) == "" {
		ve.Add("build.source_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.DataDir) == "" {
		ve.Add("build.data_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.PublicDir) == "" {
		ve.Add("build.public_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.ThemeDir) == "" {
		ve.Add("build.theme_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.IndexPath) == "" {
		ve.Add("build.index_path", "must not be empty")
	}
	if c.Build.PageSize < 0 {
		ve.Add("build.page_size", "must not be negative")
	}
	if bp := strings.TrimSpace(c.Build.BasePath); bp != "" {
		if !strings.HasPrefix(bp, "/") {
			ve.Add("build.base_path", "must start with '/'")
		}
		if strings.HasSuffix(bp, "/") && bp != "/" {
			ve.Add("build.base_path", "must not end with '/'")
		}
	}

	if c.Serve.Debounce < 0 {
		ve.Add("serve.debounce", "must not be negative")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

// Location returns the configured time zone, falling back to local time.
func (s SiteConfig) Location() *time.Location {
	if tz := strings.TrimSpace(s.TimeZone); tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}
	return Parse(data)
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			return cfg, cfg.Validate()
		}
		return Default(), err
	}
	return Parse(data)
}

// Parse overlays the YAML document on the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Build.Now.IsZero() {
		cfg.Build.Now = time.Now()
	}
	if cfg.Build.Markdown == "" {
		cfg.Build.Markdown = MarkdownDialect
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
