package lonja

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a lonja site.
type SiteConfig struct {
	Name string `yaml:"name"` // Site name (default "Lonja")
	URL  string `yaml:"url"`  // Canonical URL (default "http://localhost:3000")

	Addr         string `yaml:"addr"`          // Listen address (default ":3000")
	DatabasePath string `yaml:"database_path"` // Content SQLite path (default "data/content.db")
	SnapshotPath string `yaml:"snapshot_path"` // Stock snapshot bbolt path (default "data/stock.db")

	CatalogPath     string `yaml:"catalog_path"`     // Flat catalog rows JSON (default "data/catalog.json")
	IngredientsPath string `yaml:"ingredients_path"` // Sushi ingredient lists JSON (optional)
	WatchCatalog    bool   `yaml:"watch_catalog"`    // Reload catalog on file change

	StaticDir string `yaml:"static_dir"` // Uploaded image dir root (default "public")

	DefaultPageSize int `yaml:"default_page_size"` // Listing page size (default 10)

	WriteLimitMax    int           `yaml:"write_limit_max"`    // Mutations per IP per window (default 30)
	WriteLimitWindow time.Duration `yaml:"write_limit_window"` // Limiter window (default 1min)

	MetricsEnabled bool `yaml:"metrics_enabled"` // Expose /metrics (default true via LoadConfig)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Lonja"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/content.db"
	}
	if c.SnapshotPath == "" {
		c.SnapshotPath = "data/stock.db"
	}
	if c.CatalogPath == "" {
		c.CatalogPath = "data/catalog.json"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.DefaultPageSize == 0 {
		c.DefaultPageSize = 10
	}
	if c.WriteLimitMax == 0 {
		c.WriteLimitMax = 30
	}
	if c.WriteLimitWindow == 0 {
		c.WriteLimitWindow = time.Minute
	}
}

// LoadConfig reads the YAML config at path (skipped when the file does
// not exist), then applies environment overrides and defaults. Callers
// load a .env file first if they want one.
func LoadConfig(path string) (SiteConfig, error) {
	cfg := SiteConfig{MetricsEnabled: true}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return SiteConfig{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// no file: env + defaults only
		default:
			return SiteConfig{}, err
		}
	}
	applyEnv(&cfg)
	cfg.setDefaults()
	return cfg, nil
}

func applyEnv(cfg *SiteConfig) {
	if v := os.Getenv("LONJA_NAME"); v != "" {
		cfg.Name = v
	}
	if v := os.Getenv("LONJA_URL"); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv("LONJA_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("LONJA_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("LONJA_SNAPSHOT_PATH"); v != "" {
		cfg.SnapshotPath = v
	}
	if v := os.Getenv("LONJA_CATALOG_PATH"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("LONJA_INGREDIENTS_PATH"); v != "" {
		cfg.IngredientsPath = v
	}
	if v := os.Getenv("LONJA_STATIC_DIR"); v != "" {
		cfg.StaticDir = v
	}
}
