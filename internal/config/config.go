package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"schedlink/internal/model"
)

// PageConfig describes a single schedule page to scan.
type PageConfig struct {
	// URL is the schedule page address.
	URL string `yaml:"url" json:"url"`
	// ID is an internal identifier used for de-dup and logging.
	ID string `yaml:"id" json:"id"`
	// Name is a human-friendly label.
	Name string `yaml:"name" json:"name"`
	// Live selects the headless-browser scanner for pages that build their
	// schedule markup with JavaScript.
	Live bool `yaml:"live,omitempty" json:"live,omitempty"`
}

// SelectorConfig names the CSS classes identifying schedule markup. Empty
// fields fall back to the built-in defaults.
type SelectorConfig struct {
	Day     string `yaml:"day" json:"day"`
	Date    string `yaml:"date" json:"date"`
	Session string `yaml:"session" json:"session"`
	Title   string `yaml:"title" json:"title"`
	Time    string `yaml:"time" json:"time"`
	Venue   string `yaml:"venue" json:"venue"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the API.
	Listen string `yaml:"listen" json:"listen"`

	// OffsetHours is the fixed offset of the schedule's wall clock relative
	// to UTC. Zero means "use the default" (+2); the timezone label in the
	// page text is never consulted.
	OffsetHours int `yaml:"offset_hours" json:"offset_hours"`

	// RefreshCron is a cron-style schedule string (e.g. "*/15 * * * *")
	// used for periodic re-scans in serve mode.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// CacheDir is where fetched page bodies and cache metadata live.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`

	// Selectors overrides the markup class names, when the target site
	// differs from the defaults.
	Selectors SelectorConfig `yaml:"selectors" json:"selectors"`

	// Pages is the list of schedule pages to scan.
	Pages []PageConfig `yaml:"pages" json:"pages"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all
	// endpoints except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:      "127.0.0.1:8080",
		OffsetHours: model.DefaultUTCOffsetHours,
		RefreshCron: "*/15 * * * *",
		CacheDir:    "./var/page-cache",
		Pages:       []PageConfig{},
		BasicAuth:   nil,
	}
}

// Normalize fills in missing/zero values with defaults so partially-filled
// configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.OffsetHours == 0 {
		c.OffsetHours = model.DefaultUTCOffsetHours
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "*/15 * * * *"
	}
	if c.CacheDir == "" {
		c.CacheDir = "./var/page-cache"
	}
	if c.Pages == nil {
		c.Pages = []PageConfig{}
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist: create the parent directory if needed,
//     write a default config with 0600 perms, and return the default.
//   - If the file exists: read, unmarshal, normalize.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Return cfg with the error so the caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the configuration to path: parent directory ensured (0700),
// atomic write via temp file + rename, final permissions 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".schedlink-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save delegates to the package-level Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
