// Package config holds the runtime settings of the invoicing core.
package config

import (
	"time"

	"github.com/sainvoice/invoicecore/autosave"
)

// Config holds runtime settings.
//
// Fields:
//   - DatabasePath: location of the local SQLite database file.
//   - AutosaveDebounce: quiet window before an edit burst is persisted.
type Config struct {
	DatabasePath     string
	AutosaveDebounce time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "invoicecore.db"
	c.AutosaveDebounce = autosave.DefaultDebounce
}

// LoadConfig constructs a Config from defaults, overlaid with values from
// the JSON file at path when path is non-empty. JSON values take
// precedence over defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
