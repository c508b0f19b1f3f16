package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sainvoice/invoicecore/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify the debounce either as a string
// like "1s" or as integer nanoseconds.
type jsonConfig struct {
	DatabasePath     *string         `json:"database_path"`
	AutosaveDebounce *timex.Duration `json:"autosave_debounce"`
}

// parseJSON overlays cfg with values loaded from the JSON file at path.
// An empty path skips the overlay; only fields present in the file
// override the defaults.
func parseJSON(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.AutosaveDebounce != nil {
		cfg.AutosaveDebounce = time.Duration(jc.AutosaveDebounce.Duration)
	}
	return nil
}
