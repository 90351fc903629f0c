package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveConfig contains only the fields we want to save to disk.
// The API key is stored as its template (e.g. "$GEMINI_API_KEY"), never as
// the resolved value.
type SaveConfig struct {
	APIKey  string   `json:"api_key,omitempty"`
	Model   string   `json:"model,omitempty"`
	Options *Options `json:"options,omitempty"`
}

// Save writes the configuration to the global config file.
func Save(cfg *Config) error {
	return SaveToFile(cfg, GlobalConfigPath())
}

// SaveToFile writes the configuration to a specific file path.
func SaveToFile(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	saveCfg := &SaveConfig{
		APIKey:  cfg.APIKeyTemplate(),
		Model:   cfg.Model,
		Options: cfg.Options,
	}

	data, err := json.MarshalIndent(saveCfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
