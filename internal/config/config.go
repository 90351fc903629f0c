// Package config provides configuration management for Haven.
package config

import (
	"fmt"
	"os"

	"github.com/tidwall/sjson"
)

const appName = "haven"

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// DefaultAPIKeyTemplate is the API key value written on first run. It is
// resolved against the environment at load time.
const DefaultAPIKeyTemplate = "$GEMINI_API_KEY"

// Config is the top-level configuration structure. APIKey holds the resolved
// key at runtime; the on-disk file keeps the unresolved template.
type Config struct {
	APIKey  string   `json:"api_key,omitempty"`
	Model   string   `json:"model,omitempty"`
	Options *Options `json:"options,omitempty"`

	apiKeyTemplate string
}

// Options holds optional configuration settings.
type Options struct {
	DataDir string `json:"data_directory,omitempty"`
	Debug   bool   `json:"debug,omitempty"`
}

// NewConfig creates a new Config with initialized options.
func NewConfig() *Config {
	return &Config{
		Options: &Options{},
	}
}

// APIKeyTemplate returns the unresolved key value as stored on disk.
func (c *Config) APIKeyTemplate() string {
	if c.apiKeyTemplate != "" {
		return c.apiKeyTemplate
	}
	return c.APIKey
}

// SetConfigField updates a single field in the config file using JSON path
// notation. Only the specified field is modified.
func (c *Config) SetConfigField(key string, value any) error {
	return setConfigField(GlobalConfigPath(), key, value)
}

func setConfigField(configPath, key string, value any) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	newData, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("setting config field %q: %w", key, err)
	}

	if err := os.WriteFile(configPath, []byte(newData), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
