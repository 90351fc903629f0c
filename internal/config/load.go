package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const configFileName = "haven.json"

// Load reads the global configuration file, applies defaults, and resolves
// the API key template against the environment. A missing file yields a
// default config with an empty resolved key.
func Load() (*Config, error) {
	cfg := NewConfig()
	resolver := NewResolver()

	globalPath := GlobalConfigPath()
	if err := loadFile(globalPath, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	applyDefaults(cfg)
	resolveAPIKey(cfg, resolver)

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	cfg := NewConfig()
	resolver := NewResolver()

	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)
	resolveAPIKey(cfg, resolver)

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyDefaults(cfg *Config) {
	if cfg.Options == nil {
		cfg.Options = &Options{}
	}
	if cfg.Options.DataDir == "" {
		cfg.Options.DataDir = filepath.Join(xdg.DataHome, appName)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.APIKey == "" {
		cfg.APIKey = DefaultAPIKeyTemplate
	}
}

// resolveAPIKey keeps the template around for saving and swaps the runtime
// value for the resolved key. An unset environment variable resolves to "".
func resolveAPIKey(cfg *Config, resolver *Resolver) {
	cfg.apiKeyTemplate = cfg.APIKey
	resolved, err := resolver.Resolve(cfg.APIKey)
	if err != nil {
		cfg.APIKey = ""
		return
	}
	cfg.APIKey = resolved
}

// GlobalConfigPath returns the path to the global configuration file.
func GlobalConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, configFileName)
}

// DebugLogPath returns where the debug log is written.
func DebugLogPath() string {
	return filepath.Join(xdg.DataHome, appName, "debug.log")
}

// DataDir returns the data directory path from configuration.
func (c *Config) DataDir() string {
	if c.Options != nil && c.Options.DataDir != "" {
		return c.Options.DataDir
	}
	return filepath.Join(xdg.DataHome, appName)
}
