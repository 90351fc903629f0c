package config

import (
	"os"
)

// IsFirstRun checks if this is the first time running Haven.
// Returns true if no config file exists yet.
func IsFirstRun() bool {
	configPath := GlobalConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return true
	}
	return false
}

// WriteDefault creates the global config file with default values. It is
// called on first run so the user has a file to edit.
func WriteDefault() error {
	cfg := NewConfig()
	applyDefaults(cfg)
	return Save(cfg)
}
