package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global ~/.quickblessing/config.toml.
type Config struct {
	DefaultProfile string `toml:"default_profile"`
	// SoundCommand is run to play the blessing cue, e.g.
	// ["paplay", "/usr/share/sounds/blessing.wav"]. Empty means a terminal bell.
	SoundCommand []string `toml:"sound_command"`
	LogLevel     string   `toml:"log_level"`
}

// Load reads config from the given path. Returns nil and an error if the file
// is missing or malformed.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault is Load with a zero Config in place of any error.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		return &Config{}
	}
	return cfg
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
