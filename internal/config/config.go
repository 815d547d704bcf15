// Package config loads and saves the garden's user preferences from
// .garden/config.json. The API key may also come from the GEMINI_API_KEY
// environment variable, which wins over the file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoggingConfig controls the categorized file logger.
type LoggingConfig struct {
	DebugMode  bool            `json:"debug_mode"`
	Categories map[string]bool `json:"categories,omitempty"`
	Level      string          `json:"level,omitempty"`
}

// Config holds user preferences.
type Config struct {
	APIKey      string `json:"api_key"`
	Model       string `json:"model"`        // generative-language model name
	Theme       string `json:"theme"`        // "light" or "dark"
	DisplayName string `json:"display_name"` // last-used display name default

	// Synthetic visitor moods drifting into the garden on a timer.
	SyntheticMoods           bool `json:"synthetic_moods"`
	SyntheticIntervalSeconds int  `json:"synthetic_interval_seconds"`

	Logging LoggingConfig `json:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Model:                    "gemini-2.0-flash",
		Theme:                    "dark",
		SyntheticMoods:           false,
		SyntheticIntervalSeconds: 45,
	}
}

// DataDir returns the directory holding config, logs and the history store.
// Prefers a project-local .garden directory, falling back to ~/.moodgarden.
func DataDir() (string, error) {
	if cwd, err := os.Getwd(); err == nil {
		localDir := filepath.Join(cwd, ".garden")
		if stat, err := os.Stat(localDir); (err == nil && stat.IsDir()) || os.IsNotExist(err) {
			return localDir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".moodgarden"), nil
}

// ConfigFile returns the full path to the config file.
func ConfigFile() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the configuration from disk, applying defaults for absent
// fields and the GEMINI_API_KEY environment override.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigFile()
	if err != nil {
		return applyEnv(cfg), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return applyEnv(cfg), nil
	}
	if err != nil {
		return applyEnv(cfg), err
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return applyEnv(DefaultConfig()), fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultConfig().Model
	}
	if cfg.SyntheticIntervalSeconds <= 0 {
		cfg.SyntheticIntervalSeconds = DefaultConfig().SyntheticIntervalSeconds
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	return cfg
}

// Save writes the configuration to disk, creating the data directory if
// needed.
func Save(cfg Config) error {
	path, err := ConfigFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
