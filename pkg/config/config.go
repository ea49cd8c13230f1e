package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// AppConfig holds all user-defined persistent settings. Environment
// variables override whatever the file says.
type AppConfig struct {
	University  string `json:"university,omitempty"   env:"CINECA_UNIVERSITY" env-default:"unitn"`
	Lang        string `json:"lang,omitempty"         env:"CINECA_LANG"       env-default:"it"`
	LastProgram string `json:"last_program,omitempty" env:"CINECA_PROGRAM"`
	LastPath    string `json:"last_path,omitempty"`
	AccentColor string `json:"accent_color,omitempty" env:"CINECA_ACCENT_COLOR"`
}

// getConfigPath returns the absolute path to ~/.cineca-helper.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cineca-helper.json"), nil
}

// Load reads the application configuration from disk, layering environment
// variables and defaults on top. A missing file is not an error.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else {
		// No file, read from ENV + defaults only
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from environment: %w", err)
		}
	}

	return &cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
