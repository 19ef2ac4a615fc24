package config

import (
	"os"
	"path/filepath"

	"pastectl/pkg/errors"

	"gopkg.in/yaml.v3"
)

// DefaultDateFormat is the strftime format used by the date command when
// neither the config file, the environment, nor the --format flag set one.
const DefaultDateFormat = "%d/%m/%y"

// Config holds the complete configuration. Every field is optional; the tool
// works with no config file at all.
type Config struct {
	Paste PasteConfig `yaml:"paste"`
	Date  DateConfig  `yaml:"date"`
	Log   LogConfig   `yaml:"log"`
}

type PasteConfig struct {
	WorkDir string `yaml:"work_dir"`

	// UniqueNames appends a random suffix to artifact names so same-millisecond
	// writes cannot collide.
	UniqueNames bool `yaml:"unique_names"`
}

type DateConfig struct {
	Format string `yaml:"format"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load loads the configuration from the default path, applying environment
// overrides and defaults.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
	}
	return loadFromPath(configPath)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "pastectl", "config.yaml"), nil
}

// Save saves the configuration to file
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to marshal config", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to write config file", err)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func loadFromPath(configPath string) (*Config, error) {
	cfg := &Config{}

	if err := loadConfigFile(configPath, cfg); err != nil {
		return nil, err
	}

	applyEnvironmentOverrides(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

// loadConfigFile reads and parses the config file from the given path
func loadConfigFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		// File doesn't exist, that's okay - we'll use env vars and defaults
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to parse config file", err)
	}

	return nil
}

// applyEnvironmentOverrides applies environment variable overrides to the config
func applyEnvironmentOverrides(cfg *Config) {
	cfg.Paste.WorkDir = getEnv("PASTECTL_WORK_DIR", cfg.Paste.WorkDir)
	cfg.Date.Format = getEnv("PASTECTL_DATE_FORMAT", cfg.Date.Format)
	cfg.Log.Level = getEnv("PASTECTL_LOG_LEVEL", cfg.Log.Level)
}

func applyDefaults(cfg *Config) {
	if cfg.Date.Format == "" {
		cfg.Date.Format = DefaultDateFormat
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
