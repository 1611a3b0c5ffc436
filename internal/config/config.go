package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkgdex-labs/pkgdex/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"

	// dataDirKey is the config/flag key overriding the data directory.
	dataDirKey = "data_dir"
)

// Dir returns the path to the pkgdex data directory (~/.pkgdex/). The
// PKGDEX_DATA_DIR environment variable takes precedence, then the data_dir
// value set via --data-dir or the config file.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("DATA_DIR")); v != "" {
		return v
	}
	if v := viper.GetString(dataDirKey); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// OverrideDataDir points the data directory at path for this process without
// persisting it. Backs the --data-dir flag.
func OverrideDataDir(path string) {
	viper.Set(dataDirKey, path)
}

// RegistriesDir returns the directory holding per-source snapshot roots.
func RegistriesDir() string {
	return filepath.Join(Dir(), "registries")
}

// FilePath returns the full path to the config file (~/.pkgdex/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
