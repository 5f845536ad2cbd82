package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Name is used for config, data, and log paths.
const Name = "rust-analyzer-plugin"

const (
	DefaultBaseURL = "https://github.com/rust-lang/rust-analyzer/releases/download"
	DefaultVersion = "nightly"
)

// Config is set by the user and applies to every editor session.
type Config struct {
	Download   DownloadConfig `yaml:"download"`
	InstallDir string         `yaml:"install_dir,omitempty"`
	LogLevel   zapcore.Level  `yaml:"log_level,omitempty"`
}

// DownloadConfig controls fetching release archives when no server binary
// can be found locally.
type DownloadConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url,omitempty"`
	Version string `yaml:"version,omitempty"`

	// Timeout bounds the whole download. Zero means no timeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Download: DownloadConfig{
			Enabled: true,
			BaseURL: DefaultBaseURL,
			Version: DefaultVersion,
		},
		LogLevel: zapcore.InfoLevel,
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join(Name, "config.yml"))
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}

	return path, nil
}

// Load loads the config file at the default location.
func Load(defaults Config) (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	return LoadFile(path, defaults)
}

// LoadFile loads a Config from the YAML file at path. Values not present in
// the file keep their defaults; a missing file yields the defaults.
func LoadFile(path string, defaults Config) (*Config, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &defaults, nil
		}

		return nil, err
	}

	config := defaults
	if err := yaml.Unmarshal(payload, &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if config.Download.BaseURL == "" {
		config.Download.BaseURL = DefaultBaseURL
	}

	if config.Download.Version == "" {
		config.Download.Version = DefaultVersion
	}

	return &config, nil
}

// ResolveInstallDir picks the directory downloaded servers are stored in:
// the host-supplied plugin directory, then the configured install_dir, then
// the XDG data directory.
func (config Config) ResolveInstallDir(env Environment) (string, error) {
	dir, ok, err := env.InstallDir()
	if err != nil {
		return "", err
	}

	if ok {
		return dir, nil
	}

	if config.InstallDir != "" {
		return config.InstallDir, nil
	}

	return filepath.Join(xdg.DataHome, Name), nil
}
