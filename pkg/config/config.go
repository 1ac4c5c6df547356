// Package config loads loggraph settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/utkarsh5026/loggraph/pkg/common/logger"
)

// DefaultFile is the config file looked up when no path is given
const DefaultFile = ".loggraph.toml"

// Config is the root of the config file
type Config struct {
	Log    LogConfig    `toml:"log"`
	Render RenderConfig `toml:"render"`
	Source SourceConfig `toml:"source"`
}

// LogConfig controls the process logger
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level"`

	// Format is text or json
	Format string `toml:"format"`
}

// RenderConfig controls graph output
type RenderConfig struct {
	// Compact prints one line per row without headers; otherwise every
	// commit is followed by its author and subject lines
	Compact bool `toml:"compact"`

	// Color enables lipgloss styling
	Color bool `toml:"color"`
}

// SourceConfig controls history loading
type SourceConfig struct {
	// DefaultScheme is used for locations without a "<scheme>:" prefix
	DefaultScheme string `toml:"default_scheme"`

	// Limit caps the number of commits read; zero means no limit
	Limit int `toml:"limit"`
}

// Default returns the built in settings
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: string(logger.FormatText),
		},
		Render: RenderConfig{
			Color: true,
		},
		Source: SourceConfig{
			DefaultScheme: "git",
			Limit:         1000,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// path is DefaultFile.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultFile {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that toml decoding cannot
func (c *Config) Validate() error {
	switch logger.Format(c.Log.Format) {
	case logger.FormatText, logger.FormatJSON:
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Source.Limit < 0 {
		return fmt.Errorf("source.limit must not be negative, got %d", c.Source.Limit)
	}
	return nil
}

// Encode renders the config as TOML
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
