// Package config loads the rpncalc command configuration from a YAML or JSON file.
package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the rpncalc command configuration.
type Config struct {
	Log       Log      `yaml:"log" json:"log"`
	Store     Store    `yaml:"store" json:"store"`
	Variables []string `yaml:"variables" json:"variables"`
}

// Log configures the structured logger.
type Log struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, or error
	Format string `yaml:"format" json:"format"` // text or json
}

// Store selects where named programs are kept.
type Store struct {
	Driver string `yaml:"driver" json:"driver"` // memory or sqlite
	Path   string `yaml:"path" json:"path"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log:       Log{Level: "info", Format: "text"},
		Store:     Store{Driver: "memory", Path: "rpncalc.db"},
		Variables: []string{"M"},
	}
}

// FromFile loads configuration from path, detecting the format by extension: .yaml, .yml, or
// .json. Keys absent from the file keep their Default values.
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config file")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return Config{}, errors.Errorf("unsupported config file extension: %s", ext)
	}
}

// FromYAML parses YAML data over the defaults and validates the result.
func FromYAML(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrap(err, "parse yaml")
	}
	return c, c.Validate()
}

// FromJSON parses JSON data over the defaults and validates the result.
func FromJSON(data []byte) (Config, error) {
	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrap(err, "parse json")
	}
	return c, c.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Errorf("unknown log format: %q", c.Log.Format)
	}
	switch c.Store.Driver {
	case "memory":
	case "sqlite":
		if c.Store.Path == "" {
			return errors.New("sqlite store requires a path")
		}
	default:
		return errors.Errorf("unknown store driver: %q", c.Store.Driver)
	}
	return nil
}

// SlogLevel converts the configured level name.
func (l Log) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, errors.Errorf("unknown log level: %q", l.Level)
}

// NewLogger returns a logger writing to stderr in the configured format at the configured level.
func (l Log) NewLogger() (*slog.Logger, error) {
	level, err := l.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
}
