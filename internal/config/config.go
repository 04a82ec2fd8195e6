// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all cardsmith configuration.
type Config struct {
	Runtime Runtime `yaml:"runtime"`
	Export  Export  `yaml:"export"`
	Card    Card    `yaml:"card"`
	Log     Log     `yaml:"log"`
}

// Runtime holds suggestion backend settings.
type Runtime struct {
	Provider string        `yaml:"provider"`
	Timeout  time.Duration `yaml:"timeout"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key"`
}

// Export holds vCard output settings.
type Export struct {
	Dir string `yaml:"dir"`
}

// Card holds preview settings.
type Card struct {
	Mode string `yaml:"mode"` // "light" | "dark"
}

// Log holds logger settings.
type Log struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
	File  string `yaml:"file"`  // used while the editor owns the terminal
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Runtime: Runtime{
			Provider: "gemini",
			Timeout:  30 * time.Second,
			Model:    "gemini-3-flash-preview",
		},
		Export: Export{Dir: "."},
		Card:   Card{Mode: "light"},
		Log: Log{
			Level: "info",
			File:  filepath.Join(".cardsmith", "cardsmith.log"),
		},
	}
}

// Paths returns the config files read by LoadLayered, lowest priority first:
// the user config under home, then the project config under dir.
func Paths(home, dir string) []string {
	var paths []string
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "cardsmith", "config.yaml"))
	}
	return append(paths, filepath.Join(dir, ".cardsmith", "config.yaml"))
}

// LoadDotEnv loads KEY=value pairs from path into the process environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: loading %s: %w", path, err)
	}
	return nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Runtime.Provider == "" {
		return errors.New("config: runtime.provider cannot be empty")
	}
	if c.Runtime.Timeout <= 0 {
		return fmt.Errorf("config: runtime.timeout must be positive, got %v", c.Runtime.Timeout)
	}
	if c.Export.Dir == "" {
		return errors.New("config: export.dir cannot be empty")
	}
	switch c.Card.Mode {
	case "light", "dark":
	default:
		return fmt.Errorf("config: card.mode must be \"light\" or \"dark\", got %q", c.Card.Mode)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: CARDSMITH_PROVIDER, CARDSMITH_TIMEOUT, CARDSMITH_MODEL,
// CARDSMITH_EXPORT_DIR, CARDSMITH_LOG_LEVEL, and GEMINI_API_KEY or API_KEY
// for the key (GEMINI_API_KEY wins).
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CARDSMITH_PROVIDER"); v != "" {
		c.Runtime.Provider = v
	}
	if v := os.Getenv("CARDSMITH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid CARDSMITH_TIMEOUT %q: %w", v, err)
		}
		c.Runtime.Timeout = d
	}
	if v := os.Getenv("CARDSMITH_MODEL"); v != "" {
		c.Runtime.Model = v
	}
	if v := os.Getenv("CARDSMITH_EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	if v := os.Getenv("CARDSMITH_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	for _, key := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if v := os.Getenv(key); v != "" {
			c.Runtime.APIKey = v
			break
		}
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Runtime *rawRuntime `yaml:"runtime"`
	Export  *rawExport  `yaml:"export"`
	Card    *rawCard    `yaml:"card"`
	Log     *rawLog     `yaml:"log"`
}

type rawRuntime struct {
	Provider *string        `yaml:"provider"`
	Timeout  *time.Duration `yaml:"timeout"`
	Model    *string        `yaml:"model"`
	APIKey   *string        `yaml:"api_key"`
}

type rawExport struct {
	Dir *string `yaml:"dir"`
}

type rawCard struct {
	Mode *string `yaml:"mode"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if r := layer.Runtime; r != nil {
		setIf(&c.Runtime.Provider, r.Provider)
		setIf(&c.Runtime.Timeout, r.Timeout)
		setIf(&c.Runtime.Model, r.Model)
		setIf(&c.Runtime.APIKey, r.APIKey)
	}
	if layer.Export != nil {
		setIf(&c.Export.Dir, layer.Export.Dir)
	}
	if layer.Card != nil {
		setIf(&c.Card.Mode, layer.Card.Mode)
	}
	if layer.Log != nil {
		setIf(&c.Log.Level, layer.Log.Level)
		setIf(&c.Log.File, layer.Log.File)
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
