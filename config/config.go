package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/takaishi/rgjump/editor"
	"github.com/takaishi/rgjump/search"
)

// UI names accepted by the ui setting
const (
	UITea   = "tea"
	UITview = "tview"
	UIPlain = "plain"
)

// Config holds application configuration
type Config struct {
	Root                 string        `toml:"root"`
	Editor               editor.Editor `toml:"editor"`
	Binary               string        `toml:"rg"`
	ExtraArgs            []string      `toml:"extra_args"`
	MaxBuffer            int64         `toml:"max_buffer"`
	MaxDescriptionLength int           `toml:"max_description_length"`
	UI                   string        `toml:"ui"`
	Repeat               bool          `toml:"repeat"`
	Log                  Log           `toml:"log"`

	// Set from the command line only
	List   bool     `toml:"-"`
	First  bool     `toml:"-"`
	DryRun bool     `toml:"-"`
	Query  []string `toml:"-"`
}

// Log configures the structured logger
type Log struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Binary:               search.DefaultBinary,
		MaxBuffer:            search.DefaultMaxBuffer,
		MaxDescriptionLength: search.DefaultMaxDescriptionLength,
		UI:                   UITea,
		Log: Log{
			Level: "info",
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/rgjump/config.toml
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "rgjump", "config.toml")
}

// Load reads path over the defaults. A missing file is only an error when
// required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	switch c.UI {
	case UITea, UITview, UIPlain:
	default:
		return fmt.Errorf("ui must be one of %s, %s, %s; got %q", UITea, UITview, UIPlain, c.UI)
	}
	if c.MaxBuffer <= 0 {
		return fmt.Errorf("max_buffer must be positive, got %d", c.MaxBuffer)
	}
	if c.MaxDescriptionLength <= 0 {
		return fmt.Errorf("max_description_length must be positive, got %d", c.MaxDescriptionLength)
	}
	if c.Binary == "" {
		return errors.New("rg binary must not be empty")
	}
	return nil
}
