// Package config loads the runtime configuration consumed while decorating
// form blocks. The code base path in particular is read through a
// BasePathProvider at stylesheet resolution time rather than captured early.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultBlockSelector matches form blocks in a decorated page.
const DefaultBlockSelector = "div.form"

// Config is the on-disk configuration document.
type Config struct {
	CodeBasePath  string        `yaml:"codeBasePath"`
	BlockSelector string        `yaml:"blockSelector,omitempty"`
	TemplatesDir  string        `yaml:"templatesDir,omitempty"`
	Logging       LoggingConfig `yaml:"logging"`
}

// BasePathProvider supplies the runtime code base path.
type BasePathProvider interface {
	BasePath() (string, error)
}

// BasePathFunc adapts a function into a BasePathProvider.
type BasePathFunc func() (string, error)

// BasePath calls the underlying function.
func (fn BasePathFunc) BasePath() (string, error) {
	return fn()
}

// StaticBasePath returns a provider for a fixed base path.
func StaticBasePath(base string) BasePathProvider {
	return BasePathFunc(func() (string, error) {
		return base, nil
	})
}

// FileBasePath returns a provider that reads codeBasePath from the file at
// path on every call.
func FileBasePath(path string) BasePathProvider {
	return BasePathFunc(func() (string, error) {
		cfg, err := Load(path)
		if err != nil {
			return "", err
		}
		return cfg.BasePath()
	})
}

// BasePath satisfies BasePathProvider.
func (c *Config) BasePath() (string, error) {
	if c == nil {
		return "", errors.New("config: configuration is nil")
	}
	return c.CodeBasePath, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		BlockSelector: DefaultBlockSelector,
		Logging:       LoggingConfig{Level: LevelNormal},
	}
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("config: path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BlockSelector) == "" {
		c.BlockSelector = DefaultBlockSelector
	}
	switch c.Logging.Level {
	case "":
		c.Logging.Level = LevelNormal
	case LevelNone, LevelNormal, LevelDebug:
	default:
		return fmt.Errorf("logging.level %q must be one of none, normal, debug", c.Logging.Level)
	}
	return nil
}
