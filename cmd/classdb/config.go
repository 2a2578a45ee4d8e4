package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the classdb.toml dump configuration. Every field has a
// flag override; the file just keeps project defaults next to the
// code.
type Config struct {
	Output OutputConfig `toml:"output"`
	Filter FilterConfig `toml:"filter"`
}

// OutputConfig selects where and how the class database is written.
type OutputConfig struct {
	// Path is the output file; empty means stdout.
	Path string `toml:"path"`
	// Format is "text" or "cbor".
	Format string `toml:"format"`
}

// FilterConfig limits the dump to matching classes.
type FilterConfig struct {
	// Prefixes keeps only classes whose qualified name starts with one
	// of these; empty keeps everything.
	Prefixes []string `toml:"prefixes"`
}

// DefaultConfig returns the configuration used when no classdb.toml
// exists.
func DefaultConfig() *Config {
	return &Config{Output: OutputConfig{Format: "text"}}
}

// LoadConfig parses classdb.toml from the given directory. A missing
// file is not an error; defaults apply.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, "classdb.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
	if cfg.Output.Format != "text" && cfg.Output.Format != "cbor" {
		return nil, fmt.Errorf("%s: unknown output format %q", path, cfg.Output.Format)
	}
	return cfg, nil
}
