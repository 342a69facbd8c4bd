package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/YLivay/seekline/reader"
)

// Config holds the viewer's settings. Values come from defaults, then the
// config file, then command line flags.
type Config struct {
	// ChunkSize is the boundary scan granularity in bytes.
	ChunkSize int `toml:"chunk_size"`
	// BuildIndex pre-scans the whole file at startup. Navigation becomes
	// O(1) and random jumps sample uniformly per line instead of being
	// biased towards long lines.
	BuildIndex bool `toml:"build_index"`
	// Seed fixes the random jump sequence. 0 seeds from the clock.
	Seed int64 `toml:"seed"`
	// JQ is a gojq program applied to JSON lines before display.
	JQ string `toml:"jq"`
	// Mmap memory-maps the input instead of reading it through file I/O.
	// Only applies to regular files.
	Mmap bool `toml:"mmap"`
}

func DefaultConfig() *Config {
	return &Config{ChunkSize: reader.DefaultChunkSize}
}

// LoadConfig reads the config file, falling back to defaults when it does
// not exist.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	path := configPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

func configPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "seekline", "config.toml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "seekline", "config.toml")
}
