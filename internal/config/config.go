// Package config loads the optional mirwalk.toml configuration file,
// searched upward from the working directory. A missing file yields the
// defaults; a malformed one is an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the configuration file searched for.
const FileName = "mirwalk.toml"

// Config holds the user-facing defaults for rendering and output.
type Config struct {
	Render RenderConfig `toml:"render"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
}

// RenderConfig controls rendering detail.
type RenderConfig struct {
	ShowSpans  bool `toml:"show_spans"`
	AllocDepth int  `toml:"alloc_depth"`
}

// OutputConfig selects the default emit format.
type OutputConfig struct {
	Format string `toml:"format"`
}

// CacheConfig controls the analysis result cache.
type CacheConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Render: RenderConfig{AllocDepth: 2},
		Output: OutputConfig{Format: "markdown"},
		Cache:  CacheConfig{Enabled: true},
	}
}

// Find walks up from startDir looking for the configuration file.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the configuration, returning defaults when no
// file exists.
func Load(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Default(), err
	}
	if !ok {
		return Default(), nil
	}
	return LoadFile(path)
}
