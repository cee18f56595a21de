package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

var validFormats = map[string]bool{
	"markdown": true,
	"json":     true,
	"mermaid":  true,
	"dot":      true,
	"ascii":    true,
}

// LoadFile parses one configuration file. Fields the file does not set
// keep their defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Default(), fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("render", "alloc_depth") && cfg.Render.AllocDepth < 0 {
		return Default(), fmt.Errorf("%s: [render].alloc_depth must be >= 0", path)
	}
	if meta.IsDefined("output", "format") && !validFormats[cfg.Output.Format] {
		return Default(), fmt.Errorf("%s: [output].format must be one of markdown|json|mermaid|dot|ascii", path)
	}
	return cfg, nil
}
