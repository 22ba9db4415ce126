package project

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest is a loaded stlgate.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config holds per-project defaults. Command line flags override any
// value set here.
type Config struct {
	Validate ValidateConfig `toml:"validate"`
	Cache    CacheConfig    `toml:"cache"`
}

type ValidateConfig struct {
	Tolerant bool `toml:"tolerant"`
	Verbose  bool `toml:"verbose"`
	Jobs     int  `toml:"jobs"`
}

type CacheConfig struct {
	Enabled bool `toml:"enabled"`
}

// Set reports which optional keys were present in the file, so callers
// can tell an explicit `tolerant = false` from an absent key.
type Set struct {
	Tolerant bool
	Verbose  bool
	Jobs     bool
	Cache    bool
}

// Load walks up from startDir, parses the nearest stlgate.toml and
// returns it. ok is false when no config file exists, which is not an
// error.
func Load(startDir string) (*Manifest, Set, bool, error) {
	configPath, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return nil, Set{}, ok, err
	}
	var cfg Config
	meta, err := toml.DecodeFile(configPath, &cfg)
	if err != nil {
		return nil, Set{}, true, fmt.Errorf("%s: failed to parse TOML: %w", configPath, err)
	}
	if cfg.Validate.Jobs < 0 {
		return nil, Set{}, true, fmt.Errorf("%s: [validate].jobs must not be negative", configPath)
	}
	set := Set{
		Tolerant: meta.IsDefined("validate", "tolerant"),
		Verbose:  meta.IsDefined("validate", "verbose"),
		Jobs:     meta.IsDefined("validate", "jobs"),
		Cache:    meta.IsDefined("cache", "enabled"),
	}
	return &Manifest{
		Path:   configPath,
		Root:   filepath.Dir(configPath),
		Config: cfg,
	}, set, true, nil
}
