package config

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"crest/internal/source"
)

// Config mirrors crest.toml. Zero sections keep Default values.
type Config struct {
	Frontend Frontend `toml:"frontend"`
	Parallel Parallel `toml:"parallel"`
	Cache    Cache    `toml:"cache"`

	// Path: откуда загружен; пусто для Default.
	Path string `toml:"-"`
}

type Frontend struct {
	Normalize      string `toml:"normalize"` // none | nfc
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Format         string `toml:"format"` // short | pretty | json | golden
}

type Parallel struct {
	Jobs int `toml:"jobs"` // 0 = GOMAXPROCS
}

type Cache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"` // пусто: $XDG_CACHE_HOME/crest
}

// Default returns the configuration used when no crest.toml is found.
func Default() Config {
	return Config{
		Frontend: Frontend{Normalize: "nfc", MaxDiagnostics: 100, Format: "short"},
		Cache:    Cache{Enabled: true},
	}
}

// Load finds crest.toml above start and decodes it over Default.
// found is false when there is no file; cfg is Default then.
func Load(start string) (cfg Config, found bool, err error) {
	path, ok, err := Find(start)
	if err != nil || !ok {
		return Default(), false, err
	}
	cfg, err = LoadFile(path)
	return cfg, true, err
}

// LoadFile decodes path over Default and validates the result.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if _, ok := source.ParseNormalization(c.Frontend.Normalize); !ok {
		return fmt.Errorf("[frontend].normalize: invalid value %q (expected none|nfc)", c.Frontend.Normalize)
	}
	switch c.Frontend.Format {
	case "short", "pretty", "json", "golden":
	default:
		return fmt.Errorf("[frontend].format: invalid value %q (expected short|pretty|json|golden)", c.Frontend.Format)
	}
	// Bag хранит лимит в uint16
	if c.Frontend.MaxDiagnostics < 0 || c.Frontend.MaxDiagnostics > math.MaxUint16 {
		return fmt.Errorf("[frontend].max_diagnostics: %d out of range 0..%d", c.Frontend.MaxDiagnostics, math.MaxUint16)
	}
	if c.Parallel.Jobs < 0 {
		return fmt.Errorf("[parallel].jobs: must not be negative, got %d", c.Parallel.Jobs)
	}
	return nil
}

// Normalization returns the parsed [frontend].normalize value.
func (c Config) Normalization() source.Normalization {
	n, _ := source.ParseNormalization(c.Frontend.Normalize)
	return n
}
