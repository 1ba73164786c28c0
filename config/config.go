// Package config loads the c2patext JSON configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"xdao.co/c2patext/cidutil"
	"xdao.co/c2patext/compliance"
	"xdao.co/c2patext/storage"
	"xdao.co/c2patext/storage/localfs"
)

// EnvVar names the environment variable consulted when no --config flag is
// given.
const EnvVar = "C2PATEXT_CONFIG"

// Config is the on-disk configuration.
//
// WritePolicy values:
// - "first" (default): write only to the first store; reads fall back in order
// - "all": write to every store and require CID equality (see storage.Replicating)
//
// Example:
//
//	{
//	  "store_dirs": ["/var/lib/c2patext", "/mnt/backup/c2patext"],
//	  "write_policy": "all",
//	  "mode": "strict",
//	  "validate_jumbf": true,
//	  "hash": "sha2-256",
//	  "log_level": "info"
//	}
type Config struct {
	StoreDirs   []string `json:"store_dirs,omitempty"`
	WritePolicy string   `json:"write_policy,omitempty"`
	Mode        string   `json:"mode,omitempty"`
	// ValidateJumbf is a pointer so an absent key keeps the default (true).
	ValidateJumbf *bool  `json:"validate_jumbf,omitempty"`
	Hash          string `json:"hash,omitempty"`
	LogLevel      string `json:"log_level,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config { return Config{} }

// LoadFile reads and validates a JSON config file. Unknown keys are rejected.
func LoadFile(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, errors.New("config: empty config path")
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Resolve loads path when set, otherwise the file named by EnvVar, otherwise
// returns Default.
func Resolve(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

func (c Config) Validate() error {
	seen := make(map[string]struct{}, len(c.StoreDirs))
	for _, d := range c.StoreDirs {
		if strings.TrimSpace(d) == "" {
			return errors.New("config: store_dirs entries must be non-empty")
		}
		if _, ok := seen[d]; ok {
			return fmt.Errorf("config: duplicate store dir %q", d)
		}
		seen[d] = struct{}{}
	}
	switch c.WritePolicy {
	case "", "first", "all":
	default:
		return fmt.Errorf("config: invalid write_policy %q", c.WritePolicy)
	}
	if _, err := compliance.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Hash {
	case "", cidutil.SHA2_256, cidutil.SHA3_256:
	default:
		return fmt.Errorf("config: invalid hash %q", c.Hash)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ComplianceMode returns the configured mode. Validate must have passed.
func (c Config) ComplianceMode() compliance.Mode {
	m, _ := compliance.ParseMode(c.Mode)
	return m
}

// JumbfChecks reports whether manifest validation should include JUMBF
// structure checks.
func (c Config) JumbfChecks() bool {
	return c.ValidateJumbf == nil || *c.ValidateJumbf
}

// Level returns the configured log level. Validate must have passed.
func (c Config) Level() slog.Level {
	l, _ := ParseLevel(c.LogLevel)
	return l
}

// ParseLevel maps a level name to a slog.Level. The empty string is Info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("config: invalid log_level %q", s)
	}
}

// OpenStore opens the configured manifest store.
//
// If dirs is non-empty it replaces StoreDirs. A single directory yields a
// *localfs.Store; several yield a storage.Fallback or storage.Replicating per
// WritePolicy.
func (c Config) OpenStore(dirs ...string) (storage.Store, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		dirs = c.StoreDirs
	}
	if len(dirs) == 0 {
		return nil, storage.ErrNoBackends
	}

	named := make([]storage.Named, 0, len(dirs))
	for _, d := range dirs {
		s, err := localfs.New(d, c.Hash)
		if err != nil {
			return nil, fmt.Errorf("config: open store %q: %w", d, err)
		}
		named = append(named, storage.Named{Name: d, Store: s})
	}

	if len(named) == 1 {
		return named[0].Store, nil
	}

	switch c.WritePolicy {
	case "", "first":
		stores := make([]storage.Store, 0, len(named))
		for _, n := range named {
			stores = append(stores, n.Store)
		}
		return storage.Fallback{Stores: stores}, nil
	case "all":
		return storage.Replicating{Stores: named}, nil
	default:
		return nil, fmt.Errorf("config: invalid write_policy %q", c.WritePolicy)
	}
}
