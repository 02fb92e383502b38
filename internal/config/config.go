// Package config loads the tool configuration from .triage/config.toml.
// Every field is optional; getter methods supply defaults for zero
// values so a missing or partial file behaves like the built-in limits.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/keenanwest/triage/internal/extract"
)

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// ConfigDir is the directory name for project configuration.
const ConfigDir = ".triage"

// Config is the on-disk configuration.
type Config struct {
	Extract   ExtractConfig   `toml:"extract"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Store     StoreConfig     `toml:"store"`
}

// ExtractConfig bounds a single extraction call.
type ExtractConfig struct {
	// MaxLineLength rejects longer lines outright. Defaults to 2000.
	MaxLineLength int `toml:"max_line_length"`
	// DedupCapacity bounds the dedup set. Defaults to 1000.
	DedupCapacity int `toml:"dedup_capacity"`
	// AccumulatorMaxLines bounds a multi-line block. Defaults to 50.
	AccumulatorMaxLines int `toml:"accumulator_max_lines"`
	// AccumulatorMaxBytes bounds a multi-line block. Defaults to 8192.
	AccumulatorMaxBytes int `toml:"accumulator_max_bytes"`
}

// Limits converts the section to pipeline limits; zero fields fall back
// to the pipeline defaults.
func (e *ExtractConfig) Limits() extract.Limits {
	return extract.Limits{
		MaxLineLength:       e.MaxLineLength,
		DedupCapacity:       e.DedupCapacity,
		AccumulatorMaxLines: e.AccumulatorMaxLines,
		AccumulatorMaxBytes: e.AccumulatorMaxBytes,
	}
}

// TelemetryConfig bounds what leaves the process as diagnostics.
type TelemetryConfig struct {
	// MaxSamples caps unknown-pattern samples per call. Defaults to 10.
	MaxSamples int `toml:"max_samples"`
	// MaxSampleLength caps each sample's length. Defaults to 200.
	MaxSampleLength int `toml:"max_sample_length"`
}

// GetMaxSamples returns the configured sample cap or 10.
func (t *TelemetryConfig) GetMaxSamples() int {
	if t.MaxSamples <= 0 {
		return 10
	}
	return t.MaxSamples
}

// GetMaxSampleLength returns the configured sample length cap or 200.
func (t *TelemetryConfig) GetMaxSampleLength() int {
	if t.MaxSampleLength <= 0 {
		return 200
	}
	return t.MaxSampleLength
}

// StoreConfig locates the results database.
type StoreConfig struct {
	// Path to the SQLite database, relative to the config directory
	// when not absolute. Defaults to "results.db".
	Path string `toml:"path"`
}

// GetPath returns the configured database path or the default, resolved
// under root when relative.
func (s *StoreConfig) GetPath(root string) string {
	p := s.Path
	if p == "" {
		p = "results.db"
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, ConfigDir, p)
}

// Load reads the config from <root>/.triage/config.toml. A missing file
// yields the zero config (all defaults) with no error.
func Load(root string) (*Config, error) {
	var cfg Config
	path := filepath.Join(root, ConfigDir, FileName)
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to <root>/.triage/config.toml.
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, FileName))
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
