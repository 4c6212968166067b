package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// AcoustID contains configuration for the fingerprint lookup service.
type AcoustID struct {
	APIKey   string  `toml:"api_key"`
	BaseURL  string  `toml:"base_url"`
	MinScore float64 `toml:"min_score"`
}

// MusicBrainz contains configuration for the release catalog service.
type MusicBrainz struct {
	BaseURL                  string  `toml:"base_url"`
	UserAgent                string  `toml:"user_agent"`
	RateLimitSeconds         float64 `toml:"rate_limit_seconds"`
	MaxRetries               int     `toml:"max_retries"`
	TimeoutSeconds           int     `toml:"timeout_seconds"`
	SearchLimit              int     `toml:"search_limit"`
	DurationToleranceSeconds float64 `toml:"duration_tolerance_seconds"`
}

// CoverArt contains configuration for the cover art archive service.
type CoverArt struct {
	BaseURL        string `toml:"base_url"`
	MaxRetries     int    `toml:"max_retries"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Language       string `toml:"language"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Reconcile contains configuration for file-to-track reconciliation.
type Reconcile struct {
	Algorithm             string  `toml:"algorithm"` // greedy | optimal
	MatchToleranceSeconds float64 `toml:"match_tolerance_seconds"`
}

// ResultCache contains configuration for the fingerprint result cache.
type ResultCache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // Default: ~/.cache/discern/results.db
}

// Logging contains configuration for log output.
type Logging struct {
	Format      string   `toml:"format"`
	Level       string   `toml:"level"`
	OutputPaths []string `toml:"output_paths"`
}

// Config encapsulates all configuration values for the identification engine.
//
// Sections by subsystem:
//   - AcoustID: fingerprint lookup credentials and score floor
//   - MusicBrainz: catalog host, rate limit, retries, duration tolerance
//   - CoverArt: cover art archive host and retry budget
//   - TMDB: movie identification via The Movie Database
//   - Reconcile: file-to-track assignment algorithm and tolerance
//   - ResultCache: optional fingerprint-to-release cache
//   - Logging: log format and level
type Config struct {
	AcoustID    AcoustID    `toml:"acoustid"`
	MusicBrainz MusicBrainz `toml:"musicbrainz"`
	CoverArt    CoverArt    `toml:"coverart"`
	TMDB        TMDB        `toml:"tmdb"`
	Reconcile   Reconcile   `toml:"reconcile"`
	ResultCache ResultCache `toml:"result_cache"`
	Logging     Logging     `toml:"logging"`
}

// SampleConfig returns the annotated sample configuration file.
func SampleConfig() string {
	return sampleConfig
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/discern/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("discern.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return filepath.Abs(trimmed)
}
