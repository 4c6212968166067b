package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize default config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.MusicBrainz.RateLimitSeconds != 1.1 {
		t.Fatalf("unexpected default rate limit: %v", cfg.MusicBrainz.RateLimitSeconds)
	}
	if cfg.MusicBrainz.MaxRetries != 3 {
		t.Fatalf("unexpected default retries: %d", cfg.MusicBrainz.MaxRetries)
	}
	if cfg.CoverArt.MaxRetries != 2 {
		t.Fatalf("unexpected cover art retries: %d", cfg.CoverArt.MaxRetries)
	}
}

func TestLoadAppliesFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[musicbrainz]
rate_limit_seconds = 2.0
search_limit = 10

[reconcile]
algorithm = "optimal"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatal("expected config file to be found")
	}
	if cfg.MusicBrainz.RateLimitSeconds != 2.0 {
		t.Fatalf("override not applied: %v", cfg.MusicBrainz.RateLimitSeconds)
	}
	if cfg.MusicBrainz.SearchLimit != 10 {
		t.Fatalf("override not applied: %v", cfg.MusicBrainz.SearchLimit)
	}
	if cfg.Reconcile.Algorithm != "optimal" {
		t.Fatalf("override not applied: %v", cfg.Reconcile.Algorithm)
	}
	// Untouched sections keep defaults.
	if cfg.TMDB.BaseURL != defaultTMDBBaseURL {
		t.Fatalf("defaults lost: %v", cfg.TMDB.BaseURL)
	}
}

func TestLoadRejectsSubSecondRateLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[musicbrainz]\nrate_limit_seconds = 0.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error for sub-second rate limit")
	}
}

func TestLoadRejectsUnknownAlgorithm(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[reconcile]\nalgorithm = \"hungarian-ish\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown algorithm")
	}
}

func TestEnvironmentKeysApply(t *testing.T) {
	t.Setenv("ACOUSTID_API_KEY", "acoust-key")
	t.Setenv("TMDB_API_KEY", "tmdb-key")

	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.AcoustID.APIKey != "acoust-key" {
		t.Fatalf("acoustid key not picked up: %q", cfg.AcoustID.APIKey)
	}
	if cfg.TMDB.APIKey != "tmdb-key" {
		t.Fatalf("tmdb key not picked up: %q", cfg.TMDB.APIKey)
	}
}

func TestSampleConfigParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(SampleConfig()), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample config must load: %v", err)
	}
}
