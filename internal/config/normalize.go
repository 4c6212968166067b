package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeAcoustID()
	c.normalizeMusicBrainz()
	c.normalizeCoverArt()
	c.normalizeTMDB()
	c.normalizeReconcile()
	if err := c.normalizeResultCache(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeAcoustID() {
	c.AcoustID.APIKey = strings.TrimSpace(c.AcoustID.APIKey)
	if c.AcoustID.APIKey == "" {
		if value, ok := os.LookupEnv("ACOUSTID_API_KEY"); ok {
			c.AcoustID.APIKey = strings.TrimSpace(value)
		}
	}
	c.AcoustID.BaseURL = strings.TrimSpace(c.AcoustID.BaseURL)
	if c.AcoustID.BaseURL == "" {
		c.AcoustID.BaseURL = defaultAcoustIDBaseURL
	}
	if c.AcoustID.MinScore <= 0 {
		c.AcoustID.MinScore = defaultAcoustIDMinScore
	}
}

func (c *Config) normalizeMusicBrainz() {
	c.MusicBrainz.BaseURL = strings.TrimRight(strings.TrimSpace(c.MusicBrainz.BaseURL), "/")
	if c.MusicBrainz.BaseURL == "" {
		c.MusicBrainz.BaseURL = defaultMusicBrainzURL
	}
	c.MusicBrainz.UserAgent = strings.TrimSpace(c.MusicBrainz.UserAgent)
	if c.MusicBrainz.UserAgent == "" {
		c.MusicBrainz.UserAgent = defaultUserAgent
	}
	if c.MusicBrainz.RateLimitSeconds <= 0 {
		c.MusicBrainz.RateLimitSeconds = defaultRateLimitSeconds
	}
	if c.MusicBrainz.MaxRetries <= 0 {
		c.MusicBrainz.MaxRetries = defaultMaxRetries
	}
	if c.MusicBrainz.TimeoutSeconds <= 0 {
		c.MusicBrainz.TimeoutSeconds = defaultCatalogTimeout
	}
	if c.MusicBrainz.SearchLimit <= 0 {
		c.MusicBrainz.SearchLimit = defaultSearchLimit
	}
	if c.MusicBrainz.DurationToleranceSeconds <= 0 {
		c.MusicBrainz.DurationToleranceSeconds = defaultDurationTolerance
	}
}

func (c *Config) normalizeCoverArt() {
	c.CoverArt.BaseURL = strings.TrimRight(strings.TrimSpace(c.CoverArt.BaseURL), "/")
	if c.CoverArt.BaseURL == "" {
		c.CoverArt.BaseURL = defaultCoverArtURL
	}
	if c.CoverArt.MaxRetries <= 0 {
		c.CoverArt.MaxRetries = defaultCoverArtRetries
	}
	if c.CoverArt.TimeoutSeconds <= 0 {
		c.CoverArt.TimeoutSeconds = defaultCoverArtTimeout
	}
}

func (c *Config) normalizeTMDB() {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
	if c.TMDB.TimeoutSeconds <= 0 {
		c.TMDB.TimeoutSeconds = defaultTMDBTimeout
	}
}

func (c *Config) normalizeReconcile() {
	c.Reconcile.Algorithm = strings.ToLower(strings.TrimSpace(c.Reconcile.Algorithm))
	if c.Reconcile.Algorithm == "" {
		c.Reconcile.Algorithm = defaultAlgorithm
	}
	if c.Reconcile.MatchToleranceSeconds <= 0 {
		c.Reconcile.MatchToleranceSeconds = defaultMatchTolerance
	}
}

func (c *Config) normalizeResultCache() error {
	var err error
	if strings.TrimSpace(c.ResultCache.Path) == "" {
		c.ResultCache.Path = defaultResultCachePath
	}
	if c.ResultCache.Path, err = expandPath(c.ResultCache.Path); err != nil {
		return fmt.Errorf("result_cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
