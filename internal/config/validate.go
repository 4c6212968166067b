package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. API keys are deliberately
// not required: strategies without credentials are skipped at runtime.
func (c *Config) Validate() error {
	if err := c.validateAcoustID(); err != nil {
		return err
	}
	if err := c.validateMusicBrainz(); err != nil {
		return err
	}
	if err := c.validateReconcile(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAcoustID() error {
	if c.AcoustID.MinScore < 0 || c.AcoustID.MinScore > 1 {
		return errors.New("acoustid.min_score must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateMusicBrainz() error {
	if c.MusicBrainz.RateLimitSeconds < 1.0 {
		// MusicBrainz enforces one request per second per client; going
		// under it risks throttling for every caller on this key/IP.
		return errors.New("musicbrainz.rate_limit_seconds must be at least 1.0")
	}
	if c.MusicBrainz.SearchLimit > 100 {
		return errors.New("musicbrainz.search_limit must be at most 100")
	}
	return nil
}

func (c *Config) validateReconcile() error {
	switch c.Reconcile.Algorithm {
	case "greedy", "optimal":
		return nil
	default:
		return fmt.Errorf("reconcile.algorithm: unsupported value %q (want greedy or optimal)", c.Reconcile.Algorithm)
	}
}
