package config

const (
	defaultAcoustIDBaseURL   = "https://api.acoustid.org/v2/lookup"
	defaultAcoustIDMinScore  = 0.6
	defaultMusicBrainzURL    = "https://musicbrainz.org/ws/2"
	defaultUserAgent         = "discern/1.0 ( https://github.com/discern/discern )"
	defaultRateLimitSeconds  = 1.1
	defaultMaxRetries        = 3
	defaultCatalogTimeout    = 15
	defaultSearchLimit       = 25
	defaultDurationTolerance = 15.0
	defaultCoverArtURL       = "https://coverartarchive.org"
	defaultCoverArtRetries   = 2
	defaultCoverArtTimeout   = 30
	defaultTMDBBaseURL       = "https://api.themoviedb.org/3"
	defaultTMDBLanguage      = "en-US"
	defaultTMDBTimeout       = 10
	defaultMatchTolerance    = 10.0
	defaultAlgorithm         = "greedy"
	defaultResultCachePath   = "~/.cache/discern/results.db"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		AcoustID: AcoustID{
			BaseURL:  defaultAcoustIDBaseURL,
			MinScore: defaultAcoustIDMinScore,
		},
		MusicBrainz: MusicBrainz{
			BaseURL:                  defaultMusicBrainzURL,
			UserAgent:                defaultUserAgent,
			RateLimitSeconds:         defaultRateLimitSeconds,
			MaxRetries:               defaultMaxRetries,
			TimeoutSeconds:           defaultCatalogTimeout,
			SearchLimit:              defaultSearchLimit,
			DurationToleranceSeconds: defaultDurationTolerance,
		},
		CoverArt: CoverArt{
			BaseURL:        defaultCoverArtURL,
			MaxRetries:     defaultCoverArtRetries,
			TimeoutSeconds: defaultCoverArtTimeout,
		},
		TMDB: TMDB{
			BaseURL:        defaultTMDBBaseURL,
			Language:       defaultTMDBLanguage,
			TimeoutSeconds: defaultTMDBTimeout,
		},
		Reconcile: Reconcile{
			Algorithm:             defaultAlgorithm,
			MatchToleranceSeconds: defaultMatchTolerance,
		},
		ResultCache: ResultCache{
			Enabled: false,
			Path:    defaultResultCachePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
