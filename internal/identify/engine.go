package identify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"discern/internal/acoustid"
	"discern/internal/config"
	"discern/internal/coverart"
	"discern/internal/identifycache"
	"discern/internal/identity"
	"discern/internal/logging"
	"discern/internal/musicbrainz"
	"discern/internal/reconcile"
	"discern/internal/tmdb"
)

// Fingerprinter converts an audio file into fingerprint data.
type Fingerprinter interface {
	Available() bool
	Fingerprint(ctx context.Context, path string) (*identity.FingerprintData, error)
}

// FingerprintLookup maps a fingerprint to a catalog recording.
type FingerprintLookup interface {
	Available() bool
	Lookup(ctx context.Context, fp identity.FingerprintData) (*identity.AcoustIDMatch, error)
}

// Catalog is the release catalog surface the strategies need.
type Catalog interface {
	ReleaseByID(ctx context.Context, releaseID string) (*identity.ReleaseCandidate, error)
	SearchReleases(ctx context.Context, title string) ([]musicbrainz.Release, error)
	RecordingReleases(ctx context.Context, recordingID string) ([]musicbrainz.Release, error)
}

// ArtFetcher finds cover art for a resolved release.
type ArtFetcher interface {
	FrontImageURL(ctx context.Context, releaseID string) (string, error)
}

// MovieCatalog is the video identification surface.
type MovieCatalog interface {
	Available() bool
	SearchMovie(ctx context.Context, query, year string) ([]tmdb.SearchResult, error)
	MovieDetail(ctx context.Context, movieID int64) (*identity.MovieDetail, error)
	PickByRuntime(ctx context.Context, results []tmdb.SearchResult, estimatedMinutes float64) int64
}

// Strategy is one way of resolving a request to a release candidate.
// Strategies are tried in order; any error means "try the next one".
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, sess *session) (*identity.ReleaseCandidate, error)
}

// Result is the outcome of one identification attempt. Matched false with a
// nil error is the documented no-match outcome, not a failure.
type Result struct {
	AttemptID string
	Matched   bool
	Strategy  string
	FromCache bool

	// Release is set for matched audio requests.
	Release *identity.ReleaseCandidate
	// Movie is set for matched video requests.
	Movie *identity.MovieDetail
}

// Options wires an Engine. Catalog is required for audio identification;
// everything else degrades gracefully when absent.
type Options struct {
	Fingerprinter Fingerprinter
	Fingerprints  FingerprintLookup
	Catalog       Catalog
	CoverArt      ArtFetcher
	Movies        MovieCatalog
	Cache         *identifycache.Store
	Validator     *reconcile.Validator
	Logger        *slog.Logger
}

// Engine runs the identification pipeline.
type Engine struct {
	fingerprinter Fingerprinter
	fingerprints  FingerprintLookup
	catalog       Catalog
	art           ArtFetcher
	movies        MovieCatalog
	cache         *identifycache.Store
	validator     *reconcile.Validator
	strategies    []Strategy
	logger        *slog.Logger
}

// New builds an engine from pre-constructed collaborators.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	validator := opts.Validator
	if validator == nil {
		validator = reconcile.NewValidator(0, logger)
	}
	cache := opts.Cache
	if cache == nil {
		cache, _ = identifycache.Open("", logger)
	}
	e := &Engine{
		fingerprinter: opts.Fingerprinter,
		fingerprints:  opts.Fingerprints,
		catalog:       opts.Catalog,
		art:           opts.CoverArt,
		movies:        opts.Movies,
		cache:         cache,
		validator:     validator,
		logger:        logging.NewComponentLogger(logger, "identify"),
	}
	e.strategies = []Strategy{
		&fingerprintStrategy{engine: e},
		&recordingStrategy{engine: e},
		&nameSearchStrategy{engine: e},
	}
	return e
}

// FromConfig builds an engine with live service clients.
func FromConfig(cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	cachePath := ""
	if cfg.ResultCache.Enabled {
		cachePath = cfg.ResultCache.Path
	}
	cache, err := identifycache.Open(cachePath, logger)
	if err != nil {
		return nil, err
	}
	return New(Options{
		Fingerprinter: acoustid.NewFingerprinter(logger),
		Fingerprints:  acoustid.New(cfg.AcoustID, logger),
		Catalog:       musicbrainz.New(cfg.MusicBrainz, logger),
		CoverArt:      coverart.New(cfg.CoverArt, cfg.MusicBrainz.UserAgent, logger),
		Movies:        tmdb.New(cfg.TMDB, logger),
		Cache:         cache,
		Validator:     reconcile.NewValidator(cfg.MusicBrainz.DurationToleranceSeconds, logger),
		Logger:        logger,
	}), nil
}

// Close releases engine-owned resources.
func (e *Engine) Close() error {
	return e.cache.Close()
}

// Identify resolves one request. The returned error is reserved for caller
// misuse; every service failure is absorbed into a no-match result.
func (e *Engine) Identify(ctx context.Context, req identity.Request) (*Result, error) {
	result := &Result{AttemptID: uuid.NewString()}
	logger := e.logger.With(logging.String("attempt_id", result.AttemptID))

	if req.MediaKind == identity.MediaVideo {
		movie, err := e.identifyVideo(ctx, req)
		if err != nil {
			logger.Warn("video identification failed",
				logging.String("title_hint", req.TitleHint),
				logging.Error(err))
			return result, nil
		}
		result.Movie = movie
		result.Matched = true
		result.Strategy = "movie-search"
		return result, nil
	}

	sess := &session{engine: e, req: req}

	if hit := e.cachedCandidate(ctx, sess); hit != nil {
		result.Release = hit
		result.Matched = true
		result.Strategy = string(hit.Source)
		result.FromCache = true
		return result, nil
	}

	for _, strategy := range e.strategies {
		candidate, err := strategy.Resolve(ctx, sess)
		if err != nil {
			logger.Debug("strategy did not resolve",
				logging.String(logging.FieldStrategy, strategy.Name()),
				logging.Error(err))
			continue
		}
		logger.Info("identification resolved",
			logging.String(logging.FieldStrategy, strategy.Name()),
			logging.String("release_id", candidate.ID),
			logging.String("title", candidate.Title))
		result.Release = candidate
		result.Matched = true
		result.Strategy = strategy.Name()
		e.storeCandidate(ctx, sess, candidate)
		return result, nil
	}

	logger.Info("no identification", logging.String("title_hint", req.TitleHint))
	return result, nil
}

func (e *Engine) cachedCandidate(ctx context.Context, sess *session) *identity.ReleaseCandidate {
	if !e.cache.Enabled() {
		return nil
	}
	fp, err := sess.fingerprint(ctx)
	if err != nil {
		return nil
	}
	candidate, found, err := e.cache.Lookup(ctx, identifycache.Digest(*fp))
	if err != nil {
		e.logger.Warn("cache lookup failed", logging.Error(err))
		return nil
	}
	if !found {
		return nil
	}
	return candidate
}

func (e *Engine) storeCandidate(ctx context.Context, sess *session, candidate *identity.ReleaseCandidate) {
	if !e.cache.Enabled() || sess.fp == nil {
		return
	}
	if err := e.cache.Store(ctx, identifycache.Digest(*sess.fp), candidate); err != nil {
		e.logger.Warn("cache store failed", logging.Error(err))
	}
}

// session carries the per-request state the audio strategies share: the
// fingerprint and the AcoustID match are computed at most once no matter
// how many strategies consult them.
type session struct {
	engine *Engine
	req    identity.Request

	fpDone bool
	fp     *identity.FingerprintData
	fpErr  error

	matchDone bool
	match     *identity.AcoustIDMatch
	matchErr  error
}

func (s *session) fingerprint(ctx context.Context) (*identity.FingerprintData, error) {
	if s.fpDone {
		return s.fp, s.fpErr
	}
	s.fpDone = true
	switch {
	case s.req.SampleFilePath == "":
		s.fpErr = identity.Wrap(identity.ErrUnavailable, "identify", "fingerprint",
			"no sample file to fingerprint", nil)
	case s.engine.fingerprinter == nil || !s.engine.fingerprinter.Available():
		s.fpErr = identity.Wrap(identity.ErrUnavailable, "identify", "fingerprint",
			"fingerprinting tool unavailable", nil)
	default:
		s.fp, s.fpErr = s.engine.fingerprinter.Fingerprint(ctx, s.req.SampleFilePath)
	}
	return s.fp, s.fpErr
}

func (s *session) acoustMatch(ctx context.Context) (*identity.AcoustIDMatch, error) {
	if s.matchDone {
		return s.match, s.matchErr
	}
	s.matchDone = true
	if s.engine.fingerprints == nil || !s.engine.fingerprints.Available() {
		s.matchErr = identity.Wrap(identity.ErrUnavailable, "identify", "lookup",
			"fingerprint lookup unavailable", nil)
		return nil, s.matchErr
	}
	fp, err := s.fingerprint(ctx)
	if err != nil {
		s.matchErr = err
		return nil, err
	}
	s.match, s.matchErr = s.engine.fingerprints.Lookup(ctx, *fp)
	return s.match, s.matchErr
}
