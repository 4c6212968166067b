package identify

import (
	"context"

	"discern/internal/identity"
	"discern/internal/logging"
	"discern/internal/titleclean"
)

// resolveRelease fetches full release detail, decorates it with cover art,
// stamps the source, and runs the duration gate. Cover art failures never
// invalidate the release.
func (e *Engine) resolveRelease(ctx context.Context, sess *session, releaseID string, source identity.Source) (*identity.ReleaseCandidate, error) {
	if e.catalog == nil {
		return nil, identity.Wrap(identity.ErrUnavailable, "identify", "resolve",
			"no catalog configured", nil)
	}
	candidate, err := e.catalog.ReleaseByID(ctx, releaseID)
	if err != nil {
		return nil, err
	}
	candidate.Source = source

	if e.art != nil {
		if url, err := e.art.FrontImageURL(ctx, releaseID); err == nil {
			candidate.CoverArtURL = url
		} else {
			e.logger.Debug("cover art unavailable",
				logging.String("release_id", releaseID),
				logging.Error(err))
		}
	}

	return e.validator.Validate(candidate, sess.req.MeasuredTrackDurations)
}

// fingerprintStrategy resolves a request through a direct fingerprint hit:
// the AcoustID match already names a release.
type fingerprintStrategy struct {
	engine *Engine
}

func (s *fingerprintStrategy) Name() string { return "fingerprint" }

func (s *fingerprintStrategy) Resolve(ctx context.Context, sess *session) (*identity.ReleaseCandidate, error) {
	match, err := sess.acoustMatch(ctx)
	if err != nil {
		return nil, err
	}
	if match.ReleaseID == "" {
		return nil, identity.Wrap(identity.ErrLowConfidence, "identify", "fingerprint",
			"match carries no direct release", nil)
	}
	return s.engine.resolveRelease(ctx, sess, match.ReleaseID, identity.SourceFingerprint)
}

// recordingStrategy takes a fingerprint match with only a recording ID and
// scores the releases that recording appears on.
type recordingStrategy struct {
	engine *Engine
}

func (s *recordingStrategy) Name() string { return "recording-lookup" }

func (s *recordingStrategy) Resolve(ctx context.Context, sess *session) (*identity.ReleaseCandidate, error) {
	match, err := sess.acoustMatch(ctx)
	if err != nil {
		return nil, err
	}
	if match.RecordingID == "" {
		return nil, identity.Wrap(identity.ErrLowConfidence, "identify", "recording",
			"match carries no recording", nil)
	}
	if s.engine.catalog == nil {
		return nil, identity.Wrap(identity.ErrUnavailable, "identify", "recording",
			"no catalog configured", nil)
	}

	releases, err := s.engine.catalog.RecordingReleases(ctx, match.RecordingID)
	if err != nil {
		return nil, err
	}
	pick := pickRecordingRelease(releases, sess.req.TargetTrackCount)
	if pick == nil {
		return nil, identity.Wrap(identity.ErrLowConfidence, "identify", "recording",
			"recording is on no releases", nil)
	}
	return s.engine.resolveRelease(ctx, sess, pick.ID, identity.SourceRecordingLookup)
}

// nameSearchStrategy is the last resort: a cleaned-title phrase search
// against the catalog, guarded against generic titles.
type nameSearchStrategy struct {
	engine *Engine
}

func (s *nameSearchStrategy) Name() string { return "name-search" }

func (s *nameSearchStrategy) Resolve(ctx context.Context, sess *session) (*identity.ReleaseCandidate, error) {
	cleaned := titleclean.Clean(sess.req.TitleHint)
	if titleclean.Generic(cleaned) {
		return nil, identity.Wrap(identity.ErrLowConfidence, "identify", "search",
			"title too generic to search: "+cleaned, nil)
	}
	if s.engine.catalog == nil {
		return nil, identity.Wrap(identity.ErrUnavailable, "identify", "search",
			"no catalog configured", nil)
	}

	releases, err := s.engine.catalog.SearchReleases(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	pick := pickSearchRelease(releases, cleaned, sess.req.TargetTrackCount)
	if pick == nil {
		return nil, identity.Wrap(identity.ErrLowConfidence, "identify", "search",
			"no search results for "+cleaned, nil)
	}
	return s.engine.resolveRelease(ctx, sess, pick.ID, identity.SourceNameSearch)
}
