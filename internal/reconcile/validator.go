package reconcile

import (
	"log/slog"
	"math"

	"discern/internal/identity"
	"discern/internal/logging"
)

// DefaultDurationToleranceSeconds is the maximum acceptable average
// per-track difference between measured and canonical durations.
const DefaultDurationToleranceSeconds = 15.0

// Validator statistically compares a candidate's canonical per-track
// durations against the measured disc durations.
type Validator struct {
	ToleranceSeconds float64
	logger           *slog.Logger
}

// NewValidator creates a duration validator. A non-positive tolerance falls
// back to DefaultDurationToleranceSeconds.
func NewValidator(toleranceSeconds float64, logger *slog.Logger) *Validator {
	if toleranceSeconds <= 0 {
		toleranceSeconds = DefaultDurationToleranceSeconds
	}
	return &Validator{
		ToleranceSeconds: toleranceSeconds,
		logger:           logging.NewComponentLogger(logger, "duration-validator"),
	}
}

// Validate accepts or rejects a candidate by duration evidence.
//
// When either side lacks duration data the candidate passes through
// unchanged: validation cannot run, so the match is assumed acceptable.
// Once both sides are present a track-count mismatch always rejects. The
// duration gate averages |measured - canonical| across all tracks and
// rejects only when the average exceeds the tolerance; the boundary itself
// accepts.
func (v *Validator) Validate(candidate *identity.ReleaseCandidate, measuredSeconds []float64) (*identity.ReleaseCandidate, error) {
	if candidate == nil {
		return nil, identity.Wrap(identity.ErrLowConfidence, "duration-validator", "validate", "no candidate", nil)
	}
	if len(measuredSeconds) == 0 || len(candidate.Tracks) == 0 {
		return candidate, nil
	}

	canonicalMS := make([]int, 0, len(candidate.Tracks))
	for _, track := range candidate.Tracks {
		if track.DurationMS > 0 {
			canonicalMS = append(canonicalMS, track.DurationMS)
		}
	}
	if len(canonicalMS) == 0 {
		return candidate, nil
	}
	if len(canonicalMS) != len(measuredSeconds) {
		v.logger.Warn("track count mismatch",
			logging.String("release", candidate.Title),
			logging.Int("disc_tracks", len(measuredSeconds)),
			logging.Int("release_tracks", len(canonicalMS)))
		return nil, identity.Wrap(identity.ErrLowConfidence, "duration-validator", "validate", "track count mismatch", nil)
	}

	var totalDiffMS float64
	for i, seconds := range measuredSeconds {
		totalDiffMS += math.Abs(seconds*1000 - float64(canonicalMS[i]))
	}
	avgDiffSeconds := totalDiffMS / float64(len(canonicalMS)) / 1000.0

	v.logger.Info("release duration check",
		logging.String("release", candidate.Title),
		logging.Float64("avg_diff_seconds", avgDiffSeconds),
		logging.Float64("tolerance_seconds", v.ToleranceSeconds))

	if avgDiffSeconds > v.ToleranceSeconds {
		return nil, identity.Wrap(identity.ErrLowConfidence, "duration-validator", "validate", "duration divergence beyond tolerance", nil)
	}
	return candidate, nil
}
