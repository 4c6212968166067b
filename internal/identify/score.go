package identify

import (
	"strings"

	"discern/internal/musicbrainz"
)

// Release scoring weights for recording-to-release resolution.
const (
	trackCountMatchBonus      = 10
	trackCountMismatchPenalty = -20
	albumTypeBonus            = 2
	weakTypePenalty           = -5
)

// pickRecordingRelease scores the releases a recording appears on and
// returns the best. Releases with no media are skipped during scoring; if
// every release is skipped, the raw first release wins regardless of score.
// Ties keep the first candidate in input order.
func pickRecordingRelease(releases []musicbrainz.Release, targetTrackCount int) *musicbrainz.Release {
	if len(releases) == 0 {
		return nil
	}

	var best *musicbrainz.Release
	bestScore := 0
	for i := range releases {
		release := &releases[i]
		if len(release.Media) == 0 {
			continue
		}
		score := scoreRecordingRelease(release, targetTrackCount)
		if best == nil || score > bestScore {
			best = release
			bestScore = score
		}
	}
	if best == nil {
		return &releases[0]
	}
	return best
}

func scoreRecordingRelease(release *musicbrainz.Release, targetTrackCount int) int {
	score := 0
	if targetTrackCount > 0 {
		if release.TotalTracks() == targetTrackCount {
			score += trackCountMatchBonus
		} else {
			score += trackCountMismatchPenalty
		}
	}
	if group := release.ReleaseGroup; group != nil {
		switch group.PrimaryType {
		case "Album":
			score += albumTypeBonus
		case "Compilation", "Single":
			score += weakTypePenalty
		}
		for _, secondary := range group.SecondaryTypes {
			if secondary == "Compilation" {
				score += weakTypePenalty
				break
			}
		}
	}
	return score
}

// pickSearchRelease scores name-search hits. With a target track count,
// mismatching hits are excluded outright rather than penalized; an exact
// case-insensitive title match earns a point. Ties keep input order. When
// exclusion empties the field, the raw first hit comes back as a last
// resort and the duration gate downstream has the final say.
func pickSearchRelease(releases []musicbrainz.Release, cleanedTitle string, targetTrackCount int) *musicbrainz.Release {
	if len(releases) == 0 {
		return nil
	}

	var best *musicbrainz.Release
	bestScore := 0
	for i := range releases {
		release := &releases[i]
		score := 0
		if targetTrackCount > 0 {
			if release.TotalTracks() != targetTrackCount {
				continue
			}
			score++
		}
		if strings.EqualFold(release.Title, cleanedTitle) {
			score++
		}
		if best == nil || score > bestScore {
			best = release
			bestScore = score
		}
	}
	if best == nil {
		return &releases[0]
	}
	return best
}
