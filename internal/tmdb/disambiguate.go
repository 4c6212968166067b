package tmdb

import (
	"context"
	"math"

	"discern/internal/logging"
)

// maxRuntimeCandidates caps how many search hits get a detail fetch when
// disambiguating by runtime.
const maxRuntimeCandidates = 5

// PickByRuntime chooses among search hits using a measured runtime hint.
// Without a hint, or with a single hit, the first result wins. Otherwise
// the top candidates are fetched and the one whose catalog runtime sits
// closest to the estimate is chosen. A detail fetch failing for one
// candidate only removes that candidate from the comparison.
func (c *Client) PickByRuntime(ctx context.Context, results []SearchResult, estimatedMinutes float64) int64 {
	if len(results) == 0 {
		return 0
	}
	if estimatedMinutes <= 0 || len(results) == 1 {
		return results[0].ID
	}

	candidates := results
	if len(candidates) > maxRuntimeCandidates {
		candidates = candidates[:maxRuntimeCandidates]
	}

	bestID := int64(0)
	bestDiff := math.Inf(1)
	for _, result := range candidates {
		detail, err := c.MovieDetail(ctx, result.ID)
		if err != nil {
			c.logger.Warn("candidate detail unavailable, skipping",
				logging.Int64("movie_id", result.ID),
				logging.Error(err))
			continue
		}
		if detail.RuntimeMinutes <= 0 {
			continue
		}
		diff := math.Abs(float64(detail.RuntimeMinutes) - estimatedMinutes)
		if diff < bestDiff {
			bestDiff = diff
			bestID = result.ID
		}
	}
	if bestID == 0 {
		// Every candidate failed or lacked a runtime.
		return results[0].ID
	}
	c.logger.Debug("runtime disambiguation",
		logging.Int64("movie_id", bestID),
		logging.Float64("runtime_diff_minutes", bestDiff))
	return bestID
}
