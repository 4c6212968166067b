package identify

import (
	"context"

	"discern/internal/identity"
	"discern/internal/logging"
	"discern/internal/titleclean"
)

// identifyVideo searches the movie catalog by cleaned title, retrying with
// the aggressive cleaner when the first query finds nothing, then narrows
// multiple hits with the measured runtime.
func (e *Engine) identifyVideo(ctx context.Context, req identity.Request) (*identity.MovieDetail, error) {
	if e.movies == nil || !e.movies.Available() {
		return nil, identity.Wrap(identity.ErrUnavailable, "identify", "video",
			"movie catalog unavailable", nil)
	}

	cleaned := titleclean.Clean(req.TitleHint)
	if cleaned == "" {
		return nil, identity.Wrap(identity.ErrLowConfidence, "identify", "video",
			"no usable title", nil)
	}

	results, err := e.movies.SearchMovie(ctx, cleaned, "")
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		aggressive := titleclean.AggressiveClean(req.TitleHint)
		if aggressive != cleaned {
			e.logger.Debug("retrying movie search with aggressive cleaning",
				logging.String("query", aggressive))
			results, err = e.movies.SearchMovie(ctx, aggressive, "")
			if err != nil {
				return nil, err
			}
		}
	}
	if len(results) == 0 {
		return nil, identity.Wrap(identity.ErrLowConfidence, "identify", "video",
			"no movie results for "+cleaned, nil)
	}

	movieID := e.movies.PickByRuntime(ctx, results, req.EstimatedRuntimeMinutes)
	return e.movies.MovieDetail(ctx, movieID)
}
