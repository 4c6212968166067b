package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"discern/internal/config"
	"discern/internal/identity"
	"discern/internal/logging"
	"discern/internal/ratelimit"
)

// Client talks to the MusicBrainz web service.
type Client struct {
	http        *ratelimit.Client
	baseURL     string
	searchLimit int
	logger      *slog.Logger
}

// New builds a client from the musicbrainz configuration section.
func New(cfg config.MusicBrainz, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		http: ratelimit.NewClient(ratelimit.Options{
			Interval:   time.Duration(cfg.RateLimitSeconds * float64(time.Second)),
			UserAgent:  cfg.UserAgent,
			MaxRetries: cfg.MaxRetries,
			Timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
			Component:  "musicbrainz",
			Logger:     logger,
		}),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		searchLimit: cfg.SearchLimit,
		logger:      logging.NewComponentLogger(logger, "musicbrainz"),
	}
}

// Transport exposes the underlying rate-limited client. Test use.
func (c *Client) Transport() *ratelimit.Client {
	return c.http
}

// ReleaseByID fetches one release with its full track listing and converts
// it to a candidate. The candidate's Source is left unset; the calling
// strategy stamps it.
func (c *Client) ReleaseByID(ctx context.Context, releaseID string) (*identity.ReleaseCandidate, error) {
	params := url.Values{}
	// Query encoding turns the spaces into the "+" separators the service expects.
	params.Set("inc", "recordings artist-credits labels release-groups")
	params.Set("fmt", "json")

	body, err := c.http.Get(ctx, c.baseURL+"/release/"+url.PathEscape(releaseID), params)
	if err != nil {
		return nil, err
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, identity.Wrap(identity.ErrParse, "musicbrainz", "release",
			"decode release "+releaseID, err)
	}

	candidate := CandidateFromRelease(&release)
	c.logger.Debug("release resolved",
		logging.String("release_id", candidate.ID),
		logging.String("title", candidate.Title),
		logging.Int("tracks", candidate.TrackCount))
	return candidate, nil
}

// SearchReleases runs a fielded release-title search. The title is quoted
// so multi-word titles match as a phrase.
func (c *Client) SearchReleases(ctx context.Context, title string) ([]Release, error) {
	limit := c.searchLimit
	if limit <= 0 {
		limit = 25
	}
	params := url.Values{}
	params.Set("query", fmt.Sprintf("release:%q", title))
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("fmt", "json")

	body, err := c.http.Get(ctx, c.baseURL+"/release", params)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, identity.Wrap(identity.ErrParse, "musicbrainz", "search",
			"decode search results", err)
	}
	c.logger.Debug("search complete",
		logging.String("title", title),
		logging.Int("results", len(resp.Releases)))
	return resp.Releases, nil
}

// RecordingReleases fetches the releases a recording appears on, with
// enough detail (media track counts, release group type) to score them.
func (c *Client) RecordingReleases(ctx context.Context, recordingID string) ([]Release, error) {
	params := url.Values{}
	params.Set("inc", "releases release-groups media")
	params.Set("fmt", "json")

	body, err := c.http.Get(ctx, c.baseURL+"/recording/"+url.PathEscape(recordingID), params)
	if err != nil {
		return nil, err
	}

	var resp recordingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, identity.Wrap(identity.ErrParse, "musicbrainz", "recording",
			"decode recording "+recordingID, err)
	}
	return resp.Releases, nil
}

// CandidateFromRelease flattens a release into the engine's candidate
// shape. Track titles and lengths fall back to the underlying recording
// when the track itself lacks them.
func CandidateFromRelease(release *Release) *identity.ReleaseCandidate {
	var tracks []identity.TrackDescriptor
	for _, medium := range release.Media {
		for _, track := range medium.Tracks {
			desc := identity.TrackDescriptor{
				Number:     track.Number,
				Title:      track.Title,
				DurationMS: track.Length,
			}
			if track.Recording != nil {
				if desc.Title == "" {
					desc.Title = track.Recording.Title
				}
				if desc.DurationMS == 0 {
					desc.DurationMS = track.Recording.Length
				}
			}
			tracks = append(tracks, desc)
		}
	}
	return &identity.ReleaseCandidate{
		ID:         release.ID,
		Title:      release.Title,
		Artist:     release.ArtistName(),
		Year:       release.Year(),
		Label:      release.LabelName(),
		TrackCount: len(tracks),
		Tracks:     tracks,
	}
}
