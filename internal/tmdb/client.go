package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"discern/internal/config"
	"discern/internal/identity"
	"discern/internal/logging"
)

// maxCastNames bounds how many cast members a detail carries.
const maxCastNames = 10

// Client talks to The Movie Database API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	language   string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// New builds a client from the tmdb configuration section.
func New(cfg config.TMDB, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		language:   cfg.Language,
		// Polite self-imposed ceiling; TMDB's own limit is far higher.
		limiter: rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
		logger:  logging.NewComponentLogger(logger, "tmdb"),
	}
}

// Available reports whether the client has credentials to issue requests.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// SearchResult is one hit from the movie search endpoint.
type SearchResult struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// SearchMovie searches by title, optionally constrained to a release year.
func (c *Client) SearchMovie(ctx context.Context, query, year string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	if year != "" {
		params.Set("year", year)
	}

	body, err := c.get(ctx, "/search/movie", params)
	if err != nil {
		return nil, err
	}
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, identity.Wrap(identity.ErrParse, "tmdb", "search", "decode results", err)
	}
	c.logger.Debug("movie search complete",
		logging.String("query", query),
		logging.Int("results", len(resp.Results)))
	return resp.Results, nil
}

type movieResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	ReleaseDate   string  `json:"release_date"`
	Overview      string  `json:"overview"`
	Runtime       int     `json:"runtime"`
	VoteAverage   float64 `json:"vote_average"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	Genres        []struct {
		Name string `json:"name"`
	} `json:"genres"`
	BelongsToCollection *struct {
		Name string `json:"name"`
	} `json:"belongs_to_collection"`
}

type creditsResponse struct {
	Cast []struct {
		Name string `json:"name"`
	} `json:"cast"`
	Crew []struct {
		Name string `json:"name"`
		Job  string `json:"job"`
	} `json:"crew"`
}

// MovieDetail fetches the full record for one movie, including credits.
// A credits failure degrades to a detail without director or cast.
func (c *Client) MovieDetail(ctx context.Context, movieID int64) (*identity.MovieDetail, error) {
	body, err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), nil)
	if err != nil {
		return nil, err
	}
	var movie movieResponse
	if err := json.Unmarshal(body, &movie); err != nil {
		return nil, identity.Wrap(identity.ErrParse, "tmdb", "detail", "decode movie", err)
	}

	detail := &identity.MovieDetail{
		TMDBID:         movie.ID,
		Title:          movie.Title,
		OriginalTitle:  movie.OriginalTitle,
		Overview:       movie.Overview,
		RuntimeMinutes: movie.Runtime,
		Rating:         movie.VoteAverage,
		PosterPath:     movie.PosterPath,
		BackdropPath:   movie.BackdropPath,
	}
	if len(movie.ReleaseDate) >= 4 {
		detail.Year = movie.ReleaseDate[:4]
	}
	for _, g := range movie.Genres {
		detail.Genres = append(detail.Genres, g.Name)
	}
	if movie.BelongsToCollection != nil {
		detail.CollectionName = movie.BelongsToCollection.Name
	}

	if director, cast, err := c.movieCredits(ctx, movieID); err == nil {
		detail.Director = director
		detail.Cast = cast
	} else {
		c.logger.Warn("credits unavailable",
			logging.Int64("movie_id", movieID),
			logging.Error(err))
	}
	return detail, nil
}

func (c *Client) movieCredits(ctx context.Context, movieID int64) (string, []string, error) {
	body, err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", movieID), nil)
	if err != nil {
		return "", nil, err
	}
	var credits creditsResponse
	if err := json.Unmarshal(body, &credits); err != nil {
		return "", nil, identity.Wrap(identity.ErrParse, "tmdb", "credits", "decode credits", err)
	}

	director := ""
	for _, member := range credits.Crew {
		if member.Job == "Director" {
			director = member.Name
			break
		}
	}
	var cast []string
	for _, member := range credits.Cast {
		cast = append(cast, member.Name)
		if len(cast) == maxCastNames {
			break
		}
	}
	return director, cast, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if !c.Available() {
		return nil, identity.Wrap(identity.ErrUnavailable, "tmdb", "get",
			"no API key configured", nil)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, identity.Wrap(identity.ErrTransient, "tmdb", "get", "rate limiter", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, identity.Wrap(identity.ErrPermanent, "tmdb", "get", "build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, identity.Wrap(identity.ErrTransient, "tmdb", "get", "connection failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, identity.Wrap(identity.ErrPermanent, "tmdb", "get",
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}
	return io.ReadAll(resp.Body)
}
