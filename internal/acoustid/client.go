package acoustid

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"discern/internal/config"
	"discern/internal/identity"
	"discern/internal/logging"
)

// Client submits fingerprints to the AcoustID lookup service.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	minScore   float64
	logger     *slog.Logger
}

// New builds a client from the acoustid configuration section.
func New(cfg config.AcoustID, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		minScore:   cfg.MinScore,
		logger:     logging.NewComponentLogger(logger, "acoustid"),
	}
}

// Available reports whether the client has credentials to issue lookups.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

type lookupResponse struct {
	Status  string         `json:"status"`
	Results []lookupResult `json:"results"`
}

type lookupResult struct {
	ID         string      `json:"id"`
	Score      float64     `json:"score"`
	Recordings []recording `json:"recordings"`
}

type recording struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Artists       []artist       `json:"artists"`
	ReleaseGroups []releaseGroup `json:"releasegroups"`
}

type artist struct {
	Name string `json:"name"`
}

type releaseGroup struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Releases []struct {
		ID string `json:"id"`
	} `json:"releases"`
}

// Lookup submits the fingerprint and returns the best qualifying match.
// Results below the configured score floor are dropped; the remainder are
// walked in descending score order and the first recording with a usable ID
// wins, carrying the first release of its first release group that lists
// any releases. Returns ErrUnavailable without touching the network when no API
// key is configured, and ErrLowConfidence when nothing qualifies.
func (c *Client) Lookup(ctx context.Context, fp identity.FingerprintData) (*identity.AcoustIDMatch, error) {
	if !c.Available() {
		return nil, identity.Wrap(identity.ErrUnavailable, "acoustid", "lookup",
			"no API key configured", nil)
	}

	form := url.Values{}
	form.Set("client", c.apiKey)
	form.Set("duration", strconv.Itoa(fp.DurationSeconds))
	form.Set("fingerprint", fp.Fingerprint)
	form.Set("meta", "recordings releasegroups")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, identity.Wrap(identity.ErrPermanent, "acoustid", "lookup", "build request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, identity.Wrap(identity.ErrTransient, "acoustid", "lookup", "connection failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, identity.Wrap(identity.ErrPermanent, "acoustid", "lookup",
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, identity.Wrap(identity.ErrTransient, "acoustid", "lookup", "read body", err)
	}

	var payload lookupResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, identity.Wrap(identity.ErrParse, "acoustid", "lookup", "decode response", err)
	}
	if payload.Status != "ok" {
		return nil, identity.Wrap(identity.ErrParse, "acoustid", "lookup",
			"service status "+payload.Status, nil)
	}

	match := c.bestMatch(payload.Results)
	if match == nil {
		return nil, identity.Wrap(identity.ErrLowConfidence, "acoustid", "lookup",
			fmt.Sprintf("no recording at or above score %.2f", c.minScore), nil)
	}
	c.logger.Debug("fingerprint matched",
		logging.String("recording_id", match.RecordingID),
		logging.String("release_id", match.ReleaseID),
		logging.Float64("score", match.Score))
	return match, nil
}

func (c *Client) bestMatch(results []lookupResult) *identity.AcoustIDMatch {
	qualified := make([]lookupResult, 0, len(results))
	for _, r := range results {
		if r.Score >= c.minScore {
			qualified = append(qualified, r)
		}
	}
	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].Score > qualified[j].Score
	})

	for _, result := range qualified {
		for _, rec := range result.Recordings {
			if rec.ID == "" {
				continue
			}
			match := &identity.AcoustIDMatch{
				RecordingID: rec.ID,
				Title:       rec.Title,
				Artist:      artistNames(rec.Artists),
				Score:       result.Score,
			}
			// Groups may arrive without releases; scan for the first
			// group that carries one and take its title as the album.
			for _, group := range rec.ReleaseGroups {
				if len(group.Releases) == 0 {
					continue
				}
				match.Album = group.Title
				match.ReleaseID = group.Releases[0].ID
				break
			}
			return match
		}
	}
	return nil
}

func artistNames(artists []artist) string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return strings.Join(names, ", ")
}
