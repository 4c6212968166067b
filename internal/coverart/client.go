package coverart

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"discern/internal/config"
	"discern/internal/identity"
	"discern/internal/logging"
	"discern/internal/ratelimit"
)

// Client queries the Cover Art Archive for release artwork. It carries its
// own rate limiter; the archive is a separate host from the catalog and the
// two budgets must not interfere.
type Client struct {
	http    *ratelimit.Client
	baseURL string
	logger  *slog.Logger
}

// New builds a client from the coverart configuration section.
func New(cfg config.CoverArt, userAgent string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		http: ratelimit.NewClient(ratelimit.Options{
			UserAgent:  userAgent,
			MaxRetries: cfg.MaxRetries,
			Timeout:    time.Duration(cfg.TimeoutSeconds) * time.Second,
			Component:  "coverart",
			Logger:     logger,
		}),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logging.NewComponentLogger(logger, "coverart"),
	}
}

// Transport exposes the underlying rate-limited client. Test use.
func (c *Client) Transport() *ratelimit.Client {
	return c.http
}

type imageList struct {
	Images []image `json:"images"`
}

type image struct {
	Image string   `json:"image"`
	Front bool     `json:"front"`
	Types []string `json:"types"`
}

// FrontImageURL returns the URL of the release's front cover, preferring
// images tagged as front and falling back to the first image listed. An
// empty string with nil error means the archive has no usable image.
func (c *Client) FrontImageURL(ctx context.Context, releaseID string) (string, error) {
	body, err := c.http.Get(ctx, c.baseURL+"/release/"+url.PathEscape(releaseID), nil)
	if err != nil {
		return "", err
	}

	var list imageList
	if err := json.Unmarshal(body, &list); err != nil {
		return "", identity.Wrap(identity.ErrParse, "coverart", "front-image",
			"decode image list for "+releaseID, err)
	}
	if len(list.Images) == 0 {
		return "", nil
	}
	for _, img := range list.Images {
		if img.Front || hasFrontType(img.Types) {
			return img.Image, nil
		}
	}
	c.logger.Debug("no front image, using first",
		logging.String("release_id", releaseID))
	return list.Images[0].Image, nil
}

func hasFrontType(types []string) bool {
	for _, t := range types {
		if strings.EqualFold(t, "Front") {
			return true
		}
	}
	return false
}
