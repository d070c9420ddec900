package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// Client fetches the stream feed. Both requests must succeed for a tick to
// see any data; mixing a fresh recent list with a stale or missing archive
// would render a misleading thread, so there are no partial snapshots.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a feed client for the given streams endpoint.
func NewClient(url string, logger *logrus.Logger) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Fetch retrieves the current live sources and the archive for day. The
// caller passes day already shifted into the reference timezone; only its
// calendar date is used.
func (c *Client) Fetch(ctx context.Context, day time.Time) (Snapshot, error) {
	recent, err := c.get(ctx, c.url)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch recent streams: %w", err)
	}

	archiveURL, err := c.archiveURL(day)
	if err != nil {
		return Snapshot{}, err
	}
	archived, err := c.get(ctx, archiveURL)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch archived streams: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"recent":   len(recent),
		"archived": len(archived),
	}).Debug("Fetched stream snapshot")

	return Snapshot{Recent: recent, Archived: archived}, nil
}

// archiveURL adds the date parameter to the feed URL, preserving any query
// parameters the configured endpoint already carries.
func (c *Client) archiveURL(day time.Time) (string, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return "", fmt.Errorf("invalid feed URL %q: %w", c.url, err)
	}
	q := u.Query()
	q.Set("date", day.Format("2006-01-02"))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]Stream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("feed returned %d - %s", resp.StatusCode, string(body))
	}

	var streams []Stream
	if err := json.NewDecoder(resp.Body).Decode(&streams); err != nil {
		return nil, fmt.Errorf("failed to decode feed response: %w", err)
	}

	return streams, nil
}
