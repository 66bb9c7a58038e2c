package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"seriehub/pkg/utils"
)

// Client talks to the OMDb API (or a mirror serving the same shapes).
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

func NewClient(cfg utils.ProviderConfig) *Client {
	return &Client{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		HTTP:    &http.Client{Timeout: 12 * time.Second},
	}
}

// FetchSeries fetches one raw series description by title.
func (c *Client) FetchSeries(ctx context.Context, title string) (*SeriesPayload, error) {
	q := url.Values{}
	q.Set("t", title)
	q.Set("type", "series")

	var payload SeriesPayload
	if err := c.get(ctx, q, &payload); err != nil {
		return nil, err
	}
	if payload.Response == "False" {
		return nil, fmt.Errorf("omdb: series %q: %s", title, payload.Error)
	}
	return &payload, nil
}

// FetchSeason fetches the raw payload for one season of a series.
func (c *Client) FetchSeason(ctx context.Context, title string, season int) (*SeasonPayload, error) {
	q := url.Values{}
	q.Set("t", title)
	q.Set("Season", strconv.Itoa(season))

	var payload SeasonPayload
	if err := c.get(ctx, q, &payload); err != nil {
		return nil, err
	}
	if payload.Response == "False" {
		return nil, fmt.Errorf("omdb: series %q season %d: %s", title, season, payload.Error)
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, q url.Values, out any) error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("omdb: parse base url: %w", err)
	}
	if c.APIKey != "" {
		q.Set("apikey", c.APIKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("omdb: build request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("omdb: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("omdb: status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("omdb: decode json: %w", err)
	}
	return nil
}
