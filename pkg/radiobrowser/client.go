// Package radiobrowser is a thin client for the radio-browser.info directory
// API: station listing, country listing, and mirror discovery.
package radiobrowser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is a well-known directory mirror. Use DiscoverMirror to pick
// one dynamically instead.
const DefaultBaseURL = "https://de1.api.radio-browser.info"

// mirrorListURL answers with the currently available API mirrors.
const mirrorListURL = "https://all.api.radio-browser.info/json/servers"

// Station is one station record as the directory returns it. Fields are
// loosely typed and frequently empty or malformed; normalization happens
// downstream.
type Station struct {
	Name        string `json:"name"`
	URL         string `json:"url_resolved"`
	Homepage    string `json:"homepage,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"countrycode,omitempty"`
	Language    string `json:"language,omitempty"`
	Tags        string `json:"tags,omitempty"`
	Bitrate     int    `json:"bitrate,omitempty"`
}

// Country is one country entry from the directory.
type Country struct {
	Name         string `json:"name"`
	Code         string `json:"iso_3166_1"`
	StationCount int    `json:"stationcount"`
}

type serverMirror struct {
	Name string `json:"name"`
}

// Client queries one directory mirror.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New returns a client for the given mirror base URL. An empty baseURL falls
// back to DefaultBaseURL.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("module", "radiobrowser"),
	}
}

// Stations fetches the full station list.
func (c *Client) Stations(ctx context.Context) ([]Station, error) {
	var stations []Station
	if err := c.getJSON(ctx, "/json/stations", &stations); err != nil {
		return nil, fmt.Errorf("failed to get stations: %w", err)
	}
	return stations, nil
}

// Countries fetches the directory's country list.
func (c *Client) Countries(ctx context.Context) ([]Country, error) {
	var countries []Country
	if err := c.getJSON(ctx, "/json/countries", &countries); err != nil {
		return nil, fmt.Errorf("failed to get countries: %w", err)
	}
	return countries, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v interface{}) error {
	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "stationd/1.0")

	c.logger.Debug("directory request", "url", u)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// DiscoverMirror asks the directory's round-robin endpoint for an available
// API mirror and returns its base URL.
func DiscoverMirror(ctx context.Context, timeout time.Duration) (string, error) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mirrorListURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var mirrors []serverMirror
	if err := json.NewDecoder(resp.Body).Decode(&mirrors); err != nil {
		return "", err
	}

	if len(mirrors) == 0 {
		return "", fmt.Errorf("no mirrors found")
	}

	return fmt.Sprintf("https://%s", mirrors[0].Name), nil
}
