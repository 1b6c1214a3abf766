// Package fred fetches economic series observations from the St. Louis
// Fed FRED API.
package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	platformhttp "github.com/goldsightlab/goldsight/internal/platform/http"
)

const baseURL = "https://api.stlouisfed.org/fred/series/observations"

// Observation is one dated numeric value of an economic series.
type Observation struct {
	Date  time.Time
	Value float64
}

// Client is a rate-limited FRED observations client.
type Client struct {
	http   *platformhttp.Client
	apiKey string
	logger zerolog.Logger
}

// NewClient creates a FRED client.
func NewClient(apiKey string, httpClient *platformhttp.Client) *Client {
	return &Client{
		http:   httpClient,
		apiKey: apiKey,
		logger: log.With().Str("component", "fred_client").Logger(),
	}
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// FetchSeries returns up to limit observations for seriesID, newest first.
// FRED marks missing values with "." so non-numeric entries are dropped.
func (c *Client) FetchSeries(ctx context.Context, seriesID string, limit int) ([]Observation, error) {
	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("api_key", c.apiKey)
	params.Set("file_type", "json")
	params.Set("sort_order", "desc")
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetching series %s: %w", seriesID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var data observationsResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parsing FRED response: %w", err)
	}

	observations := make([]Observation, 0, len(data.Observations))
	for _, obs := range data.Observations {
		value, err := strconv.ParseFloat(obs.Value, 64)
		if err != nil {
			continue
		}
		date, err := time.Parse("2006-01-02", obs.Date)
		if err != nil {
			c.logger.Warn().Str("date", obs.Date).Str("series", seriesID).Msg("Skipping unparseable observation date")
			continue
		}
		observations = append(observations, Observation{Date: date, Value: value})
	}

	c.logger.Debug().Int("count", len(observations)).Str("series", seriesID).Msg("Fetched observations")
	return observations, nil
}
