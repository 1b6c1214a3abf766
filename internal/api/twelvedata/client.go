// Package twelvedata fetches OHLC candle history from the Twelve Data API.
package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	platformhttp "github.com/goldsightlab/goldsight/internal/platform/http"
	"github.com/goldsightlab/goldsight/models"
)

const baseURL = "https://api.twelvedata.com/time_series"

// Client is a rate-limited Twelve Data time_series client.
type Client struct {
	http   *platformhttp.Client
	apiKey string
	logger zerolog.Logger
}

// NewClient creates a new price data client.
func NewClient(apiKey string, httpClient *platformhttp.Client) *Client {
	return &Client{
		http:   httpClient,
		apiKey: apiKey,
		logger: log.With().Str("component", "twelvedata_client").Logger(),
	}
}

type timeSeriesResponse struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Interval string `json:"interval"`
	} `json:"meta"`
	Values []struct {
		Datetime string  `json:"datetime"`
		Open     float64 `json:"open,string"`
		High     float64 `json:"high,string"`
		Low      float64 `json:"low,string"`
		Close    float64 `json:"close,string"`
	} `json:"values"`
	Status string `json:"status"`
}

// GetCandles fetches up to count candles for symbol/interval, sorted oldest
// first. It fails loudly on API errors or empty data; the caller's trend
// degradation policy covers short history, not fetch failure. Candles that
// violate the OHLC invariant are rejected.
func (c *Client) GetCandles(ctx context.Context, symbol, interval string, count int) ([]models.Candle, error) {
	url := fmt.Sprintf("%s?symbol=%s&interval=%s&outputsize=%d&apikey=%s",
		baseURL, symbol, interval, count, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetching candles: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if strings.Contains(string(body), `"status":"error"`) {
		c.logger.Error().Str("response", string(body)).Msg("Twelve Data API error")
		return nil, fmt.Errorf("twelve data API error: %s", string(body))
	}

	var data timeSeriesResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if len(data.Values) == 0 {
		c.logger.Warn().Str("response", string(body)).Msg("No candles in response")
		return nil, fmt.Errorf("empty data returned")
	}

	// Oldest first for proper indicator calculations
	sort.Slice(data.Values, func(i, j int) bool {
		return data.Values[i].Datetime < data.Values[j].Datetime
	})

	candles := make([]models.Candle, 0, len(data.Values))
	for _, v := range data.Values {
		ts, err := parseDatetime(v.Datetime)
		if err != nil {
			return nil, fmt.Errorf("parsing candle datetime %q: %w", v.Datetime, err)
		}
		candle := models.Candle{
			Timestamp: ts,
			Open:      v.Open,
			High:      v.High,
			Low:       v.Low,
			Close:     v.Close,
		}
		if err := models.Validate(candle); err != nil {
			c.logger.Warn().Err(err).Str("datetime", v.Datetime).Msg("Rejecting invalid candle")
			continue
		}
		candles = append(candles, candle)
	}

	c.logger.Debug().Int("count", len(candles)).Str("symbol", symbol).Msg("Fetched candles")
	return candles, nil
}

func parseDatetime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime format")
}
