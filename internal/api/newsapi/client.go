// Package newsapi fetches gold-relevant headlines. NewsAPI.org is the
// primary provider; GNews is the fallback when NewsAPI fails or returns
// nothing.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	platformhttp "github.com/goldsightlab/goldsight/internal/platform/http"
	"github.com/goldsightlab/goldsight/models"
)

const (
	newsAPIURL = "https://newsapi.org/v2/everything"
	gnewsURL   = "https://gnews.io/api/v4/search"

	searchQuery = `gold OR fed OR "federal reserve" OR inflation OR "interest rate"`
	pageSize    = 20
)

// Client fetches articles from NewsAPI with a GNews fallback.
type Client struct {
	http        *platformhttp.Client
	newsAPIKey  string
	gnewsAPIKey string
	logger      zerolog.Logger
}

// NewClient creates a news client. Either key may be empty; the matching
// provider is then skipped.
func NewClient(newsAPIKey, gnewsAPIKey string, httpClient *platformhttp.Client) *Client {
	return &Client{
		http:        httpClient,
		newsAPIKey:  newsAPIKey,
		gnewsAPIKey: gnewsAPIKey,
		logger:      log.With().Str("component", "news_client").Logger(),
	}
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title  string `json:"title"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		PublishedAt time.Time `json:"publishedAt"`
		Content     string    `json:"content"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
	} `json:"articles"`
}

type gnewsResponse struct {
	Articles []struct {
		Title  string `json:"title"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		PublishedAt time.Time `json:"publishedAt"`
		Content     string    `json:"content"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
	} `json:"articles"`
}

// FetchArticles returns articles published since the given time, newest
// first, from the first provider that answers with data.
func (c *Client) FetchArticles(ctx context.Context, since time.Time) ([]models.Article, error) {
	if c.newsAPIKey != "" {
		articles, err := c.fetchNewsAPI(ctx, since)
		if err == nil && len(articles) > 0 {
			return articles, nil
		}
		if err != nil {
			c.logger.Warn().Err(err).Msg("NewsAPI failed, trying GNews")
		}
	}

	if c.gnewsAPIKey != "" {
		articles, err := c.fetchGNews(ctx, since)
		if err != nil {
			return nil, fmt.Errorf("gnews fallback: %w", err)
		}
		return articles, nil
	}

	return nil, fmt.Errorf("no news provider available")
}

func (c *Client) fetchNewsAPI(ctx context.Context, since time.Time) ([]models.Article, error) {
	params := url.Values{}
	params.Set("q", searchQuery)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", fmt.Sprintf("%d", pageSize))
	params.Set("from", since.UTC().Format(time.RFC3339))
	params.Set("apiKey", c.newsAPIKey)

	body, err := c.get(ctx, newsAPIURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var data newsAPIResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parsing NewsAPI response: %w", err)
	}
	if data.Status != "ok" {
		return nil, fmt.Errorf("NewsAPI status %q", data.Status)
	}

	articles := make([]models.Article, 0, len(data.Articles))
	for _, a := range data.Articles {
		articles = append(articles, models.Article{
			Title:       a.Title,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
			Content:     a.Content,
			Description: a.Description,
			URL:         a.URL,
		})
	}
	c.logger.Debug().Int("count", len(articles)).Msg("Fetched articles from NewsAPI")
	return articles, nil
}

func (c *Client) fetchGNews(ctx context.Context, since time.Time) ([]models.Article, error) {
	params := url.Values{}
	params.Set("q", "gold OR fed OR inflation")
	params.Set("lang", "en")
	params.Set("max", fmt.Sprintf("%d", pageSize))
	params.Set("from", since.UTC().Format(time.RFC3339))
	params.Set("token", c.gnewsAPIKey)

	body, err := c.get(ctx, gnewsURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var data gnewsResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("parsing GNews response: %w", err)
	}

	articles := make([]models.Article, 0, len(data.Articles))
	for _, a := range data.Articles {
		articles = append(articles, models.Article{
			Title:       a.Title,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
			Content:     a.Content,
			Description: a.Description,
			URL:         a.URL,
		})
	}
	c.logger.Debug().Int("count", len(articles)).Msg("Fetched articles from GNews")
	return articles, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetching news: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}
