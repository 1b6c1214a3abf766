// Package huggingface runs financial sentiment through Hugging Face
// inference models. Two models are exposed as chain classifiers: a
// twitter-roberta 3-class model as primary and a multilingual star-rating
// model as backup.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	platformhttp "github.com/goldsightlab/goldsight/internal/platform/http"
	"github.com/goldsightlab/goldsight/internal/sentiment"
	"github.com/goldsightlab/goldsight/models"
)

const (
	baseURL      = "https://api-inference.huggingface.co/models/"
	primaryModel = "cardiffnlp/twitter-roberta-base-sentiment"
	backupModel  = "nlptown/bert-base-multilingual-uncased-sentiment"
)

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// The inference API answers with a nested array of label candidates.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Client calls one Hugging Face inference model and maps its labels to the
// shared 3-class sentiment.
type Client struct {
	http     *platformhttp.Client
	apiKey   string
	model    string
	mapLabel func(label string) string
	logger   zerolog.Logger
}

var _ sentiment.Classifier = (*Client)(nil)

// NewPrimary returns the twitter-roberta classifier. Its labels come back
// as LABEL_0/1/2 for negative/neutral/positive.
func NewPrimary(apiKey string, httpClient *platformhttp.Client) *Client {
	return &Client{
		http:   httpClient,
		apiKey: apiKey,
		model:  primaryModel,
		mapLabel: func(label string) string {
			switch label {
			case "LABEL_0":
				return models.SentimentNegative
			case "LABEL_1":
				return models.SentimentNeutral
			case "LABEL_2":
				return models.SentimentPositive
			default:
				return models.SentimentNeutral
			}
		},
		logger: log.With().Str("component", "huggingface_primary").Logger(),
	}
}

// NewBackup returns the star-rating classifier. 1-2 stars map to negative,
// 4-5 stars to positive, 3 stars to neutral.
func NewBackup(apiKey string, httpClient *platformhttp.Client) *Client {
	return &Client{
		http:   httpClient,
		apiKey: apiKey,
		model:  backupModel,
		mapLabel: func(label string) string {
			switch label {
			case "1 star", "2 stars":
				return models.SentimentNegative
			case "4 stars", "5 stars":
				return models.SentimentPositive
			default:
				return models.SentimentNeutral
			}
		},
		logger: log.With().Str("component", "huggingface_backup").Logger(),
	}
}

// Name returns the model identifier for chain logging.
func (c *Client) Name() string {
	return c.model
}

// Classify sends text to the inference API and returns the best-scoring
// label mapped onto the shared sentiment classes.
func (c *Client) Classify(ctx context.Context, text string) (sentiment.Result, error) {
	payload, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return sentiment.Result{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+c.model, bytes.NewReader(payload))
	if err != nil {
		return sentiment.Result{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.DoRequest(ctx, req)
	if err != nil {
		return sentiment.Result{}, fmt.Errorf("calling inference API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return sentiment.Result{}, fmt.Errorf("reading response body: %w", err)
	}

	var candidates [][]labelScore
	if err := json.Unmarshal(body, &candidates); err != nil {
		c.logger.Warn().Str("response", string(body)).Msg("Unexpected inference response shape")
		return sentiment.Result{}, fmt.Errorf("parsing inference response: %w", err)
	}
	if len(candidates) == 0 || len(candidates[0]) == 0 {
		return sentiment.Result{}, fmt.Errorf("empty inference response")
	}

	best := candidates[0][0]
	for _, cand := range candidates[0][1:] {
		if cand.Score > best.Score {
			best = cand
		}
	}

	res := sentiment.Result{
		Label:      c.mapLabel(best.Label),
		Confidence: int(best.Score*100 + 0.5),
		Model:      c.model,
	}
	c.logger.Debug().Str("raw_label", best.Label).Str("label", res.Label).
		Int("confidence", res.Confidence).Msg("Model classified text")
	return res, nil
}
