package news

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/goldsightlab/goldsight/internal/sentiment"
	"github.com/goldsightlab/goldsight/models"
)

// ArticleSource provides raw headlines from news providers.
type ArticleSource interface {
	FetchArticles(ctx context.Context, since time.Time) ([]models.Article, error)
}

// Store persists processed news items and answers dedup queries.
type Store interface {
	NewsExists(ctx context.Context, title, source string) (bool, error)
	SaveNews(ctx context.Context, item *models.NewsItem) error
}

// Options tunes the news cycle.
type Options struct {
	WindowHours   int
	Limit         int
	MinConfidence int
}

// Service runs the news pipeline: fetch, filter for gold relevance,
// deduplicate, classify, map to gold impact, persist.
type Service struct {
	source ArticleSource
	store  Store
	chain  *sentiment.Chain
	opts   Options
	logger zerolog.Logger
}

// NewService creates a news service.
func NewService(source ArticleSource, store Store, chain *sentiment.Chain, opts Options) *Service {
	return &Service{
		source: source,
		store:  store,
		chain:  chain,
		opts:   opts,
		logger: log.With().Str("component", "news_service").Logger(),
	}
}

// Run executes one news cycle and returns the items it processed.
func (s *Service) Run(ctx context.Context) ([]models.NewsItem, error) {
	since := time.Now().Add(-time.Duration(s.opts.WindowHours) * time.Hour)
	articles, err := s.source.FetchArticles(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("fetching articles: %w", err)
	}

	relevant := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if IsGoldRelevant(a.Title + " " + a.Description + " " + a.Content) {
			relevant = append(relevant, a)
		}
	}
	if len(relevant) > s.opts.Limit {
		relevant = relevant[:s.opts.Limit]
	}
	s.logger.Debug().Int("fetched", len(articles)).Int("relevant", len(relevant)).Msg("Filtered articles")

	items := make([]models.NewsItem, 0, len(relevant))
	for _, article := range relevant {
		exists, err := s.store.NewsExists(ctx, article.Title, article.Source)
		if err != nil {
			s.logger.Warn().Err(err).Str("title", article.Title).Msg("Dedup check failed, processing anyway")
		} else if exists {
			continue
		}

		text := article.Title + ". " + article.Description + " " + article.Content

		sent := s.chain.Classify(ctx, text)
		if sent.Confidence < s.opts.MinConfidence {
			s.logger.Debug().Str("title", article.Title).Int("confidence", sent.Confidence).
				Msg("Skipping low-confidence classification")
			continue
		}

		impact := MapImpact(text, sent)

		item := models.NewsItem{
			Title:         article.Title,
			Source:        article.Source,
			PublishedAt:   article.PublishedAt,
			Content:       article.Content,
			URL:           article.URL,
			AISentiment:   sent.Label,
			ImpactOnGold:  impact.Direction,
			Confidence:    sent.Confidence,
			Summary:       summarize(article),
			Category:      Categorize(text),
			Keywords:      ExtractKeywords(text),
			ImpactReasons: impact.Reasons,
			ContextScore:  impact.ContextScore,
		}
		if err := models.Validate(item); err != nil {
			s.logger.Warn().Err(err).Str("title", item.Title).Msg("Rejecting invalid news item")
			continue
		}

		if err := s.store.SaveNews(ctx, &item); err != nil {
			s.logger.Error().Err(err).Str("title", item.Title).Msg("Failed to save news item")
			continue
		}
		items = append(items, item)
	}

	s.logger.Info().Int("processed", len(items)).Msg("News cycle complete")
	return items, nil
}

func summarize(a models.Article) string {
	if a.Description != "" {
		return a.Description
	}
	const maxLen = 200
	if len(a.Content) > maxLen {
		return a.Content[:maxLen]
	}
	return a.Content
}
