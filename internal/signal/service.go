package signal

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/goldsightlab/goldsight/internal/analyze"
	"github.com/goldsightlab/goldsight/internal/macro"
	"github.com/goldsightlab/goldsight/internal/news"
	"github.com/goldsightlab/goldsight/models"
)

// staleAfter flags snapshots older than this as possibly outdated.
const staleAfter = 6 * time.Hour

// Store reads the fusion inputs and persists the fused signal.
type Store interface {
	LatestSnapshot(ctx context.Context) (*models.IndicatorSnapshot, error)
	RecentNews(ctx context.Context, window time.Duration, limit int) ([]models.NewsItem, error)
	RecentFactors(ctx context.Context, window time.Duration, limit int) ([]models.EconomicFactor, error)
	SaveSignal(ctx context.Context, sig *models.Signal) error
}

// Notifier delivers the rendered signal summary.
type Notifier interface {
	Send(text string) error
}

// Options tunes the fusion cycle.
type Options struct {
	NewsWindowHours int
	NewsLimit       int
	MacroWindowDays int
	MacroLimit      int
}

// Result wraps the fusion outcome. A missing snapshot is reported here
// rather than as an error so the caller can render it.
type Result struct {
	Success bool
	Signal  *models.Signal
	Error   string
}

// Service runs the fusion cycle: load the latest snapshot plus recent news
// and macro data, score all three, fuse, persist, notify.
type Service struct {
	store    Store
	notifier Notifier
	weights  Weights
	opts     Options
	logger   zerolog.Logger
}

// NewService creates a fusion service. notifier may be nil.
func NewService(store Store, notifier Notifier, weights Weights, opts Options) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		weights:  weights,
		opts:     opts,
		logger:   log.With().Str("component", "signal_service").Logger(),
	}
}

// Run executes one fusion cycle. News and macro degrade to neutral on
// failure; a missing technical snapshot yields an unsuccessful Result.
func (s *Service) Run(ctx context.Context) (Result, error) {
	snap, err := s.store.LatestSnapshot(ctx)
	if err != nil {
		return Result{}, err
	}
	if snap == nil {
		s.logger.Warn().Msg("No technical snapshot available, cannot fuse")
		return Result{Success: false, Error: "no technical data available"}, nil
	}
	if time.Since(snap.Timestamp) > staleAfter {
		s.logger.Warn().Time("snapshot_time", snap.Timestamp).Msg("Latest snapshot is stale")
	}

	newsItems, err := s.store.RecentNews(ctx,
		time.Duration(s.opts.NewsWindowHours)*time.Hour, s.opts.NewsLimit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Loading recent news failed, treating as empty")
		newsItems = nil
	}

	factors, err := s.store.RecentFactors(ctx,
		time.Duration(s.opts.MacroWindowDays)*24*time.Hour, s.opts.MacroLimit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Loading recent factors failed, treating as empty")
		factors = nil
	}

	technicalScore := analyze.ScoreTechnical(snap)
	newsScore := news.Aggregate(newsItems)
	macroScore := macro.Aggregate(factors)

	sig, err := Fuse(snap, technicalScore, newsScore, macroScore, s.weights)
	if err != nil {
		return Result{}, err
	}

	if err := s.store.SaveSignal(ctx, sig); err != nil {
		return Result{}, err
	}

	s.logger.Info().
		Str("action", sig.Action).
		Int("confidence", sig.Confidence).
		Int("overall", sig.OverallScore).
		Int("technical", sig.TechnicalScore).
		Int("news", sig.NewsScore).
		Int("macro", sig.MacroScore).
		Msg("Signal generated")

	if s.notifier != nil {
		if err := s.notifier.Send(sig.Summary); err != nil {
			s.logger.Error().Err(err).Msg("Failed to deliver notification")
		}
	}

	return Result{Success: true, Signal: sig}, nil
}
