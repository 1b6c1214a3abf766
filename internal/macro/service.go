package macro

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/goldsightlab/goldsight/internal/api/fred"
	"github.com/goldsightlab/goldsight/models"
)

// SeriesSource provides economic series observations, newest first.
type SeriesSource interface {
	FetchSeries(ctx context.Context, seriesID string, limit int) ([]fred.Observation, error)
}

// Store persists assessed economic factors and answers dedup queries.
type Store interface {
	FactorExists(ctx context.Context, eventName string, releaseDate time.Time) (bool, error)
	SaveFactor(ctx context.Context, factor *models.EconomicFactor) error
}

// Service runs the macro cycle: walk the series catalogue, assess the
// latest release of each against the previous one, persist new factors.
type Service struct {
	source SeriesSource
	store  Store
	limit  int
	logger zerolog.Logger
}

// NewService creates a macro service. limit caps the observations fetched
// per series.
func NewService(source SeriesSource, store Store, limit int) *Service {
	return &Service{
		source: source,
		store:  store,
		limit:  limit,
		logger: log.With().Str("component", "macro_service").Logger(),
	}
}

// Run executes one macro cycle and returns the factors it assessed,
// including ones already stored from earlier runs. A series that fails to
// fetch is skipped, not fatal.
func (s *Service) Run(ctx context.Context) ([]models.EconomicFactor, error) {
	var factors []models.EconomicFactor

	for _, seriesID := range SeriesOrder {
		info := Series[seriesID]

		observations, err := s.source.FetchSeries(ctx, seriesID, s.limit)
		if err != nil {
			s.logger.Warn().Err(err).Str("series", seriesID).Msg("Skipping series after fetch failure")
			continue
		}
		if len(observations) == 0 {
			continue
		}

		latest := observations[0]
		var previous *float64
		if len(observations) > 1 {
			previous = &observations[1].Value
		}

		assessment := Assess(seriesID, latest.Value, previous)

		factor := models.EconomicFactor{
			EventName:    info.Name,
			SeriesID:     seriesID,
			ReleaseDate:  latest.Date,
			Actual:       latest.Value,
			Previous:     previous,
			Sentiment:    assessment.Sentiment,
			ImpactOnGold: assessment.Impact,
			Confidence:   assessment.Confidence,
			Summary:      assessment.Summary,
			Category:     info.Category,
			Importance:   info.Importance,
			Source:       "FRED",
		}
		if previous != nil {
			change := latest.Value - *previous
			factor.Change = &change
			if *previous != 0 {
				pct := math.Round(change / *previous * 100 * 100) / 100
				factor.ChangePercent = &pct
			}
		}
		if err := models.Validate(factor); err != nil {
			s.logger.Warn().Err(err).Str("series", seriesID).Msg("Rejecting invalid factor")
			continue
		}

		exists, err := s.store.FactorExists(ctx, factor.EventName, factor.ReleaseDate)
		if err != nil {
			s.logger.Warn().Err(err).Str("series", seriesID).Msg("Dedup check failed, saving anyway")
		}
		if !exists {
			if err := s.store.SaveFactor(ctx, &factor); err != nil {
				s.logger.Error().Err(err).Str("series", seriesID).Msg("Failed to save factor")
				continue
			}
		}
		factors = append(factors, factor)
	}

	s.logger.Info().Int("assessed", len(factors)).Msg("Macro cycle complete")
	return factors, nil
}
