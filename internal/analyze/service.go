package analyze

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/goldsightlab/goldsight/internal/calculate"
	"github.com/goldsightlab/goldsight/models"
)

// CandleSource provides historical price bars.
type CandleSource interface {
	GetCandles(ctx context.Context, symbol, interval string, count int) ([]models.Candle, error)
}

// SnapshotStore persists indicator snapshots.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap *models.IndicatorSnapshot) error
}

// Service runs the technical analysis cycle: fetch candles, compute the
// indicator snapshot, persist it.
type Service struct {
	source CandleSource
	store  SnapshotStore
	params calculate.SnapshotParams

	symbol      string
	interval    string
	candleCount int

	logger zerolog.Logger
}

// NewService creates a technical analysis service.
func NewService(source CandleSource, store SnapshotStore, params calculate.SnapshotParams,
	symbol, interval string, candleCount int) *Service {
	return &Service{
		source:      source,
		store:       store,
		params:      params,
		symbol:      symbol,
		interval:    interval,
		candleCount: candleCount,
		logger:      log.With().Str("component", "technical_service").Logger(),
	}
}

// Run executes one technical cycle and returns the fresh snapshot.
func (s *Service) Run(ctx context.Context) (*models.IndicatorSnapshot, error) {
	candles, err := s.source.GetCandles(ctx, s.symbol, s.interval, s.candleCount)
	if err != nil {
		return nil, fmt.Errorf("fetching candles: %w", err)
	}
	if len(candles) < s.params.MinCandles {
		return nil, fmt.Errorf("%w: got %d candles, need %d",
			calculate.ErrInsufficientData, len(candles), s.params.MinCandles)
	}

	snap, err := calculate.BuildSnapshot(candles, s.params)
	if err != nil {
		return nil, fmt.Errorf("building snapshot: %w", err)
	}
	snap.DataSource = "twelvedata"

	if err := s.store.SaveSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("saving snapshot: %w", err)
	}

	s.logger.Info().
		Float64("price", snap.Price.Close).
		Float64("rsi", snap.RSI).
		Str("macd_trend", snap.MACD.Trend).
		Str("trend", snap.Trend).
		Int("strength", snap.Strength).
		Msg("Technical snapshot stored")
	return snap, nil
}
