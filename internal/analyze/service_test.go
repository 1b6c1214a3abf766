package analyze

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldsightlab/goldsight/internal/calculate"
	"github.com/goldsightlab/goldsight/models"
)

type stubSource struct {
	candles []models.Candle
	err     error
}

func (s *stubSource) GetCandles(context.Context, string, string, int) ([]models.Candle, error) {
	return s.candles, s.err
}

type stubStore struct {
	saved []*models.IndicatorSnapshot
	err   error
}

func (s *stubStore) SaveSnapshot(_ context.Context, snap *models.IndicatorSnapshot) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, snap)
	return nil
}

func candleSeries(n int) []models.Candle {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, n)
	for i := range candles {
		c := 2000 + float64(i)*0.5
		candles[i] = models.Candle{
			Timestamp: start.Add(time.Duration(i) * 4 * time.Hour),
			Open:      c - 1,
			High:      c + 2,
			Low:       c - 2,
			Close:     c,
		}
	}
	return candles
}

func TestServiceRun(t *testing.T) {
	ctx := context.Background()
	params := calculate.DefaultSnapshotParams()

	t.Run("happy path persists a snapshot", func(t *testing.T) {
		store := &stubStore{}
		svc := NewService(&stubSource{candles: candleSeries(100)}, store, params, "XAU/USD", "4h", 250)

		snap, err := svc.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, "twelvedata", snap.DataSource)
		require.Len(t, store.saved, 1)
		assert.Equal(t, snap, store.saved[0])
	})

	t.Run("fetch failure aborts the cycle", func(t *testing.T) {
		store := &stubStore{}
		svc := NewService(&stubSource{err: errors.New("api down")}, store, params, "XAU/USD", "4h", 250)

		_, err := svc.Run(ctx)
		assert.Error(t, err)
		assert.Empty(t, store.saved)
	})

	t.Run("short history aborts the cycle", func(t *testing.T) {
		store := &stubStore{}
		svc := NewService(&stubSource{candles: candleSeries(20)}, store, params, "XAU/USD", "4h", 250)

		_, err := svc.Run(ctx)
		assert.ErrorIs(t, err, calculate.ErrInsufficientData)
		assert.Empty(t, store.saved)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		store := &stubStore{err: errors.New("db down")}
		svc := NewService(&stubSource{candles: candleSeries(100)}, store, params, "XAU/USD", "4h", 250)

		_, err := svc.Run(ctx)
		assert.Error(t, err)
	})
}
