package calculate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldsightlab/goldsight/models"
)

func makeCandles(n int, closeAt func(i int) float64) []models.Candle {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]models.Candle, n)
	for i := range candles {
		c := closeAt(i)
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

func TestBuildSnapshot(t *testing.T) {
	t.Run("full history populates ema200", func(t *testing.T) {
		candles := makeCandles(250, func(i int) float64 {
			return 2000 + 10*math.Sin(float64(i)/10) + float64(i)*0.5
		})
		snap, err := BuildSnapshot(candles, DefaultSnapshotParams())
		require.NoError(t, err)

		assert.NotNil(t, snap.EMA200)
		assert.Equal(t, candles[len(candles)-1].Timestamp, snap.Timestamp)
		assert.Equal(t, candles[len(candles)-1].Close, snap.Price.Close)
		assert.GreaterOrEqual(t, snap.RSI, 0.0)
		assert.LessOrEqual(t, snap.RSI, 100.0)
		assert.GreaterOrEqual(t, snap.Strength, 0)
		assert.LessOrEqual(t, snap.Strength, 100)
		assert.Len(t, snap.Support, 2)
		assert.Len(t, snap.Resistance, 2)
		assert.Contains(t, []string{models.TrendUp, models.TrendDown, models.TrendSideways}, snap.Trend)
	})

	t.Run("short history omits ema200", func(t *testing.T) {
		candles := makeCandles(60, func(i int) float64 { return 2000 + float64(i) })
		snap, err := BuildSnapshot(candles, DefaultSnapshotParams())
		require.NoError(t, err)
		assert.Nil(t, snap.EMA200)
	})

	t.Run("too few candles", func(t *testing.T) {
		candles := makeCandles(30, func(i int) float64 { return 2000 })
		_, err := BuildSnapshot(candles, DefaultSnapshotParams())
		assert.ErrorIs(t, err, ErrInsufficientData)
	})
}
