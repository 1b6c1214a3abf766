package calculate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRSI(t *testing.T) {
	t.Run("known value", func(t *testing.T) {
		// changes: +1, -1, +1 -> avgGain 2/3, avgLoss 1/3, RS 2
		rsi, err := CalculateRSI([]float64{1, 2, 1, 2}, 3)
		require.NoError(t, err)
		assert.InDelta(t, 66.67, rsi, 0.001)
	})

	t.Run("all gains returns 100", func(t *testing.T) {
		closes := make([]float64, 20)
		for i := range closes {
			closes[i] = 100 + float64(i)
		}
		rsi, err := CalculateRSI(closes, 14)
		require.NoError(t, err)
		assert.Equal(t, 100.0, rsi)
	})

	t.Run("all losses approaches zero", func(t *testing.T) {
		closes := make([]float64, 20)
		for i := range closes {
			closes[i] = 100 - float64(i)
		}
		rsi, err := CalculateRSI(closes, 14)
		require.NoError(t, err)
		assert.Equal(t, 0.0, rsi)
	})

	t.Run("result stays in range", func(t *testing.T) {
		closes := []float64{100, 102, 99, 103, 98, 105, 97, 106, 101, 99, 104, 100, 103, 98, 102, 101}
		rsi, err := CalculateRSI(closes, 14)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rsi, 0.0)
		assert.LessOrEqual(t, rsi, 100.0)
	})

	t.Run("insufficient data", func(t *testing.T) {
		_, err := CalculateRSI([]float64{100, 101, 102}, 14)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})
}
