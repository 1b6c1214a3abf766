package calculate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEMA(t *testing.T) {
	t.Run("constant series", func(t *testing.T) {
		prices := make([]float64, 30)
		for i := range prices {
			prices[i] = 1950.5
		}
		ema, err := CalculateEMA(prices, 20)
		require.NoError(t, err)
		assert.Equal(t, 1950.5, ema)
	})

	t.Run("known value", func(t *testing.T) {
		// seed (1+2+3)/3 = 2, then 4*0.5 + 2*0.5 = 3
		ema, err := CalculateEMA([]float64{1, 2, 3, 4}, 3)
		require.NoError(t, err)
		assert.Equal(t, 3.0, ema)
	})

	t.Run("tracks rising prices from below", func(t *testing.T) {
		prices := make([]float64, 50)
		for i := range prices {
			prices[i] = 100 + float64(i)
		}
		ema, err := CalculateEMA(prices, 20)
		require.NoError(t, err)
		assert.Less(t, ema, prices[len(prices)-1])
		assert.Greater(t, ema, prices[0])
	})

	t.Run("insufficient data", func(t *testing.T) {
		_, err := CalculateEMA([]float64{1, 2, 3}, 20)
		assert.ErrorIs(t, err, ErrInsufficientData)
	})
}
