package calculate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/goldsightlab/goldsight/models"
)

func TestCalculateMarketStrength(t *testing.T) {
	tests := []struct {
		name  string
		rsi   float64
		macd  models.MACDResult
		trend string
		want  int
	}{
		{
			name:  "everything bullish clamps at 100",
			rsi:   65,
			macd:  models.MACDResult{Trend: models.MACDBullishCross, Histogram: 0.6},
			trend: models.TrendUp,
			want:  100, // 50 + 15 + 20 + 15 + 5 = 105, clamped
		},
		{
			name:  "everything bearish clamps at 0",
			rsi:   25,
			macd:  models.MACDResult{Trend: models.MACDBearishCross, Histogram: -0.6},
			trend: models.TrendDown,
			want:  0, // 50 - 15 - 20 - 15 - 5 = -5, clamped
		},
		{
			name:  "overbought contributes less than strong momentum",
			rsi:   75,
			macd:  models.MACDResult{Trend: models.MACDNeutral},
			trend: models.TrendSideways,
			want:  55, // 50 + 5
		},
		{
			name:  "mid-range rsi subtracts",
			rsi:   45,
			macd:  models.MACDResult{Trend: models.MACDNeutral},
			trend: models.TrendSideways,
			want:  45, // 50 - 5
		},
		{
			name:  "bullish momentum without cross",
			rsi:   62,
			macd:  models.MACDResult{Trend: models.MACDBullish, Histogram: 0.2},
			trend: models.TrendUp,
			want:  90, // 50 + 15 + 10 + 15
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateMarketStrength(tt.rsi, tt.macd, tt.trend)
			assert.Equal(t, tt.want, got)
		})
	}
}
