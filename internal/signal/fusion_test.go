package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldsightlab/goldsight/models"
)

func testSnapshot(price float64) *models.IndicatorSnapshot {
	return &models.IndicatorSnapshot{
		Timestamp: time.Now(),
		Price:     models.Candle{Open: price - 5, High: price + 10, Low: price - 10, Close: price},
		RSI:       55,
		MACD:      models.MACDResult{Trend: models.MACDBullish, MACD: 1.2, Signal: 0.8, Histogram: 0.4},
		EMA20:     price - 8,
		EMA50:     price - 20,
		Trend:     models.TrendUp,
		Strength:  65,
	}
}

func score(v int) models.SourceScore {
	return models.SourceScore{Score: v, Reasoning: []string{"r"}, Signals: []string{"s"}}
}

func TestWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())
	assert.Error(t, Weights{Technical: 0.5, News: 0.3, Macro: 0.3}.Validate())
}

func TestFuse(t *testing.T) {
	snap := testSnapshot(2000)

	t.Run("strong scores produce a buy", func(t *testing.T) {
		sig, err := Fuse(snap, score(80), score(70), score(60), DefaultWeights())
		require.NoError(t, err)

		// 80*0.40 + 70*0.35 + 60*0.25 = 71.5 -> 72
		assert.Equal(t, models.ActionBuy, sig.Action)
		assert.Equal(t, 72, sig.OverallScore)
		assert.Equal(t, 72, sig.Confidence)

		assert.Equal(t, []float64{1994.0, 2006.0}, sig.EntryZone)
		require.NotNil(t, sig.StopLoss)
		require.NotNil(t, sig.TakeProfit)
		assert.Equal(t, 1970.0, *sig.StopLoss)
		assert.Equal(t, 2050.0, *sig.TakeProfit)
		require.NotNil(t, sig.RiskRewardRatio)
		assert.Equal(t, 1.67, *sig.RiskRewardRatio)
	})

	t.Run("weak scores produce a sell", func(t *testing.T) {
		sig, err := Fuse(snap, score(20), score(30), score(40), DefaultWeights())
		require.NoError(t, err)

		// 20*0.40 + 30*0.35 + 40*0.25 = 28.5 -> 29
		assert.Equal(t, models.ActionSell, sig.Action)
		assert.Equal(t, 29, sig.OverallScore)
		assert.Equal(t, 71, sig.Confidence)

		require.NotNil(t, sig.StopLoss)
		require.NotNil(t, sig.TakeProfit)
		assert.Equal(t, 2030.0, *sig.StopLoss)
		assert.Equal(t, 1950.0, *sig.TakeProfit)
		assert.Less(t, *sig.TakeProfit, sig.PriceAtSignal)
		assert.Greater(t, *sig.StopLoss, sig.PriceAtSignal)
	})

	t.Run("balanced scores hold with no levels", func(t *testing.T) {
		sig, err := Fuse(snap, score(50), score(50), score(50), DefaultWeights())
		require.NoError(t, err)

		assert.Equal(t, models.ActionHold, sig.Action)
		assert.Equal(t, 100, sig.Confidence)
		assert.Empty(t, sig.EntryZone)
		assert.Nil(t, sig.StopLoss)
		assert.Nil(t, sig.TakeProfit)
		assert.Nil(t, sig.RiskRewardRatio)
	})

	t.Run("action thresholds", func(t *testing.T) {
		for overall := 0; overall <= 100; overall++ {
			sig, err := Fuse(snap, score(overall), score(overall), score(overall), DefaultWeights())
			require.NoError(t, err)
			switch {
			case overall >= 65:
				assert.Equal(t, models.ActionBuy, sig.Action, "overall %d", overall)
			case overall <= 35:
				assert.Equal(t, models.ActionSell, sig.Action, "overall %d", overall)
			default:
				assert.Equal(t, models.ActionHold, sig.Action, "overall %d", overall)
			}
		}
	})

	t.Run("confidence caps at 85", func(t *testing.T) {
		sig, err := Fuse(snap, score(100), score(100), score(100), DefaultWeights())
		require.NoError(t, err)
		assert.Equal(t, 85, sig.Confidence)
	})

	t.Run("hold confidence decays with distance from 50", func(t *testing.T) {
		sig, err := Fuse(snap, score(60), score(60), score(60), DefaultWeights())
		require.NoError(t, err)
		assert.Equal(t, models.ActionHold, sig.Action)
		assert.Equal(t, 80, sig.Confidence) // 100 - 2*|60-50|
	})

	t.Run("rationale carries all sources", func(t *testing.T) {
		technical := models.SourceScore{Score: 80, Reasoning: []string{"tech line"}, Signals: []string{"tech sig"}}
		newsScore := models.SourceScore{Score: 70, Reasoning: []string{"news line"}, Signals: []string{"news sig"}}
		macroScore := models.SourceScore{Score: 60, Reasoning: []string{"macro line"}, Signals: []string{"macro sig"}}

		sig, err := Fuse(snap, technical, newsScore, macroScore, DefaultWeights())
		require.NoError(t, err)
		assert.Equal(t, []string{"tech line", "news line", "macro line"}, sig.Reasoning)
		assert.Equal(t, []string{"tech sig", "news sig", "macro sig"}, sig.Signals)
		assert.Contains(t, sig.Summary, "TECHNICAL ANALYSIS")
		assert.Contains(t, sig.Summary, "NEWS ANALYSIS (24H)")
		assert.Contains(t, sig.Summary, "MACRO ANALYSIS (7 DAYS)")
		assert.Contains(t, sig.Summary, "TRADE RECOMMENDATION")
		assert.Contains(t, sig.Summary, "BUY")
	})

	t.Run("nil snapshot is an error", func(t *testing.T) {
		_, err := Fuse(nil, score(50), score(50), score(50), DefaultWeights())
		assert.Error(t, err)
	})

	t.Run("invalid weights are an error", func(t *testing.T) {
		_, err := Fuse(snap, score(50), score(50), score(50), Weights{Technical: 1, News: 1, Macro: 1})
		assert.Error(t, err)
	})
}

func TestRenderRecommendationPhrasing(t *testing.T) {
	snap := testSnapshot(2000)

	t.Run("aligned buy names both factors", func(t *testing.T) {
		sig, err := Fuse(snap, score(80), score(70), score(50), DefaultWeights())
		require.NoError(t, err)
		assert.Contains(t, sig.Summary, "Both technicals and news flow are supportive")
	})

	t.Run("single-driver buy names the driver", func(t *testing.T) {
		sig, err := Fuse(snap, score(100), score(55), score(55), DefaultWeights())
		require.NoError(t, err)
		assert.Equal(t, models.ActionBuy, sig.Action)
		assert.Contains(t, sig.Summary, "Primarily driven by the technical picture")
	})

	t.Run("neutral hold says so", func(t *testing.T) {
		sig, err := Fuse(snap, score(52), score(48), score(50), DefaultWeights())
		require.NoError(t, err)
		assert.Contains(t, sig.Summary, "All factors are neutral")
	})

	t.Run("conflicting hold says so", func(t *testing.T) {
		sig, err := Fuse(snap, score(75), score(25), score(50), DefaultWeights())
		require.NoError(t, err)
		assert.Equal(t, models.ActionHold, sig.Action)
		assert.Contains(t, sig.Summary, "Factors conflict")
	})
}
