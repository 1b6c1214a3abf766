package calculate

import (
	"math"

	"github.com/goldsightlab/goldsight/models"
)

// CalculateMarketStrength scores overall market force on a 0-100 scale with
// a hand-tuned additive heuristic: base 50, RSI band -15..+15, MACD trend
// -20..+20 (crosses are the extremes), overall trend +-15, large MACD
// histogram +-5. The weights are part of the contract.
func CalculateMarketStrength(rsi float64, macd models.MACDResult, trend string) int {
	strength := 50.0

	switch {
	case rsi > 70:
		strength += 5 // overbought but still strong
	case rsi > 60:
		strength += 15
	case rsi > 50:
		strength += 10
	case rsi < 30:
		strength -= 15
	case rsi < 40:
		strength -= 10
	default:
		strength -= 5
	}

	switch macd.Trend {
	case models.MACDBullishCross:
		strength += 20
	case models.MACDBearishCross:
		strength -= 20
	case models.MACDBullish:
		strength += 10
	case models.MACDBearish:
		strength -= 10
	}

	switch trend {
	case models.TrendUp:
		strength += 15
	case models.TrendDown:
		strength -= 15
	}

	if math.Abs(macd.Histogram) > 0.5 {
		if macd.Histogram > 0 {
			strength += 5
		} else {
			strength -= 5
		}
	}

	return int(math.Max(0, math.Min(100, math.Round(strength))))
}
