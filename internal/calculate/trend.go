package calculate

import (
	"github.com/goldsightlab/goldsight/models"
)

// DetermineTrendByStrategy classifies the market trend from the EMA stack.
// With EMA 200 available the full strategy applies: uptrend requires
// ema50 > ema200 plus price above both short EMAs, downtrend is the exact
// mirror. Without EMA 200 (insufficient history) the fallback uses only the
// EMA 20/50 ordering. The two tiers are a deliberate degradation policy and
// must not be merged.
func DetermineTrendByStrategy(price, ema20, ema50 float64, ema200 *float64) string {
	if ema200 != nil {
		if ema50 > *ema200 && price > ema50 && price > ema20 {
			return models.TrendUp
		}
		if ema50 < *ema200 && price < ema50 && price < ema20 {
			return models.TrendDown
		}
		return models.TrendSideways
	}

	if price > ema20 && ema20 > ema50 {
		return models.TrendUp
	}
	if price < ema20 && ema20 < ema50 {
		return models.TrendDown
	}
	return models.TrendSideways
}
