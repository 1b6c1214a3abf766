package calculate

import (
	"fmt"
)

// CalculateEMA computes an exponential moving average seeded with the simple
// average of the first period values, multiplier 2/(period+1). Requires at
// least period values.
func CalculateEMA(prices []float64, period int) (float64, error) {
	if len(prices) < period {
		return 0, fmt.Errorf("%w: EMA(%d) needs at least %d values, got %d",
			ErrInsufficientData, period, period, len(prices))
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	ema := sum / float64(period)

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(prices); i++ {
		ema = prices[i]*multiplier + ema*(1-multiplier)
	}

	return round2(ema), nil
}
