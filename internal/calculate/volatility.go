package calculate

import (
	"math"
)

// CalculateVolatility measures the standard deviation of period-over-period
// simple returns across the last period closes, expressed as a percentage.
// Too little history yields 0, not an error: volatility is advisory only.
func CalculateVolatility(closes []float64, period int) float64 {
	if len(closes) < period || period < 2 {
		return 0
	}

	recent := closes[len(closes)-period:]
	returns := make([]float64, 0, period-1)
	for i := 1; i < len(recent); i++ {
		if recent[i-1] == 0 {
			continue
		}
		returns = append(returns, (recent[i]-recent[i-1])/recent[i-1])
	}
	if len(returns) == 0 {
		return 0
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	return round2(math.Sqrt(variance) * 100)
}
