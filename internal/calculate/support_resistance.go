package calculate

import (
	"sort"

	"github.com/goldsightlab/goldsight/models"
)

// CalculateSupportResistance derives classic pivot levels from the last
// period candles: pivot = (recentHigh + recentLow + currentClose) / 3,
// first levels mirrored around the pivot, second levels one full range out.
// Support is sorted descending (nearest first), resistance ascending.
func CalculateSupportResistance(candles []models.Candle, period int) (support, resistance []float64) {
	if len(candles) < period {
		return nil, nil
	}

	recent := candles[len(candles)-period:]
	recentHigh := recent[0].High
	recentLow := recent[0].Low
	for _, c := range recent[1:] {
		if c.High > recentHigh {
			recentHigh = c.High
		}
		if c.Low < recentLow {
			recentLow = c.Low
		}
	}

	currentClose := candles[len(candles)-1].Close
	pivot := (recentHigh + recentLow + currentClose) / 3
	priceRange := recentHigh - recentLow

	support = []float64{
		round2(2*pivot - recentHigh),
		round2(pivot - priceRange),
	}
	resistance = []float64{
		round2(2*pivot - recentLow),
		round2(pivot + priceRange),
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(support)))
	sort.Float64s(resistance)

	return support, resistance
}
