package calculate

import (
	"fmt"
)

// CalculateRSI computes Wilder's smoothed RSI over a close price series.
// Requires at least period+1 closes. Returns 100 when the smoothing window
// contains no losses; this is a defined edge case, not an error.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if len(closes) < period+1 {
		return 0, fmt.Errorf("%w: RSI(%d) needs at least %d closes, got %d",
			ErrInsufficientData, period, period+1, len(closes))
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	// Wilder smoothing for the remainder of the series.
	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100, nil
	}

	rs := avgGain / avgLoss
	return round2(100 - 100/(1+rs)), nil
}
