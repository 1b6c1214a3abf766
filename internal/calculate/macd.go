package calculate

import (
	"fmt"

	"github.com/goldsightlab/goldsight/models"
)

// CalculateMACD builds the full MACD-line series (fast EMA minus slow EMA at
// every index from slow-1 onward) and a signal-line series as the EMA of the
// MACD line, then classifies the trend from the last two (macd, signal)
// pairs. Requires at least slow+signal closes so that a previous bar exists
// for cross detection.
func CalculateMACD(closes []float64, fast, slow, signal int) (models.MACDResult, error) {
	if len(closes) < slow+signal {
		return models.MACDResult{}, fmt.Errorf("%w: MACD(%d,%d,%d) needs at least %d closes, got %d",
			ErrInsufficientData, fast, slow, signal, slow+signal, len(closes))
	}

	macdLine := make([]float64, 0, len(closes)-slow+1)
	for i := slow - 1; i < len(closes); i++ {
		fastEMA, err := CalculateEMA(closes[i-fast+1:i+1], fast)
		if err != nil {
			return models.MACDResult{}, err
		}
		slowEMA, err := CalculateEMA(closes[i-slow+1:i+1], slow)
		if err != nil {
			return models.MACDResult{}, err
		}
		macdLine = append(macdLine, fastEMA-slowEMA)
	}

	signalLine := make([]float64, 0, len(macdLine)-signal+1)
	for i := signal - 1; i < len(macdLine); i++ {
		v, err := CalculateEMA(macdLine[i-signal+1:i+1], signal)
		if err != nil {
			return models.MACDResult{}, err
		}
		signalLine = append(signalLine, v)
	}

	macd := macdLine[len(macdLine)-1]
	sig := signalLine[len(signalLine)-1]

	return models.MACDResult{
		MACD:      round3(macd),
		Signal:    round3(sig),
		Histogram: round3(macd - sig),
		Trend:     classifyMACDTrend(macdLine, signalLine),
	}, nil
}

// classifyMACDTrend folds over the aligned MACD/signal series carrying the
// previous bar's relative position; cross states require the prior bar, not
// just current values.
func classifyMACDTrend(macdLine, signalLine []float64) string {
	offset := len(macdLine) - len(signalLine)
	trend := models.MACDNeutral

	for i := 1; i < len(signalLine); i++ {
		prevMacd, prevSignal := macdLine[i-1+offset], signalLine[i-1]
		macd, sig := macdLine[i+offset], signalLine[i]
		histogram := macd - sig

		switch {
		case prevMacd <= prevSignal && macd > sig:
			trend = models.MACDBullishCross
		case prevMacd >= prevSignal && macd < sig:
			trend = models.MACDBearishCross
		case macd > sig && histogram > 0:
			trend = models.MACDBullish
		case macd < sig && histogram < 0:
			trend = models.MACDBearish
		default:
			trend = models.MACDNeutral
		}
	}

	return trend
}
