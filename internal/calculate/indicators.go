package calculate

import (
	"fmt"

	"github.com/goldsightlab/goldsight/models"
)

// SnapshotParams holds the indicator periods used when building a snapshot.
type SnapshotParams struct {
	MinCandles       int
	RSIPeriod        int
	MACDFastPeriod   int
	MACDSlowPeriod   int
	MACDSignalPeriod int
	SRPeriod         int
	VolatilityPeriod int
}

// DefaultSnapshotParams are the 4-hour bar settings the pipeline runs with.
func DefaultSnapshotParams() SnapshotParams {
	return SnapshotParams{
		MinCandles:       50,
		RSIPeriod:        14,
		MACDFastPeriod:   12,
		MACDSlowPeriod:   26,
		MACDSignalPeriod: 9,
		SRPeriod:         20,
		VolatilityPeriod: 20,
	}
}

// BuildSnapshot computes the full indicator set from an ascending candle
// series. EMA 200 is only populated with 200+ candles; the trend strategy
// degrades per DetermineTrendByStrategy when it is absent.
func BuildSnapshot(candles []models.Candle, p SnapshotParams) (*models.IndicatorSnapshot, error) {
	if len(candles) < p.MinCandles {
		return nil, fmt.Errorf("%w: snapshot needs at least %d candles, got %d",
			ErrInsufficientData, p.MinCandles, len(candles))
	}

	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	latest := candles[len(candles)-1]

	rsi, err := CalculateRSI(closes, p.RSIPeriod)
	if err != nil {
		return nil, err
	}

	macd, err := CalculateMACD(closes, p.MACDFastPeriod, p.MACDSlowPeriod, p.MACDSignalPeriod)
	if err != nil {
		return nil, err
	}

	ema20, err := CalculateEMA(closes, 20)
	if err != nil {
		return nil, err
	}
	ema50, err := CalculateEMA(closes, 50)
	if err != nil {
		return nil, err
	}

	var ema200 *float64
	if len(closes) >= 200 {
		v, err := CalculateEMA(closes, 200)
		if err != nil {
			return nil, err
		}
		ema200 = &v
	}

	trend := DetermineTrendByStrategy(latest.Close, ema20, ema50, ema200)
	support, resistance := CalculateSupportResistance(candles, p.SRPeriod)
	volatility := CalculateVolatility(closes, p.VolatilityPeriod)
	strength := CalculateMarketStrength(rsi, macd, trend)

	return &models.IndicatorSnapshot{
		Timestamp:  latest.Timestamp,
		Price:      latest,
		RSI:        rsi,
		MACD:       macd,
		EMA20:      ema20,
		EMA50:      ema50,
		EMA200:     ema200,
		Trend:      trend,
		Support:    support,
		Resistance: resistance,
		Volatility: volatility,
		Strength:   strength,
	}, nil
}
