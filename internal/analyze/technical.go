// Package analyze turns indicator snapshots into a 0-100 technical score
// plus the human-readable rationale lines the fused signal renders.
package analyze

import (
	"fmt"
	"math"

	"github.com/goldsightlab/goldsight/models"
)

// ScoreTechnical maps a snapshot onto a gold-impact score. 50 is neutral;
// above favors buying, below favors selling. RSI contributes contrarian
// (overbought lowers the score), MACD and trend contribute directional.
func ScoreTechnical(snap *models.IndicatorSnapshot) models.SourceScore {
	score := 50.0
	var reasoning, signals []string

	switch {
	case snap.RSI > 65:
		score -= 15
		reasoning = append(reasoning, fmt.Sprintf("RSI overbought at %.2f", snap.RSI))
		signals = append(signals, "RSI overbought")
	case snap.RSI < 35:
		score += 15
		reasoning = append(reasoning, fmt.Sprintf("RSI oversold at %.2f", snap.RSI))
		signals = append(signals, "RSI oversold")
	case snap.RSI > 55:
		score += 10
		reasoning = append(reasoning, fmt.Sprintf("RSI bullish momentum at %.2f", snap.RSI))
		signals = append(signals, "RSI bullish")
	case snap.RSI < 45:
		score -= 10
		reasoning = append(reasoning, fmt.Sprintf("RSI bearish momentum at %.2f", snap.RSI))
		signals = append(signals, "RSI bearish")
	default:
		reasoning = append(reasoning, fmt.Sprintf("RSI neutral at %.2f", snap.RSI))
	}

	switch snap.MACD.Trend {
	case models.MACDBullishCross:
		score += 20
		reasoning = append(reasoning, "MACD bullish crossover")
		signals = append(signals, "MACD bullish cross")
	case models.MACDBearishCross:
		score -= 20
		reasoning = append(reasoning, "MACD bearish crossover")
		signals = append(signals, "MACD bearish cross")
	case models.MACDBullish:
		score += 10
		reasoning = append(reasoning, "MACD in bullish territory")
		signals = append(signals, "MACD bullish")
	case models.MACDBearish:
		score -= 10
		reasoning = append(reasoning, "MACD in bearish territory")
		signals = append(signals, "MACD bearish")
	default:
		reasoning = append(reasoning, "MACD neutral")
	}

	switch snap.Trend {
	case models.TrendUp:
		score += 15
		reasoning = append(reasoning, "Price in uptrend above key EMAs")
		signals = append(signals, "Uptrend")
	case models.TrendDown:
		score -= 15
		reasoning = append(reasoning, "Price in downtrend below key EMAs")
		signals = append(signals, "Downtrend")
	default:
		reasoning = append(reasoning, "Price trending sideways")
	}

	switch {
	case snap.Strength >= 70:
		score += 10
		reasoning = append(reasoning, fmt.Sprintf("Strong market strength at %d", snap.Strength))
		signals = append(signals, "Strong market")
	case snap.Strength <= 30:
		score -= 10
		reasoning = append(reasoning, fmt.Sprintf("Weak market strength at %d", snap.Strength))
		signals = append(signals, "Weak market")
	}

	final := int(math.Round(math.Max(0, math.Min(100, score))))

	return models.SourceScore{
		Score:     final,
		Reasoning: reasoning,
		Signals:   signals,
		Details: map[string]any{
			"rsi":      snap.RSI,
			"macd":     snap.MACD.Trend,
			"trend":    snap.Trend,
			"strength": snap.Strength,
		},
	}
}
