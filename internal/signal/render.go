package signal

import (
	"fmt"
	"strings"

	"github.com/goldsightlab/goldsight/models"
)

// Render builds the multi-section human-readable rationale delivered with
// each signal.
func Render(sig *models.Signal, snap *models.IndicatorSnapshot, technical, news, macro models.SourceScore) string {
	var b strings.Builder

	b.WriteString("TECHNICAL ANALYSIS\n")
	fmt.Fprintf(&b, "Score: %d/100 | Price: %.2f | RSI: %.2f | Trend: %s | MACD: %s\n",
		technical.Score, snap.Price.Close, snap.RSI, snap.Trend, snap.MACD.Trend)
	if len(snap.Support) > 0 {
		fmt.Fprintf(&b, "Support: %s\n", formatLevels(snap.Support))
	}
	if len(snap.Resistance) > 0 {
		fmt.Fprintf(&b, "Resistance: %s\n", formatLevels(snap.Resistance))
	}
	for _, line := range technical.Reasoning {
		fmt.Fprintf(&b, "- %s\n", line)
	}

	b.WriteString("\nNEWS ANALYSIS (24H)\n")
	fmt.Fprintf(&b, "Score: %d/100", news.Score)
	if count, ok := news.Details["count"].(int); ok {
		fmt.Fprintf(&b, " | Items: %d", count)
	}
	b.WriteString("\n")
	for _, line := range news.Reasoning {
		fmt.Fprintf(&b, "- %s\n", line)
	}

	b.WriteString("\nMACRO ANALYSIS (7 DAYS)\n")
	fmt.Fprintf(&b, "Score: %d/100", macro.Score)
	if count, ok := macro.Details["count"].(int); ok {
		fmt.Fprintf(&b, " | Releases: %d", count)
	}
	b.WriteString("\n")
	for _, line := range macro.Reasoning {
		fmt.Fprintf(&b, "- %s\n", line)
	}

	b.WriteString("\nTRADE RECOMMENDATION\n")
	fmt.Fprintf(&b, "%s @ %.2f (confidence %d%%, overall score %d/100)\n",
		sig.Action, sig.PriceAtSignal, sig.Confidence, sig.OverallScore)
	b.WriteString(recommendationLine(sig, technical, news, macro))
	b.WriteString("\n")

	if sig.Action != models.ActionHold {
		if len(sig.EntryZone) == 2 {
			fmt.Fprintf(&b, "Entry zone: %.2f - %.2f\n", sig.EntryZone[0], sig.EntryZone[1])
		}
		if sig.StopLoss != nil {
			fmt.Fprintf(&b, "Stop loss: %.2f\n", *sig.StopLoss)
		}
		if sig.TakeProfit != nil {
			fmt.Fprintf(&b, "Take profit: %.2f\n", *sig.TakeProfit)
		}
		if sig.RiskRewardRatio != nil {
			fmt.Fprintf(&b, "Risk/reward: %.2f\n", *sig.RiskRewardRatio)
		}
	}

	b.WriteString("\nThis is automated analysis, not financial advice. Manage risk accordingly.")
	return b.String()
}

func recommendationLine(sig *models.Signal, technical, news, macro models.SourceScore) string {
	switch sig.Action {
	case models.ActionBuy:
		if technical.Score >= 60 && news.Score >= 60 {
			return "Both technicals and news flow are supportive of gold."
		}
		return strongestDriver(technical, news, macro, true)
	case models.ActionSell:
		if technical.Score <= 40 && news.Score <= 40 {
			return "Both technicals and news flow are working against gold."
		}
		return strongestDriver(technical, news, macro, false)
	default:
		if within(technical.Score, 10) && within(news.Score, 10) && within(macro.Score, 10) {
			return "All factors are neutral; no edge in either direction."
		}
		return "Factors conflict; waiting for alignment before taking a position."
	}
}

func strongestDriver(technical, news, macro models.SourceScore, bullish bool) string {
	type driver struct {
		name  string
		score int
	}
	drivers := []driver{
		{"technical picture", technical.Score},
		{"news flow", news.Score},
		{"macro backdrop", macro.Score},
	}
	best := drivers[0]
	for _, d := range drivers[1:] {
		if bullish && d.score > best.score {
			best = d
		}
		if !bullish && d.score < best.score {
			best = d
		}
	}
	if bullish {
		return fmt.Sprintf("Primarily driven by the %s.", best.name)
	}
	return fmt.Sprintf("Primarily pressured by the %s.", best.name)
}

func within(score, dist int) bool {
	d := score - 50
	if d < 0 {
		d = -d
	}
	return d <= dist
}

func formatLevels(levels []float64) string {
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = fmt.Sprintf("%.2f", l)
	}
	return strings.Join(parts, ", ")
}
