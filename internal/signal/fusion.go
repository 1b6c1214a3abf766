// Package signal fuses the technical, news and macro scores into one
// trading recommendation with entry, stop and target levels.
package signal

import (
	"fmt"
	"math"
	"time"

	"github.com/goldsightlab/goldsight/models"
)

// Action thresholds on the fused 0-100 score.
const (
	buyThreshold  = 65
	sellThreshold = 35
	maxConfidence = 85
)

// Price level multipliers around the signal price.
const (
	entryZoneLow   = 0.997
	entryZoneHigh  = 1.003
	buyStopLoss    = 0.985
	buyTakeProfit  = 1.025
	sellStopLoss   = 1.015
	sellTakeProfit = 0.975
)

// Weights are the fusion weights per source. They must sum to 1.
type Weights struct {
	Technical float64
	News      float64
	Macro     float64
}

// DefaultWeights favors technicals, then news, then macro.
func DefaultWeights() Weights {
	return Weights{Technical: 0.40, News: 0.35, Macro: 0.25}
}

// Validate rejects weight sets that do not sum to 1.
func (w Weights) Validate() error {
	sum := w.Technical + w.News + w.Macro
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("fusion weights must sum to 1.0, got %v", sum)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Fuse combines the three source scores into a signal at the snapshot's
// close price. The snapshot is required; news and macro degrade to neutral
// upstream, price data cannot.
func Fuse(snap *models.IndicatorSnapshot, technical, news, macro models.SourceScore, w Weights) (*models.Signal, error) {
	if snap == nil {
		return nil, fmt.Errorf("no technical data available")
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	overall := int(math.Round(
		float64(technical.Score)*w.Technical +
			float64(news.Score)*w.News +
			float64(macro.Score)*w.Macro))

	price := snap.Price.Close

	sig := &models.Signal{
		Timeframe:      "4H",
		PriceAtSignal:  price,
		TechnicalScore: technical.Score,
		NewsScore:      news.Score,
		MacroScore:     macro.Score,
		OverallScore:   overall,
		CreatedAt:      time.Now(),
	}

	switch {
	case overall >= buyThreshold:
		sig.Action = models.ActionBuy
		sig.Confidence = min(maxConfidence, overall)
		sig.EntryZone = []float64{round2(price * entryZoneLow), round2(price * entryZoneHigh)}
		sl := round2(price * buyStopLoss)
		tp := round2(price * buyTakeProfit)
		sig.StopLoss = &sl
		sig.TakeProfit = &tp
	case overall <= sellThreshold:
		sig.Action = models.ActionSell
		sig.Confidence = min(maxConfidence, 100-overall)
		sig.EntryZone = []float64{round2(price * entryZoneLow), round2(price * entryZoneHigh)}
		sl := round2(price * sellStopLoss)
		tp := round2(price * sellTakeProfit)
		sig.StopLoss = &sl
		sig.TakeProfit = &tp
	default:
		sig.Action = models.ActionHold
		sig.Confidence = 100 - 2*abs(overall-50)
		sig.EntryZone = []float64{}
	}

	if sig.StopLoss != nil && sig.TakeProfit != nil {
		risk := math.Abs(*sig.StopLoss - price)
		reward := math.Abs(*sig.TakeProfit - price)
		if risk > 0 {
			rr := round2(reward / risk)
			sig.RiskRewardRatio = &rr
		}
	}

	sig.Reasoning = mergeLines(technical.Reasoning, news.Reasoning, macro.Reasoning)
	sig.Signals = mergeLines(technical.Signals, news.Signals, macro.Signals)
	sig.Summary = Render(sig, snap, technical, news, macro)

	return sig, nil
}

func mergeLines(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
