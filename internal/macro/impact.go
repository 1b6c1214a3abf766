// Package macro assesses recent US economic releases for gold impact and
// aggregates them into a 0-100 macro score.
package macro

import (
	"fmt"
	"math"

	"github.com/goldsightlab/goldsight/models"
)

// SeriesInfo describes one tracked FRED series.
type SeriesInfo struct {
	Name       string
	Category   string
	Importance string
}

// Series is the FRED catalogue the macro cycle walks, keyed by series ID.
var Series = map[string]SeriesInfo{
	"FEDFUNDS": {Name: "Federal Funds Rate", Category: "fed_policy", Importance: models.ImportanceHigh},
	"CPIAUCSL": {Name: "Consumer Price Index", Category: "inflation", Importance: models.ImportanceHigh},
	"CPILFESL": {Name: "Core CPI", Category: "inflation", Importance: models.ImportanceHigh},
	"UNRATE":   {Name: "Unemployment Rate", Category: "employment", Importance: models.ImportanceMedium},
	"PAYEMS":   {Name: "Nonfarm Payrolls", Category: "employment", Importance: models.ImportanceHigh},
	"GDP":      {Name: "Gross Domestic Product", Category: "economic_growth", Importance: models.ImportanceMedium},
	"DGS10":    {Name: "10-Year Treasury Yield", Category: "treasury", Importance: models.ImportanceHigh},
	"DGS2":     {Name: "2-Year Treasury Yield", Category: "treasury", Importance: models.ImportanceMedium},
}

// SeriesOrder fixes the iteration order over Series for deterministic runs.
var SeriesOrder = []string{
	"FEDFUNDS", "CPIAUCSL", "CPILFESL", "UNRATE", "PAYEMS", "GDP", "DGS10", "DGS2",
}

// Assessment is the gold-impact verdict for one release.
type Assessment struct {
	Sentiment  string
	Impact     string
	Confidence int
	Summary    string
}

// Assess maps a release's change versus the previous reading onto gold
// impact. Thresholds are tuned per series: rate-sensitive series move gold
// inversely, labor-market weakness supports it.
func Assess(seriesID string, actual float64, previous *float64) Assessment {
	info := Series[seriesID]

	if previous == nil {
		return Assessment{
			Sentiment:  "neutral",
			Impact:     models.ImpactNeutral,
			Confidence: 60,
			Summary:    fmt.Sprintf("%s at %.2f, no prior reading to compare", info.Name, actual),
		}
	}

	change := actual - *previous
	var changePct float64
	if *previous != 0 {
		changePct = change / *previous * 100
	}

	switch seriesID {
	case "FEDFUNDS":
		switch {
		case change > 0.1:
			return Assessment{"hawkish", models.ImpactNegative, 85,
				fmt.Sprintf("Fed funds rate rose %.2fpp to %.2f%%, pressuring gold", change, actual)}
		case change < -0.1:
			return Assessment{"dovish", models.ImpactPositive, 85,
				fmt.Sprintf("Fed funds rate fell %.2fpp to %.2f%%, supporting gold", -change, actual)}
		default:
			return Assessment{"neutral", models.ImpactNeutral, 50,
				fmt.Sprintf("Fed funds rate steady at %.2f%%", actual)}
		}

	case "CPIAUCSL", "CPILFESL":
		switch {
		case changePct > 0.5:
			return Assessment{"hawkish", models.ImpactNegative, 75,
				fmt.Sprintf("%s up %.2f%%, raises odds of tighter policy", info.Name, changePct)}
		case changePct < -0.3:
			return Assessment{"dovish", models.ImpactPositive, 75,
				fmt.Sprintf("%s down %.2f%%, eases pressure on the Fed", info.Name, -changePct)}
		default:
			return Assessment{"neutral", models.ImpactNeutral, 60,
				fmt.Sprintf("%s broadly stable", info.Name)}
		}

	case "UNRATE":
		switch {
		case change > 0.3:
			return Assessment{"dovish", models.ImpactPositive, 70,
				fmt.Sprintf("Unemployment rose %.1fpp to %.1f%%, labor market cooling", change, actual)}
		case change < -0.3:
			return Assessment{"hawkish", models.ImpactNegative, 70,
				fmt.Sprintf("Unemployment fell %.1fpp to %.1f%%, labor market tight", -change, actual)}
		default:
			return Assessment{"neutral", models.ImpactNeutral, 55,
				fmt.Sprintf("Unemployment steady at %.1f%%", actual)}
		}

	case "PAYEMS":
		switch {
		case change > 50:
			return Assessment{"hawkish", models.ImpactNegative, 75,
				fmt.Sprintf("Payrolls added %.0fk jobs, strong labor market", change)}
		case change < -50:
			return Assessment{"dovish", models.ImpactPositive, 75,
				fmt.Sprintf("Payrolls lost %.0fk jobs, weak labor market", -change)}
		default:
			return Assessment{"neutral", models.ImpactNeutral, 60,
				"Payrolls roughly flat"}
		}

	case "DGS10", "DGS2":
		switch {
		case change > 0.2:
			return Assessment{"hawkish", models.ImpactNegative, 80,
				fmt.Sprintf("%s rose %.2fpp to %.2f%%, raising gold's opportunity cost", info.Name, change, actual)}
		case change < -0.2:
			return Assessment{"dovish", models.ImpactPositive, 80,
				fmt.Sprintf("%s fell %.2fpp to %.2f%%, lowering gold's opportunity cost", info.Name, -change, actual)}
		default:
			return Assessment{"neutral", models.ImpactNeutral, 55,
				fmt.Sprintf("%s steady at %.2f%%", info.Name, actual)}
		}

	case "GDP":
		switch {
		case changePct > 1.0:
			return Assessment{"hawkish", models.ImpactNegative, 70,
				fmt.Sprintf("GDP grew %.1f%%, strong economy reduces safe-haven demand", changePct)}
		case changePct < -1.0:
			return Assessment{"dovish", models.ImpactPositive, 70,
				fmt.Sprintf("GDP shrank %.1f%%, weak economy supports gold", -changePct)}
		default:
			return Assessment{"neutral", models.ImpactNeutral, 60,
				"GDP growth in line with prior reading"}
		}
	}

	return Assessment{
		Sentiment:  "neutral",
		Impact:     models.ImpactNeutral,
		Confidence: 60,
		Summary:    fmt.Sprintf("%s at %.2f", info.Name, actual),
	}
}

func importanceWeight(importance string) float64 {
	switch importance {
	case models.ImportanceHigh:
		return 1.0
	case models.ImportanceMedium:
		return 0.7
	default:
		return 0.4
	}
}

// Aggregate folds assessed releases into a single 0-100 score weighted by
// importance and confidence.
func Aggregate(factors []models.EconomicFactor) models.SourceScore {
	if len(factors) == 0 {
		return models.SourceScore{
			Score:     50,
			Reasoning: []string{"No recent economic data"},
			Signals:   []string{"No macro impact"},
			Details:   map[string]any{"count": 0},
		}
	}

	var weightedSum, weightTotal float64
	var positives, negatives int
	var reasoning, signals []string
	for _, f := range factors {
		conf := float64(f.Confidence)
		var factorScore float64
		switch f.ImpactOnGold {
		case models.ImpactPositive:
			factorScore = 65 + (conf-50)*0.3
			positives++
			signals = append(signals, fmt.Sprintf("%s supports gold", f.EventName))
		case models.ImpactNegative:
			factorScore = 35 - (conf-50)*0.3
			negatives++
			signals = append(signals, fmt.Sprintf("%s pressures gold", f.EventName))
		default:
			factorScore = 50
		}
		weight := importanceWeight(f.Importance) * conf / 100
		weightedSum += factorScore * weight
		weightTotal += weight
		reasoning = append(reasoning, f.Summary)
	}

	score := 50
	if weightTotal > 0 {
		score = int(math.Round(weightedSum / weightTotal))
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	if len(signals) == 0 {
		signals = append(signals, "Economic data broadly neutral for gold")
	}

	return models.SourceScore{
		Score:     score,
		Reasoning: reasoning,
		Signals:   signals,
		Details: map[string]any{
			"count":    len(factors),
			"positive": positives,
			"negative": negatives,
			"neutral":  len(factors) - positives - negatives,
		},
	}
}
