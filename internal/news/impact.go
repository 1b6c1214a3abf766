// Package news runs the news pipeline: fetch headlines, classify
// sentiment, map each article onto gold impact and aggregate the batch
// into a 0-100 news score.
package news

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/goldsightlab/goldsight/internal/sentiment"
	"github.com/goldsightlab/goldsight/models"
)

// Impact is the gold-impact classification of one article.
type Impact struct {
	Direction    string
	Category     string
	ContextScore int
	Reasons      []string
}

// contextPattern maps a financial-context regex onto a signed gold-impact
// weight. Order matters: reasons accumulate in table order.
type contextPattern struct {
	re     *regexp.Regexp
	weight int
	reason string
}

var contextPatterns = []contextPattern{
	{regexp.MustCompile(`(?i)fed.{0,20}(pause|cut|lower)`), 3, "Fed dovish policy"},
	{regexp.MustCompile(`(?i)dovish`), 3, "Fed dovish policy"},
	{regexp.MustCompile(`(?i)rate.{0,10}cut`), 3, "Fed dovish policy"},
	{regexp.MustCompile(`(?i)stimulus|quantitative easing`), 3, "Fed dovish policy"},
	{regexp.MustCompile(`(?i)fed.{0,20}(hike|raise|increase)`), -3, "Fed hawkish policy"},
	{regexp.MustCompile(`(?i)hawkish`), -3, "Fed hawkish policy"},
	{regexp.MustCompile(`(?i)rate.{0,10}(hike|increase)`), -3, "Fed hawkish policy"},
	{regexp.MustCompile(`(?i)tighten.{0,10}policy`), -3, "Fed hawkish policy"},
	{regexp.MustCompile(`(?i)inflation.{0,20}(cool|fall|drop|decline|ease)`), 2, "Lower inflation"},
	{regexp.MustCompile(`(?i)disinflation`), 2, "Lower inflation"},
	{regexp.MustCompile(`(?i)cpi.{0,20}(below|lower|soft)`), 2, "Lower inflation"},
	{regexp.MustCompile(`(?i)(strong|robust|solid).{0,15}(economy|growth|gdp)`), -2, "Strong economy"},
	{regexp.MustCompile(`(?i)(jobs|payrolls).{0,20}(beat|strong|surge)`), -2, "Strong economy"},
	{regexp.MustCompile(`(?i)economic.{0,10}boom`), -2, "Strong economy"},
	{regexp.MustCompile(`(?i)crisis|recession|geopolitical`), 2, "Risk-off sentiment"},
	{regexp.MustCompile(`(?i)war|conflict|escalation`), 2, "Risk-off sentiment"},
	{regexp.MustCompile(`(?i)safe.{0,3}haven|flight to safety`), 2, "Risk-off sentiment"},
	{regexp.MustCompile(`(?i)risk.{0,3}on|stocks? rally`), -1, "Risk-on sentiment"},
	{regexp.MustCompile(`(?i)equit(y|ies).{0,15}(surge|soar)`), -1, "Risk-on sentiment"},
	{regexp.MustCompile(`(?i)market optimism`), -1, "Risk-on sentiment"},
}

var goldKeywords = []string{
	"gold", "xau", "precious metal", "bullion", "fed", "federal reserve",
	"interest rate", "inflation", "cpi", "dollar", "treasury", "safe haven",
	"central bank", "monetary policy",
}

var categoryPatterns = []struct {
	re       *regexp.Regexp
	category string
}{
	{regexp.MustCompile(`(?i)fed|fomc|powell|federal reserve|interest rate|monetary policy`), "fed_policy"},
	{regexp.MustCompile(`(?i)inflation|cpi|ppi|price index`), "inflation"},
	{regexp.MustCompile(`(?i)jobs|payrolls|unemployment|labor market`), "employment"},
	{regexp.MustCompile(`(?i)gdp|economic growth|recession|economy`), "economic_growth"},
	{regexp.MustCompile(`(?i)retail sales|consumer (spending|confidence|sentiment)`), "consumer_data"},
	{regexp.MustCompile(`(?i)war|conflict|geopolitical|sanctions|tensions`), "geopolitical"},
	{regexp.MustCompile(`(?i)ecb|boj|boe|pboc|central bank`), "central_bank"},
	{regexp.MustCompile(`(?i)stocks?|equit(y|ies)|risk (on|off)|rally|selloff`), "market_sentiment"},
	{regexp.MustCompile(`(?i)dollar|dxy|currency|forex|exchange rate`), "currency"},
	{regexp.MustCompile(`(?i)gold|silver|commodit(y|ies)|bullion|oil`), "commodities"},
}

// MapImpact combines the classifier output with context patterns into a
// gold-impact direction. Sentiment contributes +/-1; each matched context
// pattern contributes its weight. Total >= 2 is positive for gold, <= -2
// negative, anything between neutral.
func MapImpact(text string, sent sentiment.Result) Impact {
	var sentimentScore int
	switch sent.Label {
	case models.SentimentPositive:
		sentimentScore = 1
	case models.SentimentNegative:
		sentimentScore = -1
	}

	var contextScore int
	var reasons []string
	seen := make(map[string]bool)
	for _, p := range contextPatterns {
		if !p.re.MatchString(text) {
			continue
		}
		contextScore += p.weight
		if !seen[p.reason] {
			seen[p.reason] = true
			reasons = append(reasons, p.reason)
		}
	}

	total := sentimentScore + contextScore

	var direction, category string
	switch {
	case total >= 2:
		direction = models.ImpactPositive
		switch {
		case seen["Fed dovish policy"]:
			category = "dovish_usd"
		case seen["Risk-off sentiment"]:
			category = "risk_off"
		default:
			category = "bullish_gold"
		}
	case total <= -2:
		direction = models.ImpactNegative
		switch {
		case seen["Fed hawkish policy"]:
			category = "hawkish_usd"
		case seen["Strong economy"]:
			category = "risk_on"
		default:
			category = "bearish_gold"
		}
	default:
		direction = models.ImpactNeutral
		category = "neutral"
	}

	return Impact{
		Direction:    direction,
		Category:     category,
		ContextScore: contextScore,
		Reasons:      reasons,
	}
}

// Categorize buckets an article by topic for storage and rendering.
func Categorize(text string) string {
	for _, p := range categoryPatterns {
		if p.re.MatchString(text) {
			return p.category
		}
	}
	return "other"
}

// ExtractKeywords returns the gold-market keywords present in the text.
func ExtractKeywords(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, kw := range goldKeywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	return found
}

// IsGoldRelevant reports whether the text mentions any gold-market keyword.
func IsGoldRelevant(text string) bool {
	return len(ExtractKeywords(text)) > 0
}

// Aggregate folds processed news items into a single 0-100 score using a
// confidence-weighted mean. Each item maps to a per-item score centered on
// 70/30/50 by direction, shifted by how far its confidence exceeds 60.
func Aggregate(items []models.NewsItem) models.SourceScore {
	if len(items) == 0 {
		return models.SourceScore{
			Score:     50,
			Reasoning: []string{"No recent news available"},
			Signals:   []string{"No news impact"},
			Details:   map[string]any{"count": 0},
		}
	}

	var weightedSum, weightTotal float64
	var positives, negatives, neutrals int
	for _, item := range items {
		conf := float64(item.Confidence)
		var itemScore float64
		switch item.ImpactOnGold {
		case models.ImpactPositive:
			itemScore = 70 + (conf-60)*0.5
			positives++
		case models.ImpactNegative:
			itemScore = 30 - (conf-60)*0.5
			negatives++
		default:
			itemScore = 50
			neutrals++
		}
		weight := conf / 100
		weightedSum += itemScore * weight
		weightTotal += weight
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

	reasoning := []string{
		fmt.Sprintf("Analyzed %d news items: %d positive, %d negative, %d neutral for gold",
			len(items), positives, negatives, neutrals),
	}
	var signals []string
	switch {
	case positives > negatives:
		signals = append(signals, "News flow favors gold")
	case negatives > positives:
		signals = append(signals, "News flow pressures gold")
	default:
		signals = append(signals, "Mixed news flow")
	}

	return models.SourceScore{
		Score:     score,
		Reasoning: reasoning,
		Signals:   signals,
		Details: map[string]any{
			"count":    len(items),
			"positive": positives,
			"negative": negatives,
			"neutral":  neutrals,
		},
	}
}
