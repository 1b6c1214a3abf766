package sentiment

import (
	"math"
	"regexp"

	"github.com/goldsightlab/goldsight/models"
)

// Curated finance vocabulary for the rule-based classifier. Counted with
// word boundaries, case-insensitive.
var (
	positiveWords = []string{
		"positive", "good", "increase", "growth", "strong", "up", "rise", "gain",
		"bullish", "optimistic", "confident", "surge", "boost", "improve", "recovery",
		"dovish", "stimulus", "cut", "lower", "ease", "support", "rally",
	}
	negativeWords = []string{
		"negative", "bad", "decrease", "fall", "weak", "down", "drop", "decline",
		"bearish", "pessimistic", "concern", "crisis", "crash", "fear", "uncertainty",
		"hawkish", "tight", "raise", "hike", "inflation", "pressure", "sell", "dump",
	}
	neutralWords = []string{
		"neutral", "stable", "unchanged", "maintain", "hold", "steady", "flat",
		"sideways", "pause", "wait",
	}
)

// contextBonus adds fixed weight to a bucket when a financial-context
// pattern fires; gold reacts to Fed policy and risk appetite beyond plain
// word polarity.
type contextBonus struct {
	re     *regexp.Regexp
	bucket string // which counter the bonus goes to
	bonus  int
}

var contextBonuses = []contextBonus{
	{regexp.MustCompile(`(?i)fed.*(pause|cut)|dovish|stimulus`), models.SentimentPositive, 2},
	{regexp.MustCompile(`(?i)fed.*(hike|raise)|hawkish|tight`), models.SentimentNegative, 2},
	{regexp.MustCompile(`(?i)crisis|war|uncertainty|geopolitical`), models.SentimentPositive, 1}, // safe haven
	{regexp.MustCompile(`(?i)(strong|robust).*economy`), models.SentimentNegative, 1},
}

// RuleBased is the deterministic last-resort classifier: vocabulary counts
// plus context bonuses. It always produces a result.
type RuleBased struct {
	positive []*regexp.Regexp
	negative []*regexp.Regexp
	neutral  []*regexp.Regexp
}

// NewRuleBased compiles the vocabulary into word-boundary matchers.
func NewRuleBased() *RuleBased {
	return &RuleBased{
		positive: compileWords(positiveWords),
		negative: compileWords(negativeWords),
		neutral:  compileWords(neutralWords),
	}
}

func compileWords(words []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		res[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return res
}

func countMatches(res []*regexp.Regexp, text string) int {
	var n int
	for _, re := range res {
		n += len(re.FindAllStringIndex(text, -1))
	}
	return n
}

// Analyze scores the text and picks the dominant bucket. With no vocabulary
// matches at all it returns exactly NEUTRAL at confidence 50.
func (r *RuleBased) Analyze(text string) Result {
	positiveScore := countMatches(r.positive, text)
	negativeScore := countMatches(r.negative, text)
	neutralScore := countMatches(r.neutral, text)

	for _, cb := range contextBonuses {
		if !cb.re.MatchString(text) {
			continue
		}
		switch cb.bucket {
		case models.SentimentPositive:
			positiveScore += cb.bonus
		case models.SentimentNegative:
			negativeScore += cb.bonus
		}
	}

	total := positiveScore + negativeScore + neutralScore
	if total == 0 {
		return Result{Label: models.SentimentNeutral, Confidence: 50, Model: "fallback"}
	}

	maxScore := positiveScore
	if negativeScore > maxScore {
		maxScore = negativeScore
	}
	if neutralScore > maxScore {
		maxScore = neutralScore
	}

	confidence := int(math.Round(float64(maxScore)/float64(total)*100)) + 20
	if confidence < 55 {
		confidence = 55
	}
	if confidence > 85 {
		confidence = 85
	}

	switch maxScore {
	case positiveScore:
		return Result{Label: models.SentimentPositive, Confidence: confidence, Model: "fallback"}
	case negativeScore:
		return Result{Label: models.SentimentNegative, Confidence: confidence, Model: "fallback"}
	default:
		return Result{Label: models.SentimentNeutral, Confidence: confidence, Model: "fallback"}
	}
}
