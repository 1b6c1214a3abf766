// Package sentiment classifies financial text into a 3-class sentiment
// (NEGATIVE/NEUTRAL/POSITIVE) via an ordered fallback chain of external
// models with a deterministic rule-based classifier as the last resort.
package sentiment

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxClassifyLen bounds the text sent to external models.
const maxClassifyLen = 500

// Result is a classified sentiment with a 0-100 confidence.
type Result struct {
	Label      string `json:"label"`
	Confidence int    `json:"confidence"`
	Model      string `json:"model"`
}

// Classifier maps raw text onto a sentiment result. Implementations may
// fail (remote models); the chain handles that.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, text string) (Result, error)
}

// Chain tries each classifier in order and falls back to the rule-based
// classifier when all of them fail. It never fails for valid input text.
type Chain struct {
	classifiers []Classifier
	fallback    *RuleBased
	logger      zerolog.Logger
}

// NewChain builds a chain over the given external classifiers, in priority
// order. The rule-based fallback is always appended implicitly.
func NewChain(classifiers ...Classifier) *Chain {
	return &Chain{
		classifiers: classifiers,
		fallback:    NewRuleBased(),
		logger:      log.With().Str("component", "sentiment_chain").Logger(),
	}
}

// Classify runs the fallback chain. External models see at most
// maxClassifyLen characters; the rule-based fallback scans the full text.
func (c *Chain) Classify(ctx context.Context, text string) Result {
	truncated := text
	if len(truncated) > maxClassifyLen {
		cut := maxClassifyLen
		// never split a rune mid-sequence
		for cut > 0 && !utf8.RuneStart(truncated[cut]) {
			cut--
		}
		truncated = truncated[:cut]
	}

	for _, classifier := range c.classifiers {
		res, err := classifier.Classify(ctx, truncated)
		if err != nil {
			c.logger.Warn().Err(err).Str("model", classifier.Name()).Msg("Classifier failed, trying next")
			continue
		}
		c.logger.Debug().Str("model", classifier.Name()).Str("label", res.Label).
			Int("confidence", res.Confidence).Msg("Sentiment classified")
		return res
	}

	c.logger.Info().Msg("All external classifiers failed, using rule-based fallback")
	return c.fallback.Analyze(text)
}
