package sentiment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/goldsightlab/goldsight/models"
)

func TestRuleBasedAnalyze(t *testing.T) {
	rb := NewRuleBased()

	t.Run("no vocabulary matches is exactly neutral", func(t *testing.T) {
		res := rb.Analyze("quarterly filing published on schedule")
		assert.Equal(t, models.SentimentNeutral, res.Label)
		assert.Equal(t, 50, res.Confidence)
		assert.Equal(t, "fallback", res.Model)
	})

	t.Run("dovish headline is positive", func(t *testing.T) {
		res := rb.Analyze("Fed signals dovish pause, stimulus hopes spark rally")
		assert.Equal(t, models.SentimentPositive, res.Label)
		assert.GreaterOrEqual(t, res.Confidence, 55)
	})

	t.Run("hawkish headline is negative", func(t *testing.T) {
		res := rb.Analyze("Fed expected to hike again as hawkish tone persists")
		assert.Equal(t, models.SentimentNegative, res.Label)
	})

	t.Run("steady-state headline is neutral", func(t *testing.T) {
		res := rb.Analyze("rates unchanged, policy steady, markets flat")
		assert.Equal(t, models.SentimentNeutral, res.Label)
	})

	t.Run("confidence stays within band", func(t *testing.T) {
		texts := []string{
			"strong growth surge boost rally gain",
			"crash crisis fear decline dump sell",
			"hold steady stable",
		}
		for _, text := range texts {
			res := rb.Analyze(text)
			assert.GreaterOrEqual(t, res.Confidence, 55)
			assert.LessOrEqual(t, res.Confidence, 85)
		}
	})

	t.Run("case insensitive word boundaries", func(t *testing.T) {
		assert.Equal(t, models.SentimentPositive, rb.Analyze("BULLISH breakout").Label)
		// "upward" must not match the word "up"
		res := rb.Analyze("upward")
		assert.Equal(t, models.SentimentNeutral, res.Label)
		assert.Equal(t, 50, res.Confidence)
	})
}

type stubClassifier struct {
	name string
	res  Result
	err  error
}

func (s *stubClassifier) Name() string { return s.name }

func (s *stubClassifier) Classify(_ context.Context, _ string) (Result, error) {
	return s.res, s.err
}

func TestChainClassify(t *testing.T) {
	ctx := context.Background()

	t.Run("first healthy classifier wins", func(t *testing.T) {
		chain := NewChain(
			&stubClassifier{name: "primary", res: Result{Label: models.SentimentPositive, Confidence: 90, Model: "primary"}},
			&stubClassifier{name: "backup", res: Result{Label: models.SentimentNegative, Confidence: 80, Model: "backup"}},
		)
		res := chain.Classify(ctx, "gold rallies")
		assert.Equal(t, "primary", res.Model)
		assert.Equal(t, models.SentimentPositive, res.Label)
	})

	t.Run("failure falls through to the next classifier", func(t *testing.T) {
		chain := NewChain(
			&stubClassifier{name: "primary", err: errors.New("model loading")},
			&stubClassifier{name: "backup", res: Result{Label: models.SentimentNegative, Confidence: 70, Model: "backup"}},
		)
		res := chain.Classify(ctx, "gold slides")
		assert.Equal(t, "backup", res.Model)
	})

	t.Run("all failures reach the rule-based fallback", func(t *testing.T) {
		chain := NewChain(
			&stubClassifier{name: "primary", err: errors.New("timeout")},
			&stubClassifier{name: "backup", err: errors.New("timeout")},
		)
		res := chain.Classify(ctx, "dovish Fed cut supports gold rally")
		assert.Equal(t, "fallback", res.Model)
		assert.Equal(t, models.SentimentPositive, res.Label)
	})

	t.Run("long text is truncated for external models", func(t *testing.T) {
		var seen string
		capture := &captureClassifier{onClassify: func(text string) { seen = text }}
		chain := NewChain(capture)
		chain.Classify(ctx, strings.Repeat("a", 2000))
		assert.Len(t, seen, maxClassifyLen)
	})

	t.Run("truncation keeps rune boundaries intact", func(t *testing.T) {
		var seen string
		capture := &captureClassifier{onClassify: func(text string) { seen = text }}
		chain := NewChain(capture)
		// 499 ASCII bytes followed by a 3-byte rune straddling the limit
		chain.Classify(ctx, strings.Repeat("a", 499)+strings.Repeat("€", 10))
		assert.True(t, utf8.ValidString(seen))
		assert.LessOrEqual(t, len(seen), maxClassifyLen)
		assert.Equal(t, strings.Repeat("a", 499), seen)
	})
}

type captureClassifier struct {
	onClassify func(text string)
}

func (c *captureClassifier) Name() string { return "capture" }

func (c *captureClassifier) Classify(_ context.Context, text string) (Result, error) {
	c.onClassify(text)
	return Result{Label: models.SentimentNeutral, Confidence: 60, Model: "capture"}, nil
}
