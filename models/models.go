package models

import (
	"time"
)

// Trend classifications produced by the EMA strategy.
const (
	TrendUp       = "uptrend"
	TrendDown     = "downtrend"
	TrendSideways = "sideways"
)

// MACD trend states.
const (
	MACDBullish      = "bullish"
	MACDBearish      = "bearish"
	MACDBullishCross = "bullish_cross"
	MACDBearishCross = "bearish_cross"
	MACDNeutral      = "neutral"
)

// Sentiment labels produced by the classifier chain.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

// Gold impact directions shared by news and macro analyses.
const (
	ImpactPositive = "positive"
	ImpactNegative = "negative"
	ImpactNeutral  = "neutral"
)

// Signal actions.
const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
	ActionHold = "HOLD"
)

// Importance levels for economic releases.
const (
	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

// Candle represents a single OHLC price bar. Open and Close must sit
// inside the bar's Low/High range.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open" validate:"gtefield=Low,ltefield=High"`
	High      float64   `json:"high"`
	Low       float64   `json:"low" validate:"ltefield=High"`
	Close     float64   `json:"close" validate:"gtefield=Low,ltefield=High"`
}

// Article is a raw news article as delivered by a news provider, before
// sentiment analysis.
type Article struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Content     string    `json:"content"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
}

// MACDResult holds the latest MACD values plus the trend classification
// derived from the last two (macd, signal) pairs.
type MACDResult struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
	Trend     string  `json:"trend" validate:"oneof=bullish bearish bullish_cross bearish_cross neutral"`
}

// IndicatorSnapshot is one analysis cycle's view of the market, computed
// from the latest candle history.
type IndicatorSnapshot struct {
	Timestamp  time.Time  `json:"timestamp"`
	Price      Candle     `json:"price"`
	RSI        float64    `json:"rsi" validate:"gte=0,lte=100"`
	MACD       MACDResult `json:"macd"`
	EMA20      float64    `json:"ema_20"`
	EMA50      float64    `json:"ema_50"`
	EMA200     *float64   `json:"ema_200,omitempty"` // requires >=200 candles
	Trend      string     `json:"trend" validate:"oneof=uptrend downtrend sideways"`
	Support    []float64  `json:"support"`
	Resistance []float64  `json:"resistance"`
	Volatility float64    `json:"volatility" validate:"gte=0"`
	Strength   int        `json:"strength" validate:"gte=0,lte=100"`
	DataSource string     `json:"data_source"`
}

// SourceScore is the common output shape of the technical, news and macro
// analyses: a 0-100 gold-impact score plus the human-readable strings that
// feed the rendered rationale.
type SourceScore struct {
	Score     int            `json:"score" validate:"gte=0,lte=100"`
	Reasoning []string       `json:"reasoning"`
	Signals   []string       `json:"signals"`
	Details   map[string]any `json:"details,omitempty"`
}

// NewsItem is a processed article: classifier output mapped onto gold impact.
type NewsItem struct {
	Title         string    `json:"title"`
	Source        string    `json:"source"`
	PublishedAt   time.Time `json:"published_at"`
	Content       string    `json:"content"`
	URL           string    `json:"url"`
	AISentiment   string    `json:"ai_sentiment"`
	ImpactOnGold  string    `json:"impact_on_gold" validate:"oneof=positive negative neutral"`
	Confidence    int       `json:"confidence" validate:"gte=0,lte=100"`
	Summary       string    `json:"summary"`
	Category      string    `json:"category"`
	Keywords      []string  `json:"keywords,omitempty"`
	ImpactReasons []string  `json:"impact_reasons,omitempty"`
	ContextScore  int       `json:"context_score"`
}

// EconomicFactor is one economic release assessed for gold impact.
type EconomicFactor struct {
	EventName     string    `json:"event_name"`
	SeriesID      string    `json:"series_id"`
	ReleaseDate   time.Time `json:"release_date"`
	Actual        float64   `json:"actual"`
	Previous      *float64  `json:"previous,omitempty"`
	Change        *float64  `json:"change,omitempty"`
	ChangePercent *float64  `json:"change_percent,omitempty"`
	Sentiment     string    `json:"sentiment"`
	ImpactOnGold  string    `json:"impact_on_gold" validate:"oneof=positive negative neutral"`
	Confidence    int       `json:"confidence" validate:"gte=0,lte=100"`
	Summary       string    `json:"summary"`
	Category      string    `json:"category"`
	Importance    string    `json:"importance" validate:"oneof=high medium low"`
	Source        string    `json:"source"`
}

// Signal is the fused trading recommendation, created once per fusion cycle.
// EntryZone, StopLoss and TakeProfit are present iff Action != HOLD.
type Signal struct {
	Timeframe       string    `json:"timeframe"`
	Action          string    `json:"action" validate:"oneof=BUY SELL HOLD"`
	Confidence      int       `json:"confidence" validate:"gte=0,lte=100"`
	PriceAtSignal   float64   `json:"price_at_signal"`
	EntryZone       []float64 `json:"entry_zone"`
	StopLoss        *float64  `json:"stop_loss,omitempty"`
	TakeProfit      *float64  `json:"take_profit,omitempty"`
	RiskRewardRatio *float64  `json:"risk_reward_ratio,omitempty"`
	TechnicalScore  int       `json:"technical_score"`
	NewsScore       int       `json:"news_score"`
	MacroScore      int       `json:"macro_score"`
	OverallScore    int       `json:"overall_score"`
	Reasoning       []string  `json:"reasoning"`
	Signals         []string  `json:"signals"`
	Summary         string    `json:"summary"`
	CreatedAt       time.Time `json:"created_at"`
}
