// Package database persists snapshots, news, economic factors and signals
// in PostgreSQL.
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/goldsightlab/goldsight/models"
)

// ConnectionParams holds PostgreSQL connection settings.
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DB wraps the sql connection pool with the queries the pipeline needs.
type DB struct {
	conn   *sql.DB
	logger zerolog.Logger
}

// New opens the database, verifies the connection and ensures the schema.
func New(params ConnectionParams) (*DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode)

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	db := &DB{
		conn:   conn,
		logger: log.With().Str("component", "database").Logger(),
	}
	if err := db.createTables(); err != nil {
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	db.logger.Info().Str("host", params.Host).Str("db", params.DBName).Msg("Database ready")
	return db, nil
}

// Close releases the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS technical_snapshots (
			snapshot_time TIMESTAMPTZ PRIMARY KEY,
			price_open DOUBLE PRECISION NOT NULL,
			price_high DOUBLE PRECISION NOT NULL,
			price_low DOUBLE PRECISION NOT NULL,
			price_close DOUBLE PRECISION NOT NULL,
			rsi DOUBLE PRECISION NOT NULL,
			macd DOUBLE PRECISION NOT NULL,
			macd_signal DOUBLE PRECISION NOT NULL,
			macd_histogram DOUBLE PRECISION NOT NULL,
			macd_trend TEXT NOT NULL,
			ema_20 DOUBLE PRECISION NOT NULL,
			ema_50 DOUBLE PRECISION NOT NULL,
			ema_200 DOUBLE PRECISION,
			trend TEXT NOT NULL,
			support TEXT NOT NULL,
			resistance TEXT NOT NULL,
			volatility DOUBLE PRECISION NOT NULL,
			strength INTEGER NOT NULL,
			data_source TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS news_items (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			source TEXT NOT NULL,
			published_at TIMESTAMPTZ NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			url TEXT NOT NULL DEFAULT '',
			ai_sentiment TEXT NOT NULL,
			impact_on_gold TEXT NOT NULL,
			confidence INTEGER NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			keywords TEXT NOT NULL DEFAULT '[]',
			impact_reasons TEXT NOT NULL DEFAULT '[]',
			context_score INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(title, source)
		)`,
		`CREATE TABLE IF NOT EXISTS economic_factors (
			id SERIAL PRIMARY KEY,
			event_name TEXT NOT NULL,
			series_id TEXT NOT NULL,
			release_date TIMESTAMPTZ NOT NULL,
			actual DOUBLE PRECISION NOT NULL,
			previous DOUBLE PRECISION,
			change DOUBLE PRECISION,
			change_percent DOUBLE PRECISION,
			sentiment TEXT NOT NULL,
			impact_on_gold TEXT NOT NULL,
			confidence INTEGER NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			importance TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(event_name, release_date)
		)`,
		`CREATE TABLE IF NOT EXISTS signals (
			id SERIAL PRIMARY KEY,
			timeframe TEXT NOT NULL,
			action TEXT NOT NULL,
			confidence INTEGER NOT NULL,
			price_at_signal DOUBLE PRECISION NOT NULL,
			entry_zone TEXT NOT NULL DEFAULT '[]',
			stop_loss DOUBLE PRECISION,
			take_profit DOUBLE PRECISION,
			risk_reward_ratio DOUBLE PRECISION,
			technical_score INTEGER NOT NULL,
			news_score INTEGER NOT NULL,
			macro_score INTEGER NOT NULL,
			overall_score INTEGER NOT NULL,
			reasoning TEXT NOT NULL DEFAULT '[]',
			signals TEXT NOT NULL DEFAULT '[]',
			summary TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, q := range queries {
		if _, err := db.conn.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func marshalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// SaveSnapshot upserts a snapshot keyed by its timestamp.
func (db *DB) SaveSnapshot(ctx context.Context, snap *models.IndicatorSnapshot) error {
	var ema200 sql.NullFloat64
	if snap.EMA200 != nil {
		ema200 = sql.NullFloat64{Float64: *snap.EMA200, Valid: true}
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO technical_snapshots (
			snapshot_time, price_open, price_high, price_low, price_close,
			rsi, macd, macd_signal, macd_histogram, macd_trend,
			ema_20, ema_50, ema_200, trend, support, resistance,
			volatility, strength, data_source
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (snapshot_time) DO UPDATE SET
			price_open = EXCLUDED.price_open,
			price_high = EXCLUDED.price_high,
			price_low = EXCLUDED.price_low,
			price_close = EXCLUDED.price_close,
			rsi = EXCLUDED.rsi,
			macd = EXCLUDED.macd,
			macd_signal = EXCLUDED.macd_signal,
			macd_histogram = EXCLUDED.macd_histogram,
			macd_trend = EXCLUDED.macd_trend,
			ema_20 = EXCLUDED.ema_20,
			ema_50 = EXCLUDED.ema_50,
			ema_200 = EXCLUDED.ema_200,
			trend = EXCLUDED.trend,
			support = EXCLUDED.support,
			resistance = EXCLUDED.resistance,
			volatility = EXCLUDED.volatility,
			strength = EXCLUDED.strength,
			data_source = EXCLUDED.data_source`,
		snap.Timestamp, snap.Price.Open, snap.Price.High, snap.Price.Low, snap.Price.Close,
		snap.RSI, snap.MACD.MACD, snap.MACD.Signal, snap.MACD.Histogram, snap.MACD.Trend,
		snap.EMA20, snap.EMA50, ema200, snap.Trend,
		marshalJSON(snap.Support), marshalJSON(snap.Resistance),
		snap.Volatility, snap.Strength, snap.DataSource)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recent snapshot, or nil when none exists.
func (db *DB) LatestSnapshot(ctx context.Context) (*models.IndicatorSnapshot, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT snapshot_time, price_open, price_high, price_low, price_close,
			rsi, macd, macd_signal, macd_histogram, macd_trend,
			ema_20, ema_50, ema_200, trend, support, resistance,
			volatility, strength, data_source
		FROM technical_snapshots
		ORDER BY snapshot_time DESC
		LIMIT 1`)

	var snap models.IndicatorSnapshot
	var ema200 sql.NullFloat64
	var supportJSON, resistanceJSON string
	err := row.Scan(
		&snap.Timestamp, &snap.Price.Open, &snap.Price.High, &snap.Price.Low, &snap.Price.Close,
		&snap.RSI, &snap.MACD.MACD, &snap.MACD.Signal, &snap.MACD.Histogram, &snap.MACD.Trend,
		&snap.EMA20, &snap.EMA50, &ema200, &snap.Trend, &supportJSON, &resistanceJSON,
		&snap.Volatility, &snap.Strength, &snap.DataSource)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading latest snapshot: %w", err)
	}

	if ema200.Valid {
		snap.EMA200 = &ema200.Float64
	}
	snap.Price.Timestamp = snap.Timestamp
	if err := json.Unmarshal([]byte(supportJSON), &snap.Support); err != nil {
		return nil, fmt.Errorf("decoding support levels: %w", err)
	}
	if err := json.Unmarshal([]byte(resistanceJSON), &snap.Resistance); err != nil {
		return nil, fmt.Errorf("decoding resistance levels: %w", err)
	}
	return &snap, nil
}

// NewsExists reports whether a news item with this title and source is
// already stored.
func (db *DB) NewsExists(ctx context.Context, title, source string) (bool, error) {
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM news_items WHERE title = $1 AND source = $2)`,
		title, source).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking news existence: %w", err)
	}
	return exists, nil
}

// SaveNews inserts a processed news item, ignoring duplicates.
func (db *DB) SaveNews(ctx context.Context, item *models.NewsItem) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO news_items (
			title, source, published_at, content, url,
			ai_sentiment, impact_on_gold, confidence, summary, category,
			keywords, impact_reasons, context_score
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (title, source) DO NOTHING`,
		item.Title, item.Source, item.PublishedAt, item.Content, item.URL,
		item.AISentiment, item.ImpactOnGold, item.Confidence, item.Summary, item.Category,
		marshalJSON(item.Keywords), marshalJSON(item.ImpactReasons), item.ContextScore)
	if err != nil {
		return fmt.Errorf("saving news item: %w", err)
	}
	return nil
}

// RecentNews returns up to limit news items published inside the window,
// highest confidence first.
func (db *DB) RecentNews(ctx context.Context, window time.Duration, limit int) ([]models.NewsItem, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT title, source, published_at, content, url,
			ai_sentiment, impact_on_gold, confidence, summary, category,
			keywords, impact_reasons, context_score
		FROM news_items
		WHERE published_at >= $1
		ORDER BY confidence DESC, published_at DESC
		LIMIT $2`,
		time.Now().Add(-window), limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent news: %w", err)
	}
	defer rows.Close()

	var items []models.NewsItem
	for rows.Next() {
		var item models.NewsItem
		var keywordsJSON, reasonsJSON string
		if err := rows.Scan(
			&item.Title, &item.Source, &item.PublishedAt, &item.Content, &item.URL,
			&item.AISentiment, &item.ImpactOnGold, &item.Confidence, &item.Summary, &item.Category,
			&keywordsJSON, &reasonsJSON, &item.ContextScore); err != nil {
			return nil, fmt.Errorf("scanning news item: %w", err)
		}
		if err := json.Unmarshal([]byte(keywordsJSON), &item.Keywords); err != nil {
			return nil, fmt.Errorf("decoding keywords: %w", err)
		}
		if err := json.Unmarshal([]byte(reasonsJSON), &item.ImpactReasons); err != nil {
			return nil, fmt.Errorf("decoding impact reasons: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// FactorExists reports whether a factor for this event and release date is
// already stored.
func (db *DB) FactorExists(ctx context.Context, eventName string, releaseDate time.Time) (bool, error) {
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM economic_factors WHERE event_name = $1 AND release_date = $2)`,
		eventName, releaseDate).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking factor existence: %w", err)
	}
	return exists, nil
}

// SaveFactor inserts an assessed economic factor, ignoring duplicates.
func (db *DB) SaveFactor(ctx context.Context, factor *models.EconomicFactor) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO economic_factors (
			event_name, series_id, release_date, actual, previous,
			change, change_percent, sentiment, impact_on_gold, confidence,
			summary, category, importance, source
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (event_name, release_date) DO NOTHING`,
		factor.EventName, factor.SeriesID, factor.ReleaseDate, factor.Actual, factor.Previous,
		factor.Change, factor.ChangePercent, factor.Sentiment, factor.ImpactOnGold, factor.Confidence,
		factor.Summary, factor.Category, factor.Importance, factor.Source)
	if err != nil {
		return fmt.Errorf("saving economic factor: %w", err)
	}
	return nil
}

// RecentFactors returns up to limit factors released inside the window,
// newest first.
func (db *DB) RecentFactors(ctx context.Context, window time.Duration, limit int) ([]models.EconomicFactor, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT event_name, series_id, release_date, actual, previous,
			change, change_percent, sentiment, impact_on_gold, confidence,
			summary, category, importance, source
		FROM economic_factors
		WHERE release_date >= $1
		ORDER BY release_date DESC
		LIMIT $2`,
		time.Now().Add(-window), limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent factors: %w", err)
	}
	defer rows.Close()

	var factors []models.EconomicFactor
	for rows.Next() {
		var f models.EconomicFactor
		var previous, change, changePct sql.NullFloat64
		if err := rows.Scan(
			&f.EventName, &f.SeriesID, &f.ReleaseDate, &f.Actual, &previous,
			&change, &changePct, &f.Sentiment, &f.ImpactOnGold, &f.Confidence,
			&f.Summary, &f.Category, &f.Importance, &f.Source); err != nil {
			return nil, fmt.Errorf("scanning economic factor: %w", err)
		}
		if previous.Valid {
			f.Previous = &previous.Float64
		}
		if change.Valid {
			f.Change = &change.Float64
		}
		if changePct.Valid {
			f.ChangePercent = &changePct.Float64
		}
		factors = append(factors, f)
	}
	return factors, rows.Err()
}

// SaveSignal stores a fused trading signal.
func (db *DB) SaveSignal(ctx context.Context, sig *models.Signal) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO signals (
			timeframe, action, confidence, price_at_signal, entry_zone,
			stop_loss, take_profit, risk_reward_ratio,
			technical_score, news_score, macro_score, overall_score,
			reasoning, signals, summary, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		sig.Timeframe, sig.Action, sig.Confidence, sig.PriceAtSignal, marshalJSON(sig.EntryZone),
		sig.StopLoss, sig.TakeProfit, sig.RiskRewardRatio,
		sig.TechnicalScore, sig.NewsScore, sig.MacroScore, sig.OverallScore,
		marshalJSON(sig.Reasoning), marshalJSON(sig.Signals), sig.Summary, sig.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving signal: %w", err)
	}
	return nil
}
