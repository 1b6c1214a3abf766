package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/goldsightlab/goldsight/internal/analyze"
	"github.com/goldsightlab/goldsight/internal/api/fred"
	"github.com/goldsightlab/goldsight/internal/api/huggingface"
	"github.com/goldsightlab/goldsight/internal/api/newsapi"
	"github.com/goldsightlab/goldsight/internal/api/twelvedata"
	"github.com/goldsightlab/goldsight/internal/calculate"
	"github.com/goldsightlab/goldsight/internal/config"
	"github.com/goldsightlab/goldsight/internal/database"
	"github.com/goldsightlab/goldsight/internal/macro"
	"github.com/goldsightlab/goldsight/internal/news"
	"github.com/goldsightlab/goldsight/internal/notifier"
	platformhttp "github.com/goldsightlab/goldsight/internal/platform/http"
	"github.com/goldsightlab/goldsight/internal/sentiment"
	"github.com/goldsightlab/goldsight/internal/signal"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	db, err := database.New(database.ConnectionParams{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	httpClient := platformhttp.NewClient(platformhttp.ClientOptions{
		Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})

	params := calculate.SnapshotParams{
		MinCandles:       cfg.MinCandles,
		RSIPeriod:        cfg.RSIPeriod,
		MACDFastPeriod:   cfg.MACDFastPeriod,
		MACDSlowPeriod:   cfg.MACDSlowPeriod,
		MACDSignalPeriod: cfg.MACDSignalPeriod,
		SRPeriod:         cfg.SRPeriod,
		VolatilityPeriod: cfg.VolatilityPeriod,
	}

	technicalSvc := analyze.NewService(
		twelvedata.NewClient(cfg.TwelveAPIKey, httpClient),
		db, params, cfg.Symbol, cfg.Interval, cfg.CandleCount)

	chain := sentiment.NewChain(
		huggingface.NewPrimary(cfg.HuggingFaceAPIKey, httpClient),
		huggingface.NewBackup(cfg.HuggingFaceAPIKey, httpClient),
	)
	newsSvc := news.NewService(
		newsapi.NewClient(cfg.NewsAPIKey, cfg.GNewsAPIKey, httpClient),
		db, chain, news.Options{
			WindowHours:   cfg.NewsWindowHours,
			Limit:         cfg.NewsLimit,
			MinConfidence: cfg.MinNewsConfidence,
		})

	macroSvc := macro.NewService(
		fred.NewClient(cfg.FredAPIKey, httpClient),
		db, cfg.MacroLimit)

	var tg signal.Notifier
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		t, err := notifier.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Warn().Err(err).Msg("Telegram unavailable, continuing without notifications")
		} else {
			tg = t
		}
	}

	signalSvc := signal.NewService(db, tg, signal.DefaultWeights(), signal.Options{
		NewsWindowHours: cfg.NewsWindowHours,
		NewsLimit:       cfg.NewsLimit,
		MacroWindowDays: cfg.MacroWindowDays,
		MacroLimit:      cfg.MacroLimit,
	})

	ctx := context.Background()

	runTechnical := func() {
		if _, err := technicalSvc.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Technical cycle failed")
		}
	}
	runNews := func() {
		if _, err := newsSvc.Run(ctx); err != nil {
			log.Error().Err(err).Msg("News cycle failed")
		}
	}
	runMacro := func() {
		if _, err := macroSvc.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Macro cycle failed")
		}
	}
	runSignal := func() {
		res, err := signalSvc.Run(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Signal cycle failed")
			return
		}
		if !res.Success {
			log.Warn().Str("reason", res.Error).Msg("No signal generated")
			return
		}
		log.Info().Str("action", res.Signal.Action).Msg("Run complete")
	}

	switch cfg.RunMode {
	case "technical":
		runTechnical()
	case "news":
		runNews()
	case "macro":
		runMacro()
	case "signal":
		runSignal()
	case "all":
		runTechnical()
		runNews()
		runMacro()
		runSignal()
	default:
		log.Fatal().Str("mode", cfg.RunMode).Msg("Unknown run mode")
	}
}
