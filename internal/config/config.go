package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	// External data sources
	TwelveAPIKey      string
	HuggingFaceAPIKey string
	NewsAPIKey        string
	GNewsAPIKey       string
	FredAPIKey        string

	// Price / indicator settings
	Symbol           string
	Interval         string
	CandleCount      int
	MinCandles       int
	RSIPeriod        int
	MACDFastPeriod   int
	MACDSlowPeriod   int
	MACDSignalPeriod int
	SRPeriod         int
	VolatilityPeriod int

	// News pipeline
	NewsWindowHours   int
	NewsLimit         int
	MinNewsConfidence int

	// Macro pipeline
	MacroWindowDays int
	MacroLimit      int

	// Persistence
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Delivery
	TelegramToken  string
	TelegramChatID int64

	LogLevel       string
	RequestTimeout int // seconds
	RunMode        string
}

// Load initializes configuration from environment variables.
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.TwelveAPIKey = os.Getenv("TWELVE_API_KEY")
	cfg.HuggingFaceAPIKey = os.Getenv("HUGGINGFACE_API_KEY")
	cfg.NewsAPIKey = os.Getenv("NEWS_API_KEY")
	cfg.GNewsAPIKey = os.Getenv("GNEWS_API_KEY")
	cfg.FredAPIKey = os.Getenv("FRED_API_KEY")

	cfg.Symbol = getEnvWithDefault("SYMBOL", "XAU/USD")
	cfg.Interval = getEnvWithDefault("INTERVAL", "4h")
	cfg.CandleCount = getEnvIntWithDefault("CANDLE_COUNT", 250)
	cfg.MinCandles = getEnvIntWithDefault("MIN_CANDLES", 50)
	cfg.RSIPeriod = getEnvIntWithDefault("RSI_PERIOD", 14)
	cfg.MACDFastPeriod = getEnvIntWithDefault("MACD_FAST_PERIOD", 12)
	cfg.MACDSlowPeriod = getEnvIntWithDefault("MACD_SLOW_PERIOD", 26)
	cfg.MACDSignalPeriod = getEnvIntWithDefault("MACD_SIGNAL_PERIOD", 9)
	cfg.SRPeriod = getEnvIntWithDefault("SR_PERIOD", 20)
	cfg.VolatilityPeriod = getEnvIntWithDefault("VOLATILITY_PERIOD", 20)

	cfg.NewsWindowHours = getEnvIntWithDefault("NEWS_WINDOW_HOURS", 24)
	cfg.NewsLimit = getEnvIntWithDefault("NEWS_LIMIT", 10)
	cfg.MinNewsConfidence = getEnvIntWithDefault("MIN_NEWS_CONFIDENCE", 60)

	cfg.MacroWindowDays = getEnvIntWithDefault("MACRO_WINDOW_DAYS", 7)
	cfg.MacroLimit = getEnvIntWithDefault("MACRO_LIMIT", 5)

	cfg.DBHost = getEnvWithDefault("DB_HOST", "localhost")
	cfg.DBPort = getEnvWithDefault("DB_PORT", "5432")
	cfg.DBUser = getEnvWithDefault("DB_USER", "postgres")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnvWithDefault("DB_NAME", "goldsight")
	cfg.DBSSLMode = getEnvWithDefault("DB_SSLMODE", "disable")

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	cfg.TelegramChatID = getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0)

	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 30)
	cfg.RunMode = getEnvWithDefault("RUN_MODE", "all")

	return &cfg, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
