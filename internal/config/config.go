// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	TelegramBotToken string
	CricketAPIKey    string
	CricketAPIURL    string
	NewsFeedURL      string
	DatabasePath     string
	LogLevel         string
	MetricsAddr      string

	PollIntervalSeconds int
	IdleBackoffSeconds  int
	PostBatchSize       int
	DailyPostTime       string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	apiKey := os.Getenv("CRICKET_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("CRICKET_API_KEY is required")
	}

	apiURL := os.Getenv("CRICKET_API_URL")
	if apiURL == "" {
		apiURL = "https://api.cricapi.com"
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./data/bot.db"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	metricsAddr := os.Getenv("METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9090"
	}

	pollInterval, err := envInt("POLL_INTERVAL_SECONDS", 600)
	if err != nil {
		return nil, err
	}
	idleBackoff, err := envInt("IDLE_BACKOFF_SECONDS", 1800)
	if err != nil {
		return nil, err
	}
	batchSize, err := envInt("POST_BATCH_SIZE", 8)
	if err != nil {
		return nil, err
	}

	dailyTime := os.Getenv("DAILY_POST_TIME")
	if dailyTime == "" {
		dailyTime = "0900"
	}
	if err := validateClock(dailyTime); err != nil {
		return nil, fmt.Errorf("invalid DAILY_POST_TIME: %w", err)
	}

	return &Config{
		TelegramBotToken:    token,
		CricketAPIKey:       apiKey,
		CricketAPIURL:       apiURL,
		NewsFeedURL:         os.Getenv("NEWS_FEED_URL"),
		DatabasePath:        dbPath,
		LogLevel:            logLevel,
		MetricsAddr:         metricsAddr,
		PollIntervalSeconds: pollInterval,
		IdleBackoffSeconds:  idleBackoff,
		PostBatchSize:       batchSize,
		DailyPostTime:       dailyTime,
	}, nil
}

func envInt(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("invalid %s %q, want a positive integer", key, raw)
	}
	return v, nil
}

func validateClock(hhmm string) error {
	if len(hhmm) != 4 {
		return fmt.Errorf("%q is not HHMM", hhmm)
	}
	hh, err1 := strconv.Atoi(hhmm[:2])
	mm, err2 := strconv.Atoi(hhmm[2:])
	if err1 != nil || err2 != nil || hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return fmt.Errorf("%q is not HHMM", hhmm)
	}
	return nil
}
