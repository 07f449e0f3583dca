package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"cricbot/internal/bot"
	"cricbot/internal/config"
	"cricbot/internal/cricket"
	"cricbot/internal/metrics"
	"cricbot/internal/news"
	"cricbot/internal/scheduler"
	"cricbot/internal/storage"
	"cricbot/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Error("create data directory", "path", dir, "error", err)
			os.Exit(1)
		}
	}

	store, err := storage.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Error("open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	matches := cricket.New(http.DefaultClient, cfg.CricketAPIURL, cfg.CricketAPIKey)

	var newsFetcher *news.Fetcher
	if cfg.NewsFeedURL != "" {
		newsFetcher = news.New(http.DefaultClient, cfg.NewsFeedURL)
	}

	b, err := bot.New(cfg.TelegramBotToken, store, matches, newsFetcher, cfg, log)
	if err != nil {
		log.Error("create bot", "error", err)
		os.Exit(1)
	}

	sched := scheduler.New(store, matches, b, log, scheduler.Options{
		PollInterval: time.Duration(cfg.PollIntervalSeconds) * time.Second,
		IdleBackoff:  time.Duration(cfg.IdleBackoffSeconds) * time.Second,
		BatchSize:    cfg.PostBatchSize,
	})

	ops := web.New(cfg.MetricsAddr, metrics.NewRegistry(), log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("starting bot")

	go sched.Run(ctx)
	go func() {
		if err := ops.Run(ctx); err != nil {
			log.Error("ops server", "error", err)
		}
	}()

	b.Run(ctx)

	log.Info("bot stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
