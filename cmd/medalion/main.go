package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Taitony19930316/Medalion/internal/collector"
	"github.com/Taitony19930316/Medalion/internal/config"
	"github.com/Taitony19930316/Medalion/internal/engine"
	"github.com/Taitony19930316/Medalion/internal/notifier"
	"github.com/Taitony19930316/Medalion/internal/portfolio"
	"github.com/Taitony19930316/Medalion/internal/recorder"
	"github.com/Taitony19930316/Medalion/internal/scheduler"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Info().Msg("Medalion starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	// Init fetcher
	var fetcher collector.Fetcher
	switch {
	case cfg.DataSource.BaseURL != "":
		fetcher = collector.NewHTTPFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	case cfg.DataSource.CSVDir != "":
		fetcher = collector.NewCSVFetcher(cfg.DataSource.CSVDir)
	default:
		log.Fatal().Msg("no data source configured: set data_source.base_url or data_source.csv_dir")
	}
	log.Info().Str("source", fetcher.Name()).Strs("symbols", cfg.DataSource.Symbols).Msg("data source ready")

	col := collector.NewCollector(fetcher, cfg.DataSource.BarLimit)
	eng := engine.New(cfg)

	// Init portfolio manager
	pm, err := portfolio.NewManager(cfg.Position.StateFile, cfg.Position.MaxPortfolio)
	if err != nil {
		log.Fatal().Err(err).Msg("init portfolio manager")
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, cfg, col, eng, pm, tn, rec)
	if err := sched.Register(cfg.Schedule.EvalCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing evaluation now")
		go sched.RunNow()
	}

	log.Info().Msg("Medalion is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping...")
	cancel()
	log.Info().Msg("Medalion stopped")
}
