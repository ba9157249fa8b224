package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/racunko/racunko/internal/config"
	"github.com/racunko/racunko/internal/db"
	"github.com/racunko/racunko/internal/logger"
	"github.com/racunko/racunko/internal/taxsync"
)

func main() {
	_ = godotenv.Load()
	logger.Setup()
	cfg := config.Load()

	dbConn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database setup failed")
	}

	syncLog := logger.WithComponent("taxsync")
	fetcher := taxsync.NewPoreznaFetcher(cfg.TaxSourceURL, cfg.FetchTimeout)
	syncer := taxsync.NewSyncer(dbConn, fetcher, syncLog)

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
		defer cancel()
		syncLog.Info().Msg("starting tax update")
		if err := syncer.Run(ctx); err != nil {
			syncLog.Error().Err(err).Msg("tax update failed")
			return
		}
		syncLog.Info().Msg("tax update completed")
	}

	c := cron.New()
	// Daily at midnight
	if _, err := c.AddFunc("0 0 * * *", run); err != nil {
		log.Fatal().Err(err).Msg("invalid cron schedule")
	}
	c.Start()
	syncLog.Info().Msg("tax sync service started, scheduled daily at midnight")

	// Run immediately on startup in development
	if cfg.IsDevelopment() {
		syncLog.Info().Msg("running initial tax update in development mode")
		run()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	syncLog.Info().Msg("shutting down tax sync service")
	<-c.Stop().Done()
}
