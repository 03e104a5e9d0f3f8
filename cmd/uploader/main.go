package main

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/my-ijet/odysee-uploader/internal/archive"
	"github.com/my-ijet/odysee-uploader/internal/browser"
	"github.com/my-ijet/odysee-uploader/internal/config"
	"github.com/my-ijet/odysee-uploader/internal/ledger"
	"github.com/my-ijet/odysee-uploader/internal/publish"
	"github.com/my-ijet/odysee-uploader/internal/queue"
	"github.com/my-ijet/odysee-uploader/internal/runner"
	"github.com/my-ijet/odysee-uploader/internal/session"
	"github.com/my-ijet/odysee-uploader/internal/throttle"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	for _, dir := range []string{cfg.InboxDir, cfg.ArchiveDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatal("failed to create directory", zap.String("dir", dir), zap.Error(err))
		}
	}

	history, err := ledger.Open(cfg.LedgerPath)
	if err != nil {
		logger.Fatal("failed to open publish ledger", zap.Error(err))
	}
	defer history.Close()

	engine, err := browser.Launch(cfg.Headless, logger)
	if err != nil {
		logger.Fatal("failed to launch browser", zap.Error(err))
	}
	defer engine.Close()

	store := session.NewStore(cfg.StatePath, logger)
	run := runner.New(
		queue.NewScanner(cfg.InboxDir, logger),
		store,
		publish.NewAuthenticator(engine, store, cfg.Credentials, cfg.LoginSettle, logger),
		publish.NewWorkflow(engine, cfg.StatePath, cfg.Tags, logger),
		archive.NewArchiver(cfg.ArchiveDir, logger),
		history,
		throttle.New(cfg.Cooldown, logger),
		logger,
	)

	if err := run.Run(); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}
