package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"schedctl/internal/api"
	"schedctl/internal/prefs"
	"schedctl/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var store prefs.Store
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		logger.Warnf("preference database unavailable, settings will not persist: %v", err)
		store = prefs.NewMemoryStore()
	} else {
		defer db.Close()
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			logger.Fatalf("failed to migrate preference database: %v", err)
		}
		store = prefs.NewSQLiteStore(db)
	}

	session := api.NewSession(store)
	client := api.NewClient(config.Server.BaseURL, api.NewHTTPClient(session, config.Timeout()))
	if config.Server.RateLimit > 0 {
		client.SetRateLimit(config.Server.RateLimit)
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Client:  client,
		Session: session,
		Store:   store,
		DB:      db,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "schedctl",
		Usage:    "Admin console for the schedule sync service",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			logger.Error("not logged in, run: schedctl auth login")
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
