package main

import (
	"context"
	"os"

	"github.com/cratesync/cratesync/internal/services"
	"github.com/cratesync/cratesync/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	config.ApplyEnv()

	var service services.Service
	if config.HasCredentials() {
		opts := &services.SpotifyOpts{
			Timeout:   config.Timeout(),
			RateLimit: config.Network.RateLimit,
		}
		if svc, err := services.NewSpotifyService(config.Spotify.ClientID, config.Spotify.ClientSecret, opts); err == nil {
			service = svc
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: "config.toml",
		Service:    service,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "cratesync",
		Usage:    "Sync Spotify playlists into curated CSV sheets",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
