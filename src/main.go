package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"

	"tunesmith/src/features/config"
	"tunesmith/src/features/generating"
	"tunesmith/src/features/hosting"
	"tunesmith/src/features/logging"
	"tunesmith/src/features/playlisting"
	"tunesmith/src/features/statistics"
	"tunesmith/src/infra/gemini"
	"tunesmith/src/infra/sessions"
	"tunesmith/src/infra/spotify"
)

func main() {
	// Load configuration
	cfgManager, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Setup default logger with slog
	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	// Create the generating service
	geminiClient := gemini.NewClient(cfgManager)
	generatingService := generating.NewService(geminiClient)

	// Create the playlisting service
	sessionStore := sessions.NewInMemoryStore()
	spotifyClient := spotify.NewClient(cfgManager)
	playlistingService := playlisting.NewService(sessionStore, spotifyClient)

	// Create the statistics service
	statisticsService := statistics.NewService()

	// Create and start the HTTP server
	server := hosting.NewServer(cfgManager, generatingService, playlistingService, statisticsService)
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()
	slog.Info("Server started. Press Ctrl+C to shut down.",
		"host", cfgManager.Get().Server.Host,
		"port", cfgManager.Get().Server.Port,
	)

	// Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	slog.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		log.Fatalf("failed to shutdown server: %v", err)
	}
	slog.Info("Server gracefully shut down.")
}
