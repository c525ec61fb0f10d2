package main

import (
	"log"

	"github.com/roygutt18/quiteSlot/cmd"
	"github.com/roygutt18/quiteSlot/internal/remote"
	"github.com/roygutt18/quiteSlot/internal/session"
	"github.com/roygutt18/quiteSlot/internal/wire"
	"github.com/roygutt18/quiteSlot/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Each wizard session talks to the booking API through its own client, so
	// remote auth cookies never leak between browsers.
	factory := func() (*remote.Client, error) {
		return remote.NewClient(config.Booking.BaseURL, config.Booking.Timeout(), logger)
	}

	manager := session.NewManager(factory, config.Session.TTL(), config.OTP.ResendCooldown(), logger)
	defer manager.Close()

	// Wire all dependencies
	app := wire.Wiring(manager, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
