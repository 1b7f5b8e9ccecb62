package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/whiteglove/internal/config"
	"github.com/example/whiteglove/internal/database"
	"github.com/example/whiteglove/internal/logging"
	"github.com/example/whiteglove/internal/platform"
	"github.com/example/whiteglove/internal/provider"
	"github.com/example/whiteglove/internal/routes"
)

func main() {
	cfg := config.Load()
	appLogger := logging.New()
	db := database.Connect(cfg.DatabaseURL)

	platformClient := platform.NewClient(cfg.PlatformAPIBase, cfg.HTTPTimeout, appLogger)
	providerClient := provider.NewClient(cfg.ProviderBaseURL, cfg.ProviderAuthURL, cfg.ProviderAPIKey, cfg.HTTPTimeout, appLogger)

	app := fiber.New(fiber.Config{
		AppName: "Whiteglove Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg, appLogger, platformClient, providerClient)

	if _, err := providerClient.Token(); err != nil {
		log.Printf("Provider token warm-up failed: %v", err)
	}

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
