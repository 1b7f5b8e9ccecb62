package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/example/whiteglove/internal/config"
	"github.com/example/whiteglove/internal/handlers"
	"github.com/example/whiteglove/internal/middleware"
	"github.com/example/whiteglove/internal/platform"
	"github.com/example/whiteglove/internal/provider"
	"github.com/example/whiteglove/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *logrus.Logger, platformClient *platform.Client, providerClient *provider.Client) {
	resolver := services.NewOriginResolver(platformClient, logger)
	filter := services.NewEligibilityFilter(platformClient, cfg.ServiceLevelCodes(), logger)
	ledger := services.NewGormLedger(db)
	transformer := services.NewTransformer(cfg.SourceTag, logger)
	pipeline := services.NewPipeline(resolver, filter, ledger, transformer, providerClient, cfg.ServiceLevelCodes(), logger)
	rateService := services.NewRateService(filter, providerClient, cfg, logger)

	webhookHandler := handlers.NewWebhookHandler(db, pipeline, logger)
	ratesHandler := handlers.NewRatesHandler(db, rateService, logger)
	retailerHandler := handlers.NewRetailerHandler(db)

	api := app.Group("/api")

	// Fulfillment event intake
	webhooks := api.Group("/webhooks", middleware.WebhookVerification(cfg.PlatformWebhookSecret))
	webhooks.Post("/fulfillments", webhookHandler.HandleFulfillment)

	// Checkout-time rate quoting
	api.Post("/rates", ratesHandler.Quote)

	// Tenant management
	retailers := api.Group("/retailers")
	retailers.Post("/", retailerHandler.Create)
	retailers.Put("/:shop/settings", retailerHandler.UpdateSettings)
	retailers.Get("/:shop/submissions", retailerHandler.ListSubmissions)
}
