package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/example/whiteglove/internal/models"
	"github.com/example/whiteglove/internal/services"
)

const fulfillmentTopic = "fulfillments/create"

// WebhookHandler receives the platform's fulfillment event notifications.
type WebhookHandler struct {
	db       *gorm.DB
	pipeline *services.Pipeline
	logger   *logrus.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(db *gorm.DB, pipeline *services.Pipeline, logger *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{db: db, pipeline: pipeline, logger: logger}
}

// HandleFulfillment acknowledges the event immediately and runs the
// pipeline in the background. The platform's redelivery plus the ledger
// cover the crash window, so a fast 200 is always the right answer here.
func (h *WebhookHandler) HandleFulfillment(c *fiber.Ctx) error {
	topic := c.Get("X-Platform-Topic")
	shop := c.Get("X-Platform-Shop-Domain")
	eventID := c.Get("X-Platform-Event-Id")
	if eventID == "" {
		eventID = uuid.NewString()
	}

	if shop == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing shop domain header")
	}

	if topic != "" && topic != fulfillmentTopic {
		h.logger.WithFields(logrus.Fields{
			"shop":  shop,
			"topic": topic,
		}).Info("unhandled webhook topic, acknowledged and dropped")
		return c.JSON(fiber.Map{"success": true})
	}

	var retailer models.Retailer
	if err := h.db.First(&retailer, "shop_domain = ?", shop).Error; err != nil {
		h.logger.WithField("shop", shop).Warnf("webhook for unknown retailer: %v", err)
		return c.JSON(fiber.Map{"success": true})
	}

	// Fiber reuses its buffers after the handler returns; the pipeline
	// needs its own copy of the body.
	body := make([]byte, len(c.Body()))
	copy(body, c.Body())

	go func() {
		if _, err := h.pipeline.HandleEvent(&retailer, eventID, body); err != nil {
			h.logger.WithFields(logrus.Fields{
				"shop":     shop,
				"event_id": eventID,
			}).Errorf("fulfillment pipeline failed: %v", err)
		}
	}()

	return c.JSON(fiber.Map{"success": true})
}
