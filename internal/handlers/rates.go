package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/example/whiteglove/internal/models"
	"github.com/example/whiteglove/internal/services"
)

// RatesHandler answers checkout-time shipping rate requests.
type RatesHandler struct {
	db       *gorm.DB
	rates    *services.RateService
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewRatesHandler constructs RatesHandler.
func NewRatesHandler(db *gorm.DB, rates *services.RateService, logger *logrus.Logger) *RatesHandler {
	return &RatesHandler{
		db:       db,
		rates:    rates,
		validate: validator.New(),
		logger:   logger,
	}
}

type rateRequestItem struct {
	ProductID int64   `json:"product_id" validate:"required"`
	Grams     float64 `json:"grams"`
	Quantity  int     `json:"quantity" validate:"min=1"`
}

type rateRequest struct {
	Rate struct {
		Origin struct {
			PostalCode string `json:"postal_code"`
		} `json:"origin"`
		Destination struct {
			PostalCode string `json:"postal_code" validate:"required"`
		} `json:"destination"`
		Items    []rateRequestItem `json:"items" validate:"required,min=1,dive"`
		Currency string            `json:"currency"`
	} `json:"rate"`
}

// Quote returns customer-facing prices for the cart. This endpoint sits in
// the checkout's critical path: any failure degrades to an empty rate list
// with HTTP 200, never a checkout error.
func (h *RatesHandler) Quote(c *fiber.Ctx) error {
	empty := fiber.Map{"rates": []models.ServiceLevel{}}

	shop := c.Get("X-Platform-Shop-Domain")
	if shop == "" {
		return c.JSON(empty)
	}

	var req rateRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithField("shop", shop).Warnf("rate request unparseable: %v", err)
		return c.JSON(empty)
	}
	if err := h.validate.Struct(&req); err != nil {
		h.logger.WithField("shop", shop).Warnf("rate request invalid: %v", err)
		return c.JSON(empty)
	}

	var retailer models.Retailer
	if err := h.db.First(&retailer, "shop_domain = ?", shop).Error; err != nil {
		h.logger.WithField("shop", shop).Warnf("rate request for unknown retailer: %v", err)
		return c.JSON(empty)
	}

	items := make([]models.LineItem, 0, len(req.Rate.Items))
	for _, it := range req.Rate.Items {
		items = append(items, models.LineItem{
			ProductID: it.ProductID,
			Grams:     it.Grams,
			Quantity:  it.Quantity,
		})
	}

	quoted := h.rates.Quote(&retailer, req.Rate.Origin.PostalCode, req.Rate.Destination.PostalCode, req.Rate.Currency, items)

	return c.JSON(fiber.Map{"rates": quoted})
}
