package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/example/whiteglove/internal/models"
	"github.com/example/whiteglove/internal/utils"
)

// RetailerHandler manages tenant records and their submission history.
type RetailerHandler struct {
	db       *gorm.DB
	validate *validator.Validate
}

// NewRetailerHandler constructs RetailerHandler.
func NewRetailerHandler(db *gorm.DB) *RetailerHandler {
	return &RetailerHandler{db: db, validate: validator.New()}
}

type createRetailerRequest struct {
	ShopDomain   string `json:"shop_domain" validate:"required,hostname"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	ProvinceCode string `json:"province_code"`
	Zip          string `json:"zip"`
	AccessToken  string `json:"access_token" validate:"required"`
	DeliveryType int    `json:"delivery_type" validate:"oneof=1 2"`
	PricingType  string `json:"pricing_type"`
}

// Create registers a new retailer on signup. Payment settings start at
// PAID_BY_CUSTOMER and are adjusted later through UpdateSettings.
func (h *RetailerHandler) Create(c *fiber.Ctx) error {
	var req createRetailerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	retailer := models.Retailer{
		ShopDomain:   req.ShopDomain,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address1:     req.Address1,
		Address2:     req.Address2,
		City:         req.City,
		ProvinceCode: req.ProvinceCode,
		Zip:          req.Zip,
		AccessToken:  req.AccessToken,
		DeliveryType: req.DeliveryType,
		PricingType:  req.PricingType,
		PaymentType:  models.PaymentPaidByCustomer,
	}

	if err := h.db.Create(&retailer).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": retailer})
}

type updateSettingsRequest struct {
	DeliveryType  *int    `json:"delivery_type" validate:"omitempty,oneof=1 2"`
	PricingType   *string `json:"pricing_type"`
	PaymentType   *string `json:"payment_type" validate:"omitempty,oneof=PAID_BY_CUSTOMER PAID_BY_SHIPPER SPLIT FIXED ROUND_NEAREST_NUMBER"`
	SplitRatio    *int64  `json:"split_ratio" validate:"omitempty,min=0,max=100"`
	FixedAmount   *int64  `json:"fixed_amount" validate:"omitempty,min=0"`
	RoundNearest  []int64 `json:"round_nearest"`
	CeilingActive *bool   `json:"ceiling_active"`
	CeilingAmount *int64  `json:"ceiling_amount" validate:"omitempty,min=0"`
}

// UpdateSettings mutates a retailer's delivery and payment settings.
func (h *RetailerHandler) UpdateSettings(c *fiber.Ctx) error {
	shop := c.Params("shop")

	var retailer models.Retailer
	if err := h.db.First(&retailer, "shop_domain = ?", shop).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "retailer not found")
		}
		return err
	}

	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if req.DeliveryType != nil {
		retailer.DeliveryType = *req.DeliveryType
	}
	if req.PricingType != nil {
		retailer.PricingType = *req.PricingType
	}
	if req.PaymentType != nil {
		retailer.PaymentType = *req.PaymentType
	}
	if req.SplitRatio != nil {
		retailer.SplitRatio = *req.SplitRatio
	}
	if req.FixedAmount != nil {
		retailer.FixedAmount = *req.FixedAmount
	}
	if req.RoundNearest != nil {
		retailer.RoundNearest = pq.Int64Array(req.RoundNearest)
	}
	if req.CeilingActive != nil {
		retailer.CeilingActive = *req.CeilingActive
	}
	if req.CeilingAmount != nil {
		retailer.CeilingAmount = *req.CeilingAmount
	}

	if err := h.db.Save(&retailer).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": retailer})
}

// ListSubmissions returns the retailer's idempotency ledger entries, newest
// first. Operators use this to confirm what reached the provider.
func (h *RetailerHandler) ListSubmissions(c *fiber.Ctx) error {
	shop := c.Params("shop")
	pg := utils.ParsePagination(c)

	query := h.db.Model(&models.Submission{}).Where("shop_domain = ?", shop)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var submissions []models.Submission
	if err := query.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&submissions).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    submissions,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
			"total_pages":    pg.TotalPages(total),
		},
	})
}
