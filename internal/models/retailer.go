package models

import (
	"github.com/lib/pq"
)

// Delivery types offered by the provider.
const (
	DeliveryLastMileOnly = 1
	DeliveryFullService  = 2
)

// Payment strategies controlling how much of the calculated rate the
// customer pays at checkout.
const (
	PaymentPaidByCustomer = "PAID_BY_CUSTOMER"
	PaymentPaidByShipper  = "PAID_BY_SHIPPER"
	PaymentSplit          = "SPLIT"
	PaymentFixed          = "FIXED"
	PaymentRoundNearest   = "ROUND_NEAREST_NUMBER"
)

// Retailer is one tenant of the integration, keyed by its platform shop
// domain. Created on signup, mutated on settings changes, never deleted.
type Retailer struct {
	BaseModel
	ShopDomain   string `gorm:"uniqueIndex" json:"shop_domain"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	ProvinceCode string `json:"province_code"`
	Zip          string `json:"zip"`
	AccessToken  string `json:"-"`
	DeliveryType int    `json:"delivery_type"`
	PricingType  string `json:"pricing_type"`

	// Payment settings. SplitRatio is the merchant's share in percent,
	// FixedAmount is in dollars, RoundNearest and CeilingAmount in cents.
	PaymentType   string        `json:"payment_type"`
	SplitRatio    int64         `json:"split_ratio"`
	FixedAmount   int64         `json:"fixed_amount"`
	RoundNearest  pq.Int64Array `gorm:"type:bigint[]" json:"round_nearest"`
	CeilingActive bool          `json:"ceiling_active"`
	CeilingAmount int64         `json:"ceiling_amount"`
}

// PaymentSettings is the slice of the retailer record the price strategy
// engine reads. Kept as a plain value so pricing stays storage-free.
type PaymentSettings struct {
	Type          string
	SplitRatio    int64
	FixedAmount   int64
	RoundNearest  []int64
	CeilingActive bool
	CeilingAmount int64
}

// PaymentSettings projects the strategy-relevant columns.
func (r *Retailer) PaymentSettings() PaymentSettings {
	return PaymentSettings{
		Type:          r.PaymentType,
		SplitRatio:    r.SplitRatio,
		FixedAmount:   r.FixedAmount,
		RoundNearest:  r.RoundNearest,
		CeilingActive: r.CeilingActive,
		CeilingAmount: r.CeilingAmount,
	}
}

// Session carries the per-tenant credentials handed to platform API calls.
func (r *Retailer) Session() Session {
	return Session{Shop: r.ShopDomain, AccessToken: r.AccessToken}
}

// Session identifies a tenant against the platform API.
type Session struct {
	Shop        string
	AccessToken string
}
