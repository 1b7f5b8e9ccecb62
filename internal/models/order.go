package models

// Transient wire shapes of the platform's order webhook payload. Received
// once per event, transformed, then discarded; nothing here is persisted.

// WebhookOrder is the order document carried by a fulfillment event.
type WebhookOrder struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	OrderNumber     int64          `json:"order_number"`
	Customer        OrderCustomer  `json:"customer"`
	ShippingAddress *Address       `json:"shipping_address"`
	CustomerAddress *Address       `json:"customer_address"`
	LineItems       []LineItem     `json:"line_items"`
	Fulfillments    []Fulfillment  `json:"fulfillments"`
	ShippingLines   []ShippingLine `json:"shipping_lines"`
}

// OrderCustomer holds the buyer's identity fields.
type OrderCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Address is a platform postal address.
type Address struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	ProvinceCode string `json:"province_code"`
	Zip          string `json:"zip"`
	Phone        string `json:"phone"`
}

// LineItem is one order line. OriginLocation is filled in (or replaced)
// by the origin resolver before transformation; Tags is attached by the
// eligibility filter.
type LineItem struct {
	ID             int64           `json:"id"`
	SKU            string          `json:"sku"`
	Title          string          `json:"title"`
	Quantity       int             `json:"quantity"`
	Price          int64           `json:"price"`
	Grams          float64         `json:"grams"`
	Vendor         string          `json:"vendor"`
	ProductID      int64           `json:"product_id"`
	OriginLocation *OriginLocation `json:"origin_location,omitempty"`
	Tags           []string        `json:"tags,omitempty"`
}

// OriginLocation is the warehouse/vendor ship-from address for a line item.
type OriginLocation struct {
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	ProvinceCode string `json:"province_code"`
	Zip          string `json:"zip"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
}

// Fulfillment records one (possibly partial) shipment of the order.
type Fulfillment struct {
	ID         int64             `json:"id"`
	Status     string            `json:"status"`
	LocationID int64             `json:"location_id"`
	LineItems  []FulfillmentItem `json:"line_items"`
}

// FulfillmentItem references a line item covered by a fulfillment.
type FulfillmentItem struct {
	ID int64 `json:"id"`
}

// ShippingLine carries the shipping method selected at checkout.
type ShippingLine struct {
	Code string `json:"code"`
}

// FirstShippingCode returns the order's service code, or "" when absent.
func (o *WebhookOrder) FirstShippingCode() string {
	if len(o.ShippingLines) == 0 {
		return ""
	}
	return o.ShippingLines[0].Code
}

// Location is a tenant-registered warehouse/store returned by the
// platform's location API.
type Location struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	ProvinceCode string `json:"province_code"`
	Zip          string `json:"zip"`
	Phone        string `json:"phone"`
}
