package models

// Shapes of the order document submitted to the delivery provider.

// DownstreamOrder is the full document POSTed to the provider.
type DownstreamOrder struct {
	Source               string               `json:"source"`
	SalesOrderNumber     string               `json:"sales_order_number"`
	ReferenceOrderNumber string               `json:"reference_order_number"`
	Customer             DownstreamCustomer   `json:"customer"`
	LineItems            []DownstreamLineItem `json:"line_items"`
	RetailerID           string               `json:"retailer_id"`
	ServiceLevel         string               `json:"service_level"`
	RawPayload           RawOrderPayload      `json:"raw_payload"`
}

// DownstreamCustomer is the delivery recipient.
type DownstreamCustomer struct {
	Name     string            `json:"name"`
	Address  DownstreamAddress `json:"address"`
	Company  string            `json:"company"`
	Phone    string            `json:"phone"`
	Email    string            `json:"email"`
}

// DownstreamAddress is the provider's address shape.
type DownstreamAddress struct {
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	ProvinceCode string `json:"state"`
	Zip          string `json:"zip"`
}

// DownstreamLineItem is one deliverable item.
type DownstreamLineItem struct {
	SKU         string      `json:"sku"`
	Name        string      `json:"name"`
	Quantity    int         `json:"quantity"`
	RetailValue int64       `json:"retail_value"`
	WeightLbs   float64     `json:"weight_lbs"`
	Vendor      string      `json:"vendor"`
	FreightInfo FreightInfo `json:"freight_info"`
}

// FreightInfo describes pickup terms for a line item.
type FreightInfo struct {
	IsFOB      bool       `json:"is_fob"`
	VendorInfo VendorInfo `json:"vendor_info"`
}

// VendorInfo is the ship-from party resolved for a line item.
type VendorInfo struct {
	Name    string            `json:"name"`
	Phone   string            `json:"phone"`
	Address DownstreamAddress `json:"address"`
}

// RawOrderPayload mirrors the original platform order fields for
// provider-side audit.
type RawOrderPayload struct {
	OrderID         int64    `json:"order_id"`
	Name            string   `json:"name"`
	OrderNumber     int64    `json:"order_number"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	ShippingAddress *Address `json:"shipping_address"`
	LineItemCount   int      `json:"line_item_count"`
}

// SubmissionResult is the provider's acknowledgment of an order.
type SubmissionResult struct {
	OrderID  string `json:"order_id"`
	Tracking string `json:"tracking_number"`
}
