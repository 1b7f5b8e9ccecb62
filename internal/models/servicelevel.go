package models

// ServiceLevel is a static catalog entry for one delivery tier. TotalPrice
// is quote-scoped: annotated per rate request, never persisted.
type ServiceLevel struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Currency    string `json:"currency"`
	TotalPrice  *int64 `json:"total_price,omitempty"`
}

// RateResult is the provider's raw rate response for one service level.
type RateResult struct {
	Cost            int64                     `json:"cost"`
	AccessorialFees map[string]AccessorialFee `json:"accessorial_fees"`
}

// AccessorialFee is a special-handling surcharge (stairs, lift-gate, ...).
type AccessorialFee struct {
	Cost int64 `json:"cost"`
}
