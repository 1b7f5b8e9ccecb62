package models

import "time"

// Submission is the idempotency ledger row: its existence means the order
// was already claimed for submission. Composite primary key, insert-only.
type Submission struct {
	ShopDomain      string    `gorm:"primaryKey" json:"shop_domain"`
	OrderID         int64     `gorm:"primaryKey" json:"order_id"`
	EventID         string    `json:"event_id"`
	ProviderOrderID string    `json:"provider_order_id"`
	CreatedAt       time.Time `json:"created_at"`
}
