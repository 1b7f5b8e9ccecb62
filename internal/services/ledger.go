package services

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/whiteglove/internal/models"
)

// Ledger is the idempotency ledger: an insert-only set of (shop, order)
// pairs already claimed for submission.
type Ledger interface {
	// MarkIfNew atomically claims (shopDomain, orderID). Exactly one caller
	// observes true for a given key; every later or concurrent duplicate
	// observes false. A storage error means "unknown" and callers must not
	// submit.
	MarkIfNew(shopDomain string, orderID int64, eventID string) (bool, error)

	// AttachProviderOrder records the provider's order id on an existing
	// claim. Best-effort observability, not part of the dedupe contract.
	AttachProviderOrder(shopDomain string, orderID int64, providerOrderID string) error
}

// GormLedger persists claims in the submissions table. The conditional
// insert is a single ON CONFLICT DO NOTHING statement so two in-flight
// handlers racing on the same order cannot both win.
type GormLedger struct {
	db *gorm.DB
}

// NewGormLedger builds a GormLedger.
func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (l *GormLedger) MarkIfNew(shopDomain string, orderID int64, eventID string) (bool, error) {
	record := models.Submission{
		ShopDomain: shopDomain,
		OrderID:    orderID,
		EventID:    eventID,
	}

	result := l.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
	if result.Error != nil {
		return false, fmt.Errorf("claim submission %s/%d: %w", shopDomain, orderID, result.Error)
	}

	return result.RowsAffected == 1, nil
}

func (l *GormLedger) AttachProviderOrder(shopDomain string, orderID int64, providerOrderID string) error {
	return l.db.Model(&models.Submission{}).
		Where("shop_domain = ? AND order_id = ?", shopDomain, orderID).
		Update("provider_order_id", providerOrderID).Error
}

// MemoryLedger keeps claims in process memory. Used in tests and local
// development; same contract as GormLedger.
type MemoryLedger struct {
	mu     sync.Mutex
	claims map[string]struct{}
}

// NewMemoryLedger builds an empty MemoryLedger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{claims: make(map[string]struct{})}
}

func (l *MemoryLedger) MarkIfNew(shopDomain string, orderID int64, eventID string) (bool, error) {
	key := fmt.Sprintf("%s/%d", shopDomain, orderID)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.claims[key]; exists {
		return false, nil
	}
	l.claims[key] = struct{}{}
	return true, nil
}

func (l *MemoryLedger) AttachProviderOrder(shopDomain string, orderID int64, providerOrderID string) error {
	return nil
}
