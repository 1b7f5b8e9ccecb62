package services

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/example/whiteglove/internal/config"
	"github.com/example/whiteglove/internal/models"
	"github.com/example/whiteglove/internal/provider"
)

// RateService answers checkout-time quote requests: which service levels
// apply to this cart and what does each cost the customer.
type RateService struct {
	filter *EligibilityFilter
	rates  RateAPI
	cfg    *config.Config
	logger *logrus.Logger
}

// NewRateService builds a RateService.
func NewRateService(filter *EligibilityFilter, rates RateAPI, cfg *config.Config, logger *logrus.Logger) *RateService {
	return &RateService{filter: filter, rates: rates, cfg: cfg, logger: logger}
}

// Quote computes customer-facing prices for every service level matched by
// the cart. One level's failure only omits that level; the returned slice
// may be empty but the call itself never fails checkout.
func (s *RateService) Quote(retailer *models.Retailer, originZip, destinationZip, currency string, items []models.LineItem) []models.ServiceLevel {
	quoted := make([]models.ServiceLevel, 0, len(s.cfg.ServiceLevels))

	eligible, err := s.filter.Filter(items, retailer.Session())
	if err != nil {
		s.logger.WithField("shop", retailer.ShopDomain).Warnf("quote eligibility filter failed: %v", err)
		return quoted
	}
	if len(eligible) == 0 {
		return quoted
	}

	codes := distinctCodes(eligible)
	settings := retailer.PaymentSettings()

	rateItems := make([]provider.RateItem, 0, len(eligible))
	for _, item := range eligible {
		rateItems = append(rateItems, provider.RateItem{
			ProductID: item.ProductID,
			Grams:     item.Grams,
			Quantity:  item.Quantity,
		})
	}

	// Each level's rate query and strategy computation is independent, so
	// they run concurrently and failures stay isolated.
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		prices = make(map[string]int64, len(codes))
	)

	for _, code := range codes {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()

			rate, err := s.rates.QuoteRate(provider.RateRequest{
				ServiceLevel:   code,
				OriginZip:      originZip,
				DestinationZip: destinationZip,
				Currency:       currency,
				Items:          rateItems,
			})
			if err != nil {
				s.logger.WithFields(logrus.Fields{
					"shop": retailer.ShopDomain,
					"code": code,
				}).Warnf("rate query failed, level omitted: %v", err)
				return
			}

			price, ok := ComputePrice(*rate, settings)
			if !ok {
				s.logger.WithFields(logrus.Fields{
					"shop": retailer.ShopDomain,
					"code": code,
				}).Warn("price calculation failed, level omitted")
				return
			}

			mu.Lock()
			prices[code] = price
			mu.Unlock()
		}(code)
	}
	wg.Wait()

	// Emit in catalog order so the checkout list is stable.
	for _, sl := range s.cfg.ServiceLevels {
		price, ok := prices[sl.Code]
		if !ok {
			continue
		}
		total := price
		sl.TotalPrice = &total
		quoted = append(quoted, sl)
	}

	return quoted
}

func distinctCodes(items []models.LineItem) []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, item := range items {
		for _, tag := range item.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			codes = append(codes, tag)
		}
	}
	return codes
}
