package services

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/example/whiteglove/internal/models"
	"github.com/example/whiteglove/internal/platform"
)

// EligibilityFilter keeps only the line items whose product tags intersect
// the configured service-level codes, attaching the matched tags.
type EligibilityFilter struct {
	products ProductAPI
	codes    []string
	logger   *logrus.Logger
}

// NewEligibilityFilter builds an EligibilityFilter.
func NewEligibilityFilter(products ProductAPI, codes []string, logger *logrus.Logger) *EligibilityFilter {
	return &EligibilityFilter{products: products, codes: codes, logger: logger}
}

// Filter returns the eligible subset of items in input order. Products the
// platform cannot find are dropped with a log line. An error is returned
// only when every tag lookup failed, so callers can fall back to the
// unfiltered set.
func (f *EligibilityFilter) Filter(items []models.LineItem, session models.Session) ([]models.LineItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	productIDs := distinctProductIDs(items)

	// Tag lookups share no state, so they run concurrently and merge by
	// product id.
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		tags   = make(map[int64][]string, len(productIDs))
		failed int
	)

	for _, id := range productIDs {
		wg.Add(1)
		go func(productID int64) {
			defer wg.Done()

			productTags, err := f.products.ProductTags(session, productID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, platform.ErrNotFound):
				// Unknown products are simply not eligible.
				f.logger.WithFields(logrus.Fields{
					"shop":    session.Shop,
					"product": productID,
				}).Info("product not found, item dropped")
			case err != nil:
				failed++
				f.logger.WithFields(logrus.Fields{
					"shop":    session.Shop,
					"product": productID,
				}).Infof("product tag lookup failed, item dropped: %v", err)
			default:
				tags[productID] = productTags
			}
		}(id)
	}
	wg.Wait()

	if failed == len(productIDs) {
		return nil, errors.New("all product tag lookups failed")
	}

	eligible := make([]models.LineItem, 0, len(items))
	for _, item := range items {
		matched := intersect(tags[item.ProductID], f.codes)
		if len(matched) == 0 {
			continue
		}
		item.Tags = matched
		eligible = append(eligible, item)
	}

	return eligible, nil
}

func distinctProductIDs(items []models.LineItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

// intersect keeps the elements of tags that appear in codes, preserving
// tag order.
func intersect(tags, codes []string) []string {
	if len(tags) == 0 || len(codes) == 0 {
		return nil
	}

	valid := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		valid[c] = struct{}{}
	}

	var matched []string
	for _, t := range tags {
		if _, ok := valid[t]; ok {
			matched = append(matched, t)
		}
	}
	return matched
}
