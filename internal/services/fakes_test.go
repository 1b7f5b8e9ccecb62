package services

import (
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/example/whiteglove/internal/models"
	"github.com/example/whiteglove/internal/platform"
	"github.com/example/whiteglove/internal/provider"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakePlatform implements LocationAPI and ProductAPI in memory and counts
// calls so tests can assert which tiers were exercised.
type fakePlatform struct {
	mu sync.Mutex

	locations map[int64]models.Location
	list      []models.Location
	tags      map[int64][]string

	locationErr error
	listErr     error
	tagsErr     error

	locationCalls int
	listCalls     int
	tagCalls      int
}

func (f *fakePlatform) Location(session models.Session, id int64) (*models.Location, error) {
	f.mu.Lock()
	f.locationCalls++
	f.mu.Unlock()

	if f.locationErr != nil {
		return nil, f.locationErr
	}
	loc, ok := f.locations[id]
	if !ok {
		return nil, errors.New("location not found")
	}
	return &loc, nil
}

func (f *fakePlatform) Locations(session models.Session, limit int) ([]models.Location, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}
	if limit > 0 && len(f.list) > limit {
		return f.list[:limit], nil
	}
	return f.list, nil
}

func (f *fakePlatform) ProductTags(session models.Session, productID int64) ([]string, error) {
	f.mu.Lock()
	f.tagCalls++
	f.mu.Unlock()

	if f.tagsErr != nil {
		return nil, f.tagsErr
	}
	tags, ok := f.tags[productID]
	if !ok {
		return nil, platform.ErrNotFound
	}
	return tags, nil
}

// fakeSubmitter records submitted documents.
type fakeSubmitter struct {
	mu        sync.Mutex
	submitted []*models.DownstreamOrder
	err       error
}

func (f *fakeSubmitter) SubmitOrder(order *models.DownstreamOrder) (*models.SubmissionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	f.submitted = append(f.submitted, order)
	return &models.SubmissionResult{OrderID: "prov-123", Tracking: "trk-123"}, nil
}

// fakeRates returns canned rate results per service level.
type fakeRates struct {
	mu      sync.Mutex
	results map[string]models.RateResult
	errs    map[string]error
	calls   []string
}

func (f *fakeRates) QuoteRate(req provider.RateRequest) (*models.RateResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req.ServiceLevel)
	f.mu.Unlock()

	if err, ok := f.errs[req.ServiceLevel]; ok {
		return nil, err
	}
	result, ok := f.results[req.ServiceLevel]
	if !ok {
		return nil, errors.New("no rate configured")
	}
	return &result, nil
}

// failingLedger always errors, for fail-closed checks.
type failingLedger struct{}

func (failingLedger) MarkIfNew(shopDomain string, orderID int64, eventID string) (bool, error) {
	return false, errors.New("storage unavailable")
}

func (failingLedger) AttachProviderOrder(shopDomain string, orderID int64, providerOrderID string) error {
	return errors.New("storage unavailable")
}
