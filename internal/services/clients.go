package services

import (
	"github.com/example/whiteglove/internal/models"
	"github.com/example/whiteglove/internal/provider"
)

// Narrow views of the platform and provider clients, so each service
// declares only the calls it makes and tests can swap in fakes.

// LocationAPI covers the platform's location lookups.
type LocationAPI interface {
	Location(session models.Session, id int64) (*models.Location, error)
	Locations(session models.Session, limit int) ([]models.Location, error)
}

// ProductAPI covers the platform's product tag lookups.
type ProductAPI interface {
	ProductTags(session models.Session, productID int64) ([]string, error)
}

// OrderSubmitter submits assembled order documents to the provider.
type OrderSubmitter interface {
	SubmitOrder(order *models.DownstreamOrder) (*models.SubmissionResult, error)
}

// RateAPI quotes raw provider rates for one service level.
type RateAPI interface {
	QuoteRate(req provider.RateRequest) (*models.RateResult, error)
}
