package services

import (
	"github.com/sirupsen/logrus"

	"github.com/example/whiteglove/internal/models"
)

// OriginStatus classifies how good the resolved ship-from data is.
type OriginStatus int

const (
	// OriginUnresolved means no location data could be found at all.
	OriginUnresolved OriginStatus = iota
	// OriginPartial means a location was found but some fields are missing.
	OriginPartial
	// OriginComplete means every field downstream cares about is present.
	OriginComplete
)

// OriginResolution is the outcome of one line item's origin lookup.
// Resolution never fails outright: downstream construction always gets a
// location value, empty in the worst case.
type OriginResolution struct {
	Location models.OriginLocation
	Status   OriginStatus
}

const defaultLocationLimit = 10

// OriginResolver resolves a line item's ship-from address through a
// three-tier fallback chain: the origin already on the item, the matching
// fulfillment's registered location, then the tenant's location list.
type OriginResolver struct {
	locations LocationAPI
	logger    *logrus.Logger
}

// NewOriginResolver builds an OriginResolver.
func NewOriginResolver(locations LocationAPI, logger *logrus.Logger) *OriginResolver {
	return &OriginResolver{locations: locations, logger: logger}
}

// Resolve returns the best-available origin for item. Tiers two and three
// each issue one platform query; tier one issues none.
func (r *OriginResolver) Resolve(item models.LineItem, fulfillments []models.Fulfillment, session models.Session) OriginResolution {
	if item.OriginLocation != nil && originComplete(*item.OriginLocation) {
		return OriginResolution{Location: *item.OriginLocation, Status: OriginComplete}
	}

	if resolved, ok := r.fromFulfillmentLocation(item, fulfillments, session); ok {
		return resolved
	}

	return r.fromRegisteredLocations(item, session)
}

// fromFulfillmentLocation maps the location of the fulfillment that covers
// this line item. Only a fully mapped address counts; anything less falls
// through to the registered-location tier.
func (r *OriginResolver) fromFulfillmentLocation(item models.LineItem, fulfillments []models.Fulfillment, session models.Session) (OriginResolution, bool) {
	for _, f := range fulfillments {
		if f.LocationID == 0 || !fulfillmentCovers(f, item.ID) {
			continue
		}

		location, err := r.locations.Location(session, f.LocationID)
		if err != nil {
			r.logger.WithFields(logrus.Fields{
				"shop":        session.Shop,
				"line_item":   item.ID,
				"location_id": f.LocationID,
			}).Warnf("fulfillment location lookup failed: %v", err)
			return OriginResolution{}, false
		}

		mapped := mapLocation(*location)
		if mapped.Address1 != "" && mapped.City != "" && mapped.ProvinceCode != "" && mapped.Zip != "" && mapped.Phone != "" {
			status := OriginPartial
			if originComplete(mapped) {
				status = OriginComplete
			}
			return OriginResolution{Location: mapped, Status: status}, true
		}
		return OriginResolution{}, false
	}

	return OriginResolution{}, false
}

// fromRegisteredLocations is the last-resort tier: the first "complete
// enough" registered location, else the very first one with empty-string
// substitutions. A missing city becomes a single space so downstream
// non-empty checks still pass.
func (r *OriginResolver) fromRegisteredLocations(item models.LineItem, session models.Session) OriginResolution {
	locations, err := r.locations.Locations(session, defaultLocationLimit)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"shop":      session.Shop,
			"line_item": item.ID,
		}).Warnf("registered location lookup failed: %v", err)
		locations = nil
	}

	if len(locations) == 0 {
		r.logger.WithFields(logrus.Fields{
			"shop":      session.Shop,
			"line_item": item.ID,
		}).Warn("no registered locations, origin left empty")
		return OriginResolution{Status: OriginUnresolved}
	}

	for _, loc := range locations {
		if loc.Address1 != "" && loc.City != "" && loc.Zip != "" && loc.Phone != "" {
			mapped := mapLocation(loc)
			status := OriginPartial
			if originComplete(mapped) {
				status = OriginComplete
			}
			return OriginResolution{Location: mapped, Status: status}
		}
	}

	first := mapLocation(locations[0])
	if first.City == "" {
		first.City = " "
	}
	return OriginResolution{Location: first, Status: OriginPartial}
}

func mapLocation(loc models.Location) models.OriginLocation {
	return models.OriginLocation{
		Address1:     loc.Address1,
		Address2:     loc.Address2,
		City:         loc.City,
		ProvinceCode: loc.ProvinceCode,
		Zip:          loc.Zip,
		Name:         loc.Name,
		Phone:        loc.Phone,
	}
}

func originComplete(o models.OriginLocation) bool {
	return o.Address1 != "" && o.City != "" && o.ProvinceCode != "" && o.Zip != "" && o.Name != "" && o.Phone != ""
}

func fulfillmentCovers(f models.Fulfillment, lineItemID int64) bool {
	for _, li := range f.LineItems {
		if li.ID == lineItemID {
			return true
		}
	}
	return false
}
