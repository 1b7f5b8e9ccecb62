package services

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/example/whiteglove/internal/models"
)

// State is the terminal outcome of one fulfillment event.
type State string

const (
	// StateRejected means the order's service code is not one of ours.
	StateRejected State = "rejected"
	// StateDuplicate means the ledger already holds a claim for the order.
	StateDuplicate State = "duplicate"
	// StateSubmitted means the order document reached the provider.
	StateSubmitted State = "submitted"
	// StateFailed means a hard failure stopped the pipeline.
	StateFailed State = "failed"
)

const fulfillmentSuccess = "success"

// Pipeline orchestrates one fulfillment-completion event: classify the
// service code, resolve origins, filter eligible items, claim the dedupe
// ledger, transform and submit.
type Pipeline struct {
	resolver    *OriginResolver
	filter      *EligibilityFilter
	ledger      Ledger
	transformer *Transformer
	submitter   OrderSubmitter
	codes       map[string]struct{}
	logger      *logrus.Logger
}

// NewPipeline builds a Pipeline accepting the given service-level codes.
func NewPipeline(resolver *OriginResolver, filter *EligibilityFilter, ledger Ledger, transformer *Transformer, submitter OrderSubmitter, codes []string, logger *logrus.Logger) *Pipeline {
	codeSet := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		codeSet[c] = struct{}{}
	}
	return &Pipeline{
		resolver:    resolver,
		filter:      filter,
		ledger:      ledger,
		transformer: transformer,
		submitter:   submitter,
		codes:       codeSet,
		logger:      logger,
	}
}

// HandleEvent runs the pipeline to a terminal state. Rejection and
// duplicate delivery are clean no-ops; only ledger and submission failures
// return an error.
func (p *Pipeline) HandleEvent(retailer *models.Retailer, eventID string, rawBody []byte) (State, error) {
	fields := logrus.Fields{
		"shop":     retailer.ShopDomain,
		"event_id": eventID,
	}

	var order models.WebhookOrder
	if err := json.Unmarshal(rawBody, &order); err != nil {
		p.logger.WithFields(fields).Errorf("event body unparseable: %v", err)
		return StateFailed, fmt.Errorf("parse event body: %w", err)
	}
	fields["order_id"] = order.ID

	code := order.FirstShippingCode()
	if _, ok := p.codes[code]; !ok {
		p.logger.WithFields(fields).WithField("code", code).Info("service code not ours, event dropped")
		return StateRejected, nil
	}

	session := retailer.Session()
	p.resolveOrigins(&order, session)

	items, err := p.filter.Filter(order.LineItems, session)
	if err != nil {
		// Tolerated: proceed with the unfiltered set.
		p.logger.WithFields(fields).Warnf("eligibility filter failed, keeping all items: %v", err)
		items = order.LineItems
	}

	fresh, err := p.ledger.MarkIfNew(retailer.ShopDomain, order.ID, eventID)
	if err != nil {
		// Without a confirmed claim, submitting risks a double order.
		p.logger.WithFields(fields).Errorf("ledger claim failed: %v", err)
		return StateFailed, err
	}
	if !fresh {
		p.logger.WithFields(fields).Info("duplicate event, already submitted")
		return StateDuplicate, nil
	}

	doc := p.transformer.BuildOrder(&order, items, retailer)

	result, err := p.submitter.SubmitOrder(doc)
	if err != nil {
		p.logger.WithFields(fields).Errorf("provider submission failed, manual replay needed: %v", err)
		return StateFailed, fmt.Errorf("submit order %d: %w", order.ID, err)
	}

	if err := p.ledger.AttachProviderOrder(retailer.ShopDomain, order.ID, result.OrderID); err != nil {
		p.logger.WithFields(fields).Warnf("recording provider order id failed: %v", err)
	}

	p.logger.WithFields(fields).WithField("provider_order", result.OrderID).Info("order submitted")
	return StateSubmitted, nil
}

// resolveOrigins updates the origin of every line item covered by a
// successful fulfillment. Other fulfillments stay in the order untouched.
func (p *Pipeline) resolveOrigins(order *models.WebhookOrder, session models.Session) {
	covered := make(map[int64]struct{})
	for _, f := range order.Fulfillments {
		if f.Status != fulfillmentSuccess {
			continue
		}
		for _, li := range f.LineItems {
			covered[li.ID] = struct{}{}
		}
	}

	for i := range order.LineItems {
		if _, ok := covered[order.LineItems[i].ID]; !ok {
			continue
		}
		resolution := p.resolver.Resolve(order.LineItems[i], order.Fulfillments, session)
		location := resolution.Location
		order.LineItems[i].OriginLocation = &location

		if resolution.Status != OriginComplete {
			p.logger.WithFields(logrus.Fields{
				"shop":      session.Shop,
				"order_id":  order.ID,
				"line_item": order.LineItems[i].ID,
			}).Info("origin resolved with partial data")
		}
	}
}
