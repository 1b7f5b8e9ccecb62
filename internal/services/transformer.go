package services

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/example/whiteglove/internal/models"
)

const (
	defaultServiceLevel = "STANDARD"
	gramsPerPound       = 453.592
)

// Transformer assembles the provider's order document from platform order
// data, resolved origins and customer data. It always returns a document;
// completeness problems are logged, never fatal.
type Transformer struct {
	source string
	logger *logrus.Logger
}

// NewTransformer builds a Transformer tagging documents with source.
func NewTransformer(source string, logger *logrus.Logger) *Transformer {
	return &Transformer{source: source, logger: logger}
}

// BuildOrder maps the platform order and its resolved line items into the
// downstream document for retailer.
func (t *Transformer) BuildOrder(order *models.WebhookOrder, items []models.LineItem, retailer *models.Retailer) *models.DownstreamOrder {
	serviceLevel := order.FirstShippingCode()
	if serviceLevel == "" {
		serviceLevel = defaultServiceLevel
	}

	doc := &models.DownstreamOrder{
		Source:               t.source,
		SalesOrderNumber:     order.Name,
		ReferenceOrderNumber: strconv.FormatInt(order.OrderNumber, 10),
		Customer:             t.buildCustomer(order),
		LineItems:            t.buildLineItems(items, retailer),
		RetailerID:           retailer.ShopDomain,
		ServiceLevel:         serviceLevel,
		RawPayload: models.RawOrderPayload{
			OrderID:         order.ID,
			Name:            order.Name,
			OrderNumber:     order.OrderNumber,
			Email:           order.Customer.Email,
			Phone:           order.Customer.Phone,
			ShippingAddress: order.ShippingAddress,
			LineItemCount:   len(order.LineItems),
		},
	}

	t.diagnose(doc, order)
	return doc
}

func (t *Transformer) buildLineItems(items []models.LineItem, retailer *models.Retailer) []models.DownstreamLineItem {
	result := make([]models.DownstreamLineItem, 0, len(items))
	for _, item := range items {
		sku := item.SKU
		if sku == "" {
			sku = strconv.FormatInt(item.ProductID, 10)
		}

		origin := models.OriginLocation{}
		if item.OriginLocation != nil {
			origin = *item.OriginLocation
		}

		vendorName := origin.Name
		if vendorName == "" {
			vendorName = item.Vendor
		}

		result = append(result, models.DownstreamLineItem{
			SKU:         sku,
			Name:        item.Title,
			Quantity:    item.Quantity,
			RetailValue: item.Price,
			WeightLbs:   gramsToPounds(item.Grams),
			Vendor:      item.Vendor,
			FreightInfo: models.FreightInfo{
				IsFOB: retailer.DeliveryType == models.DeliveryLastMileOnly,
				VendorInfo: models.VendorInfo{
					Name:  vendorName,
					Phone: origin.Phone,
					Address: models.DownstreamAddress{
						Address1:     origin.Address1,
						Address2:     origin.Address2,
						City:         origin.City,
						ProvinceCode: origin.ProvinceCode,
						Zip:          origin.Zip,
					},
				},
			},
		})
	}
	return result
}

func (t *Transformer) buildCustomer(order *models.WebhookOrder) models.DownstreamCustomer {
	address := order.ShippingAddress
	if address == nil {
		address = order.CustomerAddress
	}

	customer := models.DownstreamCustomer{
		Name:    strings.TrimSpace(order.Customer.FirstName + " " + order.Customer.LastName),
		Company: "",
		Email:   order.Customer.Email,
	}

	if address != nil {
		if customer.Name == "" {
			customer.Name = strings.TrimSpace(address.FirstName + " " + address.LastName)
		}
		customer.Address = models.DownstreamAddress{
			Address1:     address.Address1,
			Address2:     address.Address2,
			City:         address.City,
			ProvinceCode: address.ProvinceCode,
			Zip:          address.Zip,
		}
		customer.Phone = address.Phone
	}

	if customer.Phone == "" {
		customer.Phone = order.Customer.Phone
	}

	return customer
}

// gramsToPounds converts grams to pounds rounded to two decimals.
func gramsToPounds(grams float64) float64 {
	return decimal.NewFromFloat(grams).
		Div(decimal.NewFromFloat(gramsPerPound)).
		Round(2).
		InexactFloat64()
}

// diagnose logs completeness warnings on the assembled document. None of
// these block submission.
func (t *Transformer) diagnose(doc *models.DownstreamOrder, order *models.WebhookOrder) {
	fields := logrus.Fields{
		"order_id":   order.ID,
		"order_name": order.Name,
	}

	if doc.Customer.Address.Address1 == "" || doc.Customer.Address.City == "" || doc.Customer.Address.Zip == "" {
		t.logger.WithFields(fields).Warn("customer address incomplete")
	}
	if doc.Customer.Phone == "" {
		t.logger.WithFields(fields).Warn("customer phone missing")
	}
	if len(doc.LineItems) == 0 {
		t.logger.WithFields(fields).Warn("order document has no line items")
	}
	for _, item := range doc.LineItems {
		addr := item.FreightInfo.VendorInfo.Address
		if addr.Address1 == "" || addr.City == "" || addr.Zip == "" {
			t.logger.WithFields(fields).WithField("sku", item.SKU).Warn("vendor address incomplete")
		}
	}
	if doc.RawPayload.Email == "" && doc.RawPayload.Phone == "" {
		t.logger.WithFields(fields).Warn("raw payload missing customer contact")
	}
}
