package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/whiteglove/internal/models"
)

func testRetailer() *models.Retailer {
	return &models.Retailer{
		ShopDomain:   "shop.example.com",
		DeliveryType: models.DeliveryLastMileOnly,
	}
}

func TestBuildOrderEnvelope(t *testing.T) {
	transformer := NewTransformer("whiteglove-integration", testLogger())

	order := &models.WebhookOrder{
		ID:          1001,
		Name:        "#1001",
		OrderNumber: 1001,
		Customer: models.OrderCustomer{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Phone:     "555-0001",
		},
		ShippingAddress: &models.Address{
			Address1:     "10 Downing St",
			City:         "Boston",
			ProvinceCode: "MA",
			Zip:          "02108",
			Phone:        "555-0002",
		},
		ShippingLines: []models.ShippingLine{{Code: "wg"}},
		LineItems:     []models.LineItem{{ID: 1}},
	}

	doc := transformer.BuildOrder(order, order.LineItems, testRetailer())

	assert.Equal(t, "whiteglove-integration", doc.Source)
	assert.Equal(t, "#1001", doc.SalesOrderNumber)
	assert.Equal(t, "1001", doc.ReferenceOrderNumber)
	assert.Equal(t, "shop.example.com", doc.RetailerID)
	assert.Equal(t, "wg", doc.ServiceLevel)
	assert.Equal(t, "Ada Lovelace", doc.Customer.Name)
	assert.Equal(t, "", doc.Customer.Company)
	// Address phone wins over the stored customer phone.
	assert.Equal(t, "555-0002", doc.Customer.Phone)
	assert.Equal(t, int64(1001), doc.RawPayload.OrderID)
	assert.Equal(t, 1, doc.RawPayload.LineItemCount)
}

func TestBuildOrderDefaultServiceLevel(t *testing.T) {
	transformer := NewTransformer("src", testLogger())

	doc := transformer.BuildOrder(&models.WebhookOrder{ID: 1}, nil, testRetailer())

	assert.Equal(t, "STANDARD", doc.ServiceLevel)
}

func TestBuildOrderWeightConversion(t *testing.T) {
	transformer := NewTransformer("src", testLogger())

	items := []models.LineItem{
		{ID: 1, SKU: "A", Grams: 453.592},
		{ID: 2, SKU: "B", Grams: 1000},
		{ID: 3, SKU: "C", Grams: 0},
	}

	doc := transformer.BuildOrder(&models.WebhookOrder{ID: 1}, items, testRetailer())

	require.Len(t, doc.LineItems, 3)
	assert.Equal(t, 1.0, doc.LineItems[0].WeightLbs)
	assert.Equal(t, 2.2, doc.LineItems[1].WeightLbs)
	assert.Equal(t, 0.0, doc.LineItems[2].WeightLbs)
}

func TestBuildOrderSKUFallsBackToProductID(t *testing.T) {
	transformer := NewTransformer("src", testLogger())

	items := []models.LineItem{{ID: 1, SKU: "", ProductID: 777}}

	doc := transformer.BuildOrder(&models.WebhookOrder{ID: 1}, items, testRetailer())

	require.Len(t, doc.LineItems, 1)
	assert.Equal(t, "777", doc.LineItems[0].SKU)
}

func TestBuildOrderFreightInfo(t *testing.T) {
	transformer := NewTransformer("src", testLogger())

	origin := completeOrigin()
	items := []models.LineItem{{ID: 1, SKU: "A", Vendor: "Acme", OriginLocation: origin}}

	lastMile := transformer.BuildOrder(&models.WebhookOrder{ID: 1}, items, testRetailer())
	require.Len(t, lastMile.LineItems, 1)
	freight := lastMile.LineItems[0].FreightInfo
	assert.True(t, freight.IsFOB)
	assert.Equal(t, origin.Name, freight.VendorInfo.Name)
	assert.Equal(t, origin.Address1, freight.VendorInfo.Address.Address1)
	assert.Equal(t, origin.ProvinceCode, freight.VendorInfo.Address.ProvinceCode)

	fullService := &models.Retailer{ShopDomain: "shop.example.com", DeliveryType: models.DeliveryFullService}
	doc := transformer.BuildOrder(&models.WebhookOrder{ID: 1}, items, fullService)
	assert.False(t, doc.LineItems[0].FreightInfo.IsFOB)
}

func TestBuildOrderVendorNameFallback(t *testing.T) {
	transformer := NewTransformer("src", testLogger())

	items := []models.LineItem{{ID: 1, SKU: "A", Vendor: "Acme"}}

	doc := transformer.BuildOrder(&models.WebhookOrder{ID: 1}, items, testRetailer())

	require.Len(t, doc.LineItems, 1)
	assert.Equal(t, "Acme", doc.LineItems[0].FreightInfo.VendorInfo.Name)
}

func TestBuildOrderCustomerAddressFallback(t *testing.T) {
	transformer := NewTransformer("src", testLogger())

	order := &models.WebhookOrder{
		ID: 1,
		Customer: models.OrderCustomer{
			Phone: "555-0009",
		},
		CustomerAddress: &models.Address{
			FirstName: "Grace",
			LastName:  "Hopper",
			Address1:  "1 Navy Yard",
			City:      "Arlington",
			Zip:       "22202",
		},
	}

	doc := transformer.BuildOrder(order, nil, testRetailer())

	assert.Equal(t, "1 Navy Yard", doc.Customer.Address.Address1)
	// No customer name on the order itself: fall back to the address name.
	assert.Equal(t, "Grace Hopper", doc.Customer.Name)
	// Address has no phone: fall back to the stored customer phone.
	assert.Equal(t, "555-0009", doc.Customer.Phone)
}

func TestBuildOrderAlwaysReturnsDocument(t *testing.T) {
	transformer := NewTransformer("src", testLogger())

	doc := transformer.BuildOrder(&models.WebhookOrder{}, nil, testRetailer())

	require.NotNil(t, doc)
	assert.Empty(t, doc.LineItems)
	assert.Equal(t, "", doc.Customer.Phone)
}
