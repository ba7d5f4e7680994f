package services

import (
	"context"
	"strings"
	"testing"

	"allure-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+91 98765-43210", "Hi there & more")
	assert.Equal(t, "https://wa.me/919876543210?text=Hi%20there%20%26%20more", link)
	assert.True(t, strings.HasPrefix(WhatsAppLink("", "x"), "https://wa.me/?text="))
}

func sampleOrder() *models.Order {
	desc := "Boat neck with zari border"
	return &models.Order{
		ID:           uuid.New(),
		OrderNumber:  "ALR-0012",
		DeliveryDate: fixedToday.AddDate(0, 0, 5),
		Status:       models.StatusInProgress,
		TotalAmount:  decimal.NewFromInt(125000),
		AdvancePaid:  decimal.NewFromInt(25000),
		Customer:     &models.Customer{FullName: "Priya Sharma", Phone: "98765 43210"},
		Items: []models.OrderItem{
			{GarmentType: models.GarmentBlouse, Description: &desc, Quantity: 1, Price: decimal.NewFromInt(25000),
				Measurements: models.Measurements{"bust": models.NumberValue(34), "front_opening_style": models.TextValue("Back")}},
			{GarmentType: models.GarmentLehenga, Quantity: 1, Price: decimal.NewFromInt(100000)},
		},
	}
}

func TestCustomerMessage(t *testing.T) {
	msg := CustomerMessage(sampleOrder())

	assert.Contains(t, msg, "Hello Priya Sharma,")
	assert.Contains(t, msg, "Your order ALR-0012 has been confirmed.")
	assert.Contains(t, msg, "1. Blouse - Boat neck with zari border")
	assert.Contains(t, msg, "2. Lehenga - No description")
	assert.Contains(t, msg, "Delivery Date: 21 Oct 2026")
	assert.Contains(t, msg, "Total: ₹1,25,000")
	assert.Contains(t, msg, "Balance: ₹1,00,000")
}

func TestTailorMessage(t *testing.T) {
	msg := TailorMessage(sampleOrder())

	assert.True(t, strings.HasPrefix(msg, "Order: ALR-0012\nCustomer: Priya Sharma\nDelivery: 21 Oct 2026"))
	assert.NotContains(t, msg, "₹")
}

func whatsAppFixture(sender WhatsAppSender) (*WhatsAppService, uuid.UUID) {
	f := newOrderFixture()
	stored := f.orders.put(models.Order{
		OrderNumber:  "ALR-0003",
		CustomerID:   f.customer.ID,
		DeliveryDate: fixedToday,
		TotalAmount:  decimal.NewFromInt(500),
	})
	return NewWhatsAppService(f.svc, sender), stored.ID
}

func TestShareAudiences(t *testing.T) {
	svc, id := whatsAppFixture(nil)
	ctx := context.Background()

	share, err := svc.Share(ctx, id, AudienceCustomer)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(share.Link, "https://wa.me/9876543210?text="))

	share, err = svc.Share(ctx, id, AudienceTailor)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(share.Link, "https://wa.me/?text="))

	_, err = svc.Share(ctx, id, "accountant")
	assert.True(t, IsValidation(err))
}

func TestSendToCustomer(t *testing.T) {
	sender := &fakeWhatsApp{}
	svc, id := whatsAppFixture(sender)

	sid, err := svc.SendToCustomer(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "SM123", sid)
	assert.Equal(t, "+9876543210", sender.to)
	assert.Contains(t, sender.body, "ALR-0003")

	unconfigured, _ := whatsAppFixture(nil)
	_, err = unconfigured.SendToCustomer(context.Background(), id)
	assert.Equal(t, ErrNotConfigured, err)
}
