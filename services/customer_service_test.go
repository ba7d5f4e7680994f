package services

import (
	"context"
	"testing"

	"allure-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestCreateCustomer(t *testing.T) {
	svc := NewCustomerService(newMemCustomers(), newMemFiles(), testCalendar())

	c, err := svc.Create(context.Background(), CustomerInput{
		FullName: "  Kavya Iyer ",
		Phone:    "+91 98450-12345",
		Email:    strPtr(" "),
		BodyMeasurements: models.BodyMeasurements{
			Bust:  floatPtr(34.5),
			Waist: floatPtr(28),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Kavya Iyer", c.FullName)
	assert.Nil(t, c.Email)
	assert.Equal(t, 34.5, *c.Bust)
}

func TestCreateCustomerValidation(t *testing.T) {
	svc := NewCustomerService(newMemCustomers(), newMemFiles(), testCalendar())
	ctx := context.Background()

	tests := []struct {
		name  string
		in    CustomerInput
		field string
	}{
		{"missing name", CustomerInput{Phone: "9876543210"}, "full_name"},
		{"missing phone", CustomerInput{FullName: "A"}, "phone"},
		{"bad phone", CustomerInput{FullName: "A", Phone: "call me"}, "phone"},
		{"negative measurement", CustomerInput{FullName: "A", Phone: "9876543210",
			BodyMeasurements: models.BodyMeasurements{Hip: floatPtr(-3)}}, "hip"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCreateCustomerAcceptsLocalNumbers(t *testing.T) {
	svc := NewCustomerService(newMemCustomers(), newMemFiles(), testCalendar())

	for _, phone := range []string{"09876543210", "0471-2345678", "98765 43210"} {
		c, err := svc.Create(context.Background(), CustomerInput{FullName: "Asha", Phone: phone})
		require.NoError(t, err, phone)
		assert.Equal(t, phone, c.Phone)
	}
}

func TestUpdateCustomerReplacesFields(t *testing.T) {
	repo := newMemCustomers()
	svc := NewCustomerService(repo, newMemFiles(), testCalendar())
	ctx := context.Background()
	c, err := svc.Create(ctx, CustomerInput{FullName: "Kavya", Phone: "9876543210", Notes: strPtr("VIP")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, c.ID, CustomerInput{FullName: "Kavya Iyer", Phone: "9876543210"})

	require.NoError(t, err)
	assert.Equal(t, "Kavya Iyer", updated.FullName)
	assert.Nil(t, updated.Notes)

	_, err = svc.Update(ctx, uuid.New(), CustomerInput{FullName: "X", Phone: "9876543210"})
	assert.Equal(t, ErrNotFound, err)
}

func TestPrefill(t *testing.T) {
	repo := newMemCustomers()
	svc := NewCustomerService(repo, newMemFiles(), testCalendar())
	ctx := context.Background()
	c, err := svc.Create(ctx, CustomerInput{
		FullName:         "Kavya",
		Phone:            "9876543210",
		BodyMeasurements: models.BodyMeasurements{Bust: floatPtr(34), ShoulderWidth: floatPtr(14.5)},
	})
	require.NoError(t, err)

	p, err := svc.Prefill(ctx, c.ID, models.GarmentSalwarKameez)

	require.NoError(t, err)
	assert.Len(t, p.Values, 2)
	v, _ := p.Values["shoulder_width"].Float()
	assert.Equal(t, 14.5, v)
	assert.Len(t, p.Core, len(models.CoreMeasurements))
	assert.Equal(t, "kameez_length", p.Garment[0].Key)

	_, err = svc.Prefill(ctx, c.ID, "saree")
	assert.True(t, IsValidation(err))
}

func TestListCustomersPaging(t *testing.T) {
	repo := newMemCustomers()
	for i := 0; i < 3; i++ {
		repo.add("Customer", "9876543210")
	}
	svc := NewCustomerService(repo, newMemFiles(), testCalendar())

	page, err := svc.List(context.Background(), "", 0)

	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
}
