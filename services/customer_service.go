package services

import (
	"context"
	"strings"

	"allure-backend/models"
	"allure-backend/utils"

	"github.com/google/uuid"
	"github.com/romana/rlog"
)

// CustomerInput is the full customer form. Updates replace every field.
type CustomerInput struct {
	FullName string  `json:"full_name"`
	Phone    string  `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`

	models.BodyMeasurements
}

type CustomerPage struct {
	Customers  []models.Customer `json:"customers"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
	TotalPages int               `json:"total_pages"`
}

// MeasurementPrefill seeds the measurement section of a new order item.
type MeasurementPrefill struct {
	GarmentType models.GarmentType        `json:"garment_type"`
	Core        []models.MeasurementField `json:"core_fields"`
	Garment     []models.MeasurementField `json:"garment_fields"`
	Values      models.Measurements       `json:"values"`
}

type CustomerService struct {
	customers CustomerRepository
	files     FileStore
	calendar  Calendar
}

func NewCustomerService(customers CustomerRepository, files FileStore, calendar Calendar) *CustomerService {
	return &CustomerService{customers: customers, files: files, calendar: calendar}
}

func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	c := &models.Customer{}
	if err := applyCustomerInput(c, in); err != nil {
		return nil, err
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	rlog.Infof("Customer %s created", c.ID)
	return c, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, in CustomerInput) (*models.Customer, error) {
	c, err := s.customers.Get(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := applyCustomerInput(c, in); err != nil {
		return nil, err
	}
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get loads the customer with their orders, newest first.
func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	c, err := s.customers.Get(ctx, id, true)
	if err != nil {
		return nil, err
	}
	today := s.calendar.Today()
	for i := range c.Orders {
		c.Orders[i].Derive(today)
	}
	return c, nil
}

func (s *CustomerService) List(ctx context.Context, query string, page int) (*CustomerPage, error) {
	if page < 1 {
		page = 1
	}
	customers, total, err := s.customers.List(ctx, strings.TrimSpace(query), page, defaultPageSize)
	if err != nil {
		return nil, err
	}
	return &CustomerPage{
		Customers:  customers,
		Page:       page,
		PageSize:   defaultPageSize,
		TotalCount: total,
		TotalPages: pageCount(total, defaultPageSize),
	}, nil
}

// Delete removes the customer and, through the foreign keys, all their
// orders. Stored design images are cleaned up afterwards.
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	orderIDs, err := s.customers.OrderIDs(ctx, id)
	if err != nil {
		return err
	}
	if err := s.customers.Delete(ctx, id); err != nil {
		return err
	}
	for _, oid := range orderIDs {
		if err := s.files.DeletePrefix(ctx, "orders/"+oid.String()); err != nil {
			rlog.Warnf("Customer %s deleted but images of order %s remain: %v", id, oid, err)
		}
	}
	rlog.Infof("Customer %s deleted with %d order(s)", id, len(orderIDs))
	return nil
}

// Prefill returns the customer's saved core measurements together with the
// field catalog for the garment type.
func (s *CustomerService) Prefill(ctx context.Context, id uuid.UUID, garment models.GarmentType) (*MeasurementPrefill, error) {
	spec, ok := garment.Spec()
	if !ok {
		return nil, invalid("garment_type", "unknown garment type %q", garment)
	}
	c, err := s.customers.Get(ctx, id, false)
	if err != nil {
		return nil, err
	}
	return &MeasurementPrefill{
		GarmentType: garment,
		Core:        models.CoreMeasurements,
		Garment:     spec.Fields,
		Values:      c.BodyMeasurements.AsMeasurements(),
	}, nil
}

func applyCustomerInput(c *models.Customer, in CustomerInput) error {
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return invalid("full_name", "name is required")
	}
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return invalid("phone", "phone is required")
	}
	if !utils.ValidatePhone(phone) {
		return invalid("phone", "invalid phone number format")
	}
	for key, v := range in.BodyMeasurements.AsMeasurements() {
		if f, _ := v.Float(); f < 0 {
			return invalid(key, "measurement cannot be negative")
		}
	}

	c.FullName = name
	c.Phone = phone
	c.Email = trimmedPtr(in.Email)
	c.Address = trimmedPtr(in.Address)
	c.Notes = trimmedPtr(in.Notes)
	c.BodyMeasurements = in.BodyMeasurements
	return nil
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return optionalText(*s)
}
